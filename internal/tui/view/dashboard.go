package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/wuwamoe/wuwa-helper/internal/domain/state"
	"github.com/wuwamoe/wuwa-helper/internal/pkg/classnames"
	"github.com/wuwamoe/wuwa-helper/internal/tui/style"
)

// Dashboard 主界面所需數據
type Dashboard struct {
	State    state.GlobalState
	Version  string
	Updating bool
	Toasts   string
	Help     string
	Width    int
}

// 各字段的類名，與 Web 端保持一致
func procClasses(p state.ProcState) string {
	return classnames.Cn("font-bold text-gray-500",
		classnames.If(p == state.ProcAttached, "text-green-500"),
		classnames.If(p == state.ProcDetached, "text-red-500"),
	)
}

func serverClasses(s state.ServerState) string {
	return classnames.Cn("font-bold text-gray-500",
		classnames.If(s == state.ServerRunning, "text-green-500"),
		classnames.If(s == state.ServerStopped, "text-red-500"),
	)
}

func optionalClasses(present bool, active string) string {
	return classnames.Cn("text-gray-500 italic", classnames.If(present, "not-italic "+active))
}

func procLabel(p state.ProcState) string {
	switch p {
	case state.ProcAttached:
		return "연결됨"
	case state.ProcDetached:
		return "연결 안 됨"
	default:
		return p.String()
	}
}

func serverLabel(s state.ServerState) string {
	switch s {
	case state.ServerRunning:
		return "실행 중"
	case state.ServerStopped:
		return "중지됨"
	default:
		return s.String()
	}
}

// RenderDashboard 渲染主界面
func RenderDashboard(d Dashboard) string {
	g := d.State

	url, hasURL := g.ConnectionURL.Get()
	if !hasURL {
		url = "-"
	}
	code, hasCode := g.ExternalConnectionCode.Get()
	if !hasCode {
		code = "-"
	}
	peers := "-"
	n, hasPeers := g.PeerCount.Get()
	if hasPeers {
		peers = strconv.Itoa(n)
	}

	rows := []Row{
		{"게임 프로세스", style.FromClasses(procClasses(g.ProcState)).Render(procLabel(g.ProcState))},
		{"서버", style.FromClasses(serverClasses(g.ServerState)).Render(serverLabel(g.ServerState))},
		{"연결 주소", style.FromClasses(optionalClasses(hasURL, "text-sky-500 underline")).Render(url)},
		{"외부 연결 코드", style.FromClasses(optionalClasses(hasCode, "text-violet-500 font-bold")).Render(code)},
		{"연결된 피어", style.FromClasses(optionalClasses(hasPeers, "text-white")).Render(peers)},
	}

	version := d.Version
	if d.Updating {
		version += " " + style.PrimaryText("(업데이트 중)")
	}

	width := d.Width
	if width < panelWidth+4 {
		width = panelWidth + 4
	}

	sections := []string{
		RenderLogo(),
		lipgloss.NewStyle().Width(panelWidth).AlignHorizontal(lipgloss.Center).
			Render(style.MutedText("버전 ") + version),
		separator(),
		style.PanelStyle.Width(panelWidth).Render(renderRows(rows)),
	}
	if d.Toasts != "" {
		sections = append(sections, d.Toasts)
	}
	if d.Help != "" {
		sections = append(sections, style.HelpStyle.Render(d.Help))
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// StatusLine 無頭模式下的單行狀態
func StatusLine(g state.GlobalState) string {
	return fmt.Sprintf("proc=%s server=%s url=%s code=%s peers=%s",
		g.ProcState, g.ServerState, g.ConnectionURL, g.ExternalConnectionCode, g.PeerCount)
}
