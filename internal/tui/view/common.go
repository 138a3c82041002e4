package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/wuwamoe/wuwa-helper/internal/tui/style"
)

const panelWidth = 50

// Row 面板中的一行：標籤 + 值
type Row struct {
	Label string
	Value string
}

// renderRows 按最長標籤的顯示寬度對齊
func renderRows(rows []Row) string {
	maxLabel := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Label); w > maxLabel {
			maxLabel = w
		}
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", maxLabel-runewidth.StringWidth(r.Label)+2)
		lines = append(lines, style.LabelStyle.Render(r.Label)+pad+r.Value)
	}
	return strings.Join(lines, "\n")
}

// RenderLogo 帶漸變的標題
func RenderLogo() string {
	logoLines := []string{
		"╦ ╦╦ ╦╦ ╦╔═╗  ╦ ╦╔═╗╦  ╔═╗╔═╗╦═╗",
		"║║║║ ║║║║╠═╣  ╠═╣║╣ ║  ╠═╝║╣ ╠╦╝",
		"╚╩╝╚═╝╚╩╝╩ ╩  ╩ ╩╚═╝╩═╝╩  ╚═╝╩╚═",
	}
	gradientColors := []lipgloss.Color{
		lipgloss.Color("#DDAAFF"),
		lipgloss.Color("#90CCFB"),
		lipgloss.Color("#1AAEFC"),
	}

	colored := make([]string, 0, len(logoLines))
	for i, line := range logoLines {
		colored = append(colored, lipgloss.NewStyle().
			Foreground(gradientColors[i]).
			Width(panelWidth).
			AlignHorizontal(lipgloss.Center).
			Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, colored...)
}

func separator() string {
	return lipgloss.NewStyle().Foreground(style.Gray).Render(strings.Repeat("═", panelWidth))
}
