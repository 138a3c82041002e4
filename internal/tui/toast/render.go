package toast

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/wuwamoe/wuwa-helper/internal/domain/notify"
	"github.com/wuwamoe/wuwa-helper/internal/tui/style"
)

// Render 渲染提示列表，width 為可用寬度
func Render(items []notify.Toast, width int, spinnerFrame string) string {
	if len(items) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	// 邊框與內邊距佔 4 列，圖標與空格佔 2 列
	textWidth := width - 6

	rows := make([]string, 0, len(items))
	for _, t := range items {
		icon, color := iconFor(t.Level, spinnerFrame)
		msg := runewidth.Truncate(strings.ReplaceAll(t.Message, "\n", " "), textWidth, "…")
		rows = append(rows,
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon)+" "+
				lipgloss.NewStyle().Foreground(style.Text).Render(msg))
	}

	return style.ToastBoxStyle.Width(width - 2).Render(strings.Join(rows, "\n"))
}

func iconFor(l notify.Level, spinnerFrame string) (string, lipgloss.Color) {
	switch l {
	case notify.LevelLoading:
		if spinnerFrame == "" {
			spinnerFrame = "…"
		}
		return spinnerFrame, style.Info
	case notify.LevelSuccess:
		return "✓", style.Success
	case notify.LevelError:
		return "✗", style.Error
	default:
		return "i", style.Secondary
	}
}
