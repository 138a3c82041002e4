package style

import "github.com/charmbracelet/lipgloss"

// TextColor 返回一個使用指定前景色的 Render 函數
func TextColor(c lipgloss.Color) func(string) string {
	s := lipgloss.NewStyle().Foreground(c)
	return func(str string) string {
		return s.Render(str)
	}
}

func SuccessText(s string) string { return TextColor(Success)(s) }
func ErrorText(s string) string   { return TextColor(Error)(s) }
func MutedText(s string) string   { return TextColor(Muted)(s) }
func PrimaryText(s string) string { return TextColor(Primary)(s) }
