package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FromClasses 把 Tailwind 類名翻譯為 lipgloss 樣式
//
// 只識別文字顏色、背景色、字重與裝飾，其餘類名忽略。
// 同一屬性出現多次時後者生效。
func FromClasses(classes string) lipgloss.Style {
	s := lipgloss.NewStyle()
	for _, c := range strings.Fields(classes) {
		switch {
		case c == "font-bold" || c == "font-semibold":
			s = s.Bold(true)
		case c == "font-normal":
			s = s.Bold(false)
		case c == "italic":
			s = s.Italic(true)
		case c == "underline":
			s = s.Underline(true)
		case c == "line-through":
			s = s.Strikethrough(true)
		case c == "opacity-50":
			s = s.Faint(true)
		case strings.HasPrefix(c, "text-"):
			if col, ok := tailwindColors[strings.TrimPrefix(c, "text-")]; ok {
				s = s.Foreground(col)
			}
		case strings.HasPrefix(c, "bg-"):
			if col, ok := tailwindColors[strings.TrimPrefix(c, "bg-")]; ok {
				s = s.Background(col)
			}
		}
	}
	return s
}
