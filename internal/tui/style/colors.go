package style

import "github.com/charmbracelet/lipgloss"

// 基礎配色
var (
	FutureGreen = lipgloss.Color("#B2FF00") // 成功/運行中
	SkyBlue     = lipgloss.Color("#1AAEFC") // 主要強調
	Violet      = lipgloss.Color("#DDAAFF")
	Yellow      = lipgloss.Color("#FFDC65") // 警告
	Red         = lipgloss.Color("#FF007F") // 錯誤/停止

	White    = lipgloss.Color("#F3F3F0")
	Gray     = lipgloss.Color("#C0C0C0")
	DarkGray = lipgloss.Color("#8A8783")
	BgMedium = lipgloss.Color("#2a2a2a")
)

// 功能顏色
var (
	Primary   = SkyBlue
	Secondary = Violet
	Text      = White
	Muted     = DarkGray
	Success   = FutureGreen
	Error     = Red
	Warning   = Yellow
	Info      = SkyBlue
)

// tailwindColors Web 端使用的顏色類到終端顏色
var tailwindColors = map[string]lipgloss.Color{
	"green-500":   FutureGreen,
	"red-500":     Red,
	"yellow-500":  Yellow,
	"blue-500":    SkyBlue,
	"sky-500":     SkyBlue,
	"violet-500":  Violet,
	"gray-400":    Gray,
	"gray-500":    DarkGray,
	"white":       White,
	"neutral-800": BgMedium,
}
