package terminal

import "github.com/charmbracelet/lipgloss"

var (
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorGood   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"} // emerald
	colorTool   = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"} // purple
	colorWarn   = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
)

var (
	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	stylePath  = lipgloss.NewStyle().Foreground(colorTool)

	styleStat      = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleStatLabel = lipgloss.NewStyle().Foreground(colorDim)
	styleRatio     = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	styleFallback  = lipgloss.NewStyle().Foreground(colorWarn)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
