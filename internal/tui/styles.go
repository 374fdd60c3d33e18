package tui

import "github.com/charmbracelet/lipgloss"

// Tile colours.
var (
	colorCorrect = lipgloss.Color("#538d4e")
	colorPresent = lipgloss.Color("#b59f3b")
	colorAbsent  = lipgloss.Color("#3a3a3c")
	colorEmpty   = lipgloss.Color("#3a3a3c")
	colorFg      = lipgloss.Color("#ffffff")
	colorDim     = lipgloss.Color("#818384")
	colorError   = lipgloss.Color("#ff5555")
	colorWin     = lipgloss.Color("#6aaa64")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true).
			Padding(0, 0, 1, 0)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tileStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true).
			Width(3).
			Align(lipgloss.Center).
			MarginRight(1)

	emptyTileStyle = tileStyle.
			Foreground(colorDim).
			Background(colorEmpty)

	winTileStyle = tileStyle.
			Background(colorWin).
			Underline(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Padding(1, 0, 0, 0)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Padding(1, 0, 0, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(1, 0, 0, 0)
)
