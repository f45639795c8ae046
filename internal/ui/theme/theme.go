package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: bright, party-game colors
var (
	Primary   = lipgloss.Color("#FF6B6B") // Coral
	Secondary = lipgloss.Color("#4ECDC4") // Teal
	Accent    = lipgloss.Color("#FFE66D") // Sunny Yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	TextDark  = lipgloss.Color("#1E1B4B") // Ink
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// WheelPalette colors wheel segments in order, repeating.
var WheelPalette = []color.Color{
	lipgloss.Color("#FF1744"), // Red
	lipgloss.Color("#FFD700"), // Gold
	lipgloss.Color("#1E90FF"), // Blue
	lipgloss.Color("#32CD32"), // Green
	lipgloss.Color("#FF1493"), // Pink
	lipgloss.Color("#FF8C00"), // Orange
	lipgloss.Color("#9400D3"), // Purple
	lipgloss.Color("#00CED1"), // Cyan
}

// SegmentColor returns the palette color for segment i.
func SegmentColor(i int) color.Color {
	if i < 0 {
		i = -i
	}
	return WheelPalette[i%len(WheelPalette)]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	WinnerCard = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Accent).
			Padding(1, 4).
			Align(lipgloss.Center)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Highlight = lipgloss.NewStyle().
			Background(Accent).
			Foreground(TextDark).
			Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
