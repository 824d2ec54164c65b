package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palette, ANSI 0-15 plus a 256-color orange for tags
// ---------------------------------------------------------------------------

var (
	Text      = lipgloss.Color("7")
	TextMuted = lipgloss.Color("8")

	Primary       = lipgloss.Color("4") // blue
	Secondary     = lipgloss.Color("6") // cyan
	Warning       = lipgloss.Color("3") // yellow
	Danger        = lipgloss.Color("1") // red
	Border        = lipgloss.Color("8") // dim
	BorderFocused = lipgloss.Color("4") // blue
)

// tagColors maps the registry's style references to terminal colors.
var tagColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("4"),
	"purple": lipgloss.Color("5"),
	"green":  lipgloss.Color("2"),
	"orange": lipgloss.Color("208"),
	"gray":   lipgloss.Color("8"),
	"pink":   lipgloss.Color("13"),
}

// TagColor returns the terminal color for a tag style reference. Unknown
// references render muted.
func TagColor(ref string) lipgloss.Color {
	if c, ok := tagColors[ref]; ok {
		return c
	}
	return TextMuted
}

// Badge returns the style for a tag badge. Selected badges are inverted.
func Badge(ref string, selected bool) lipgloss.Style {
	c := TagColor(ref)
	if selected {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(c).Padding(0, 1)
	}
	return lipgloss.NewStyle().Foreground(c).Padding(0, 1)
}

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)

	Error    = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(Warning)
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)
)
