package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#FF6B9D")
	Secondary  = lipgloss.Color("#C792EA")
	Success    = lipgloss.Color("#C3E88D")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#546E7A")
	Foreground = lipgloss.Color("#EEFFFF")
	TabBack    = lipgloss.Color("#37474F")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Info).
			Underline(true)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 2)

	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 2)

	// Page panel in the reader
	PageStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Primary).
			Padding(1, 2)

	StatusWorking = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusCompleted = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(Muted)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(TabBack).
			Padding(0, 2).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1)

	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)

// StatusStyle picks the style for an export status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "downloading", "processing":
		return StatusWorking
	case "complete":
		return StatusCompleted
	case "error":
		return StatusError
	default:
		return MutedStyle
	}
}

// Tab renders a tab label in its active or inactive style.
func Tab(label string, active bool) string {
	if active {
		return ActiveTabStyle.Render(label)
	}
	return InactiveTabStyle.Render(label)
}
