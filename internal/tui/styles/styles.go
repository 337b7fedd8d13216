package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains every lipgloss style the TUI renders with, built from a
// single ColorPalette so a theme change only needs a new Styles value.
type Styles struct {
	Palette *ColorPalette

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	// Base styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Content area
	ContentBox lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	// Setup screen options
	Option         lipgloss.Style
	OptionSelected lipgloss.Style

	// Active screen
	PhaseBadge  lipgloss.Style
	Exercise    lipgloss.Style
	Timer       lipgloss.Style
	TimerFlash  lipgloss.Style
	PausedBadge lipgloss.Style
	NextUpLabel lipgloss.Style
	NextUp      lipgloss.Style

	// Complete screen
	SummaryLabel lipgloss.Style
	SummaryValue lipgloss.Style

	// Messages
	ErrorMsg   lipgloss.Style
	WarningMsg lipgloss.Style
	SuccessMsg lipgloss.Style
}

// New builds Styles from p. A nil palette uses DefaultPalette.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	return &Styles{
		Palette: p,

		Primary:   lipgloss.NewStyle().Foreground(p.Primary),
		Secondary: lipgloss.NewStyle().Foreground(p.Secondary),
		Warning:   lipgloss.NewStyle().Foreground(p.Warning),
		Error:     lipgloss.NewStyle().Foreground(p.Error),
		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
		Text:      lipgloss.NewStyle().Foreground(p.Text),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		ContentBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),

		Option: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),

		OptionSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 2),

		PhaseBadge: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),

		Exercise: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),

		Timer: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),

		TimerFlash: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Surface).
			Background(p.Warning),

		PausedBadge: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Surface).
			Background(p.Paused).
			Padding(0, 1),

		NextUpLabel: lipgloss.NewStyle().
			Foreground(p.Muted),

		NextUp: lipgloss.NewStyle().
			Foreground(p.Text).
			Italic(true),

		SummaryLabel: lipgloss.NewStyle().
			Foreground(p.Muted).
			Width(16),

		SummaryValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		WarningMsg: lipgloss.NewStyle().
			Foreground(p.Warning),

		SuccessMsg: lipgloss.NewStyle().
			Foreground(p.Secondary),
	}
}

// ForTheme builds Styles for a named theme.
func ForTheme(name string) *Styles {
	return New(GetPalette(ThemeName(name)))
}

// PhaseColor returns the color for a routine phase name.
func (s *Styles) PhaseColor(phase string) lipgloss.Color {
	switch phase {
	case "warmup":
		return s.Palette.Warmup
	case "stretch":
		return s.Palette.Stretch
	case "rest":
		return s.Palette.Rest
	case "complete":
		return s.Palette.Complete
	default:
		return s.Palette.Muted
	}
}

// Phase renders a phase badge in the phase's color.
func (s *Styles) Phase(phase string) string {
	return s.PhaseBadge.
		Foreground(s.Palette.Surface).
		Background(s.PhaseColor(phase)).
		Render(phaseLabel(phase))
}

func phaseLabel(phase string) string {
	switch phase {
	case "warmup":
		return "WARM-UP"
	case "stretch":
		return "STRETCH"
	case "rest":
		return "REST"
	case "complete":
		return "DONE"
	default:
		return "SETUP"
	}
}
