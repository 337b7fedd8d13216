package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Purple/green dark theme
	ThemeNord    ThemeName = "nord"    // Cool blue-gray
	ThemeGruvbox ThemeName = "gruvbox" // Gruvbox retro groove
	ThemeDracula ThemeName = "dracula" // Dracula theme colors
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeNord),
		string(ThemeGruvbox),
		string(ThemeDracula),
	}
}

// IsValidTheme reports whether name is a built-in theme.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (titles, selected options)
	Primary lipgloss.Color
	// Secondary accent color (key hints, success states)
	Secondary lipgloss.Color
	// Warning color (timer flash)
	Warning lipgloss.Color
	// Error color
	Error lipgloss.Color
	// Muted color (de-emphasized text)
	Muted lipgloss.Color
	// Surface color (panel backgrounds)
	Surface lipgloss.Color
	// Text color (primary text)
	Text lipgloss.Color
	// Border color (panel borders)
	Border lipgloss.Color

	// Phase colors
	Warmup   lipgloss.Color
	Stretch  lipgloss.Color
	Rest     lipgloss.Color
	Paused   lipgloss.Color
	Complete lipgloss.Color
}

// DefaultPalette returns the default purple/green dark palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500

		Warmup:   lipgloss.Color("#FBBF24"), // Yellow
		Stretch:  lipgloss.Color("#10B981"), // Green
		Rest:     lipgloss.Color("#60A5FA"), // Blue
		Paused:   lipgloss.Color("#F472B6"), // Pink
		Complete: lipgloss.Color("#A78BFA"), // Purple
	}
}

// NordPalette returns the Nord palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Frost cyan
		Secondary: lipgloss.Color("#A3BE8C"), // Aurora green
		Warning:   lipgloss.Color("#EBCB8B"), // Aurora yellow
		Error:     lipgloss.Color("#BF616A"), // Aurora red
		Muted:     lipgloss.Color("#4C566A"), // Polar night 3
		Surface:   lipgloss.Color("#2E3440"), // Polar night 0
		Text:      lipgloss.Color("#ECEFF4"), // Snow storm 2
		Border:    lipgloss.Color("#3B4252"), // Polar night 1

		Warmup:   lipgloss.Color("#EBCB8B"),
		Stretch:  lipgloss.Color("#A3BE8C"),
		Rest:     lipgloss.Color("#81A1C1"), // Frost blue
		Paused:   lipgloss.Color("#D08770"), // Aurora orange
		Complete: lipgloss.Color("#B48EAD"), // Aurora purple
	}
}

// GruvboxPalette returns the Gruvbox dark palette.
func GruvboxPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#83A598"), // Aqua
		Secondary: lipgloss.Color("#B8BB26"), // Green
		Warning:   lipgloss.Color("#FABD2F"), // Yellow
		Error:     lipgloss.Color("#FB4934"), // Red
		Muted:     lipgloss.Color("#928374"), // Gray
		Surface:   lipgloss.Color("#282828"), // bg0
		Text:      lipgloss.Color("#EBDBB2"), // fg
		Border:    lipgloss.Color("#3C3836"), // bg1

		Warmup:   lipgloss.Color("#FABD2F"),
		Stretch:  lipgloss.Color("#B8BB26"),
		Rest:     lipgloss.Color("#83A598"),
		Paused:   lipgloss.Color("#FE8019"), // Orange
		Complete: lipgloss.Color("#D3869B"), // Purple
	}
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"), // Purple
		Secondary: lipgloss.Color("#50FA7B"), // Green
		Warning:   lipgloss.Color("#FFB86C"), // Orange
		Error:     lipgloss.Color("#FF5555"), // Red
		Muted:     lipgloss.Color("#6272A4"), // Comment
		Surface:   lipgloss.Color("#282A36"), // Background
		Text:      lipgloss.Color("#F8F8F2"), // Foreground
		Border:    lipgloss.Color("#44475A"), // Current line

		Warmup:   lipgloss.Color("#F1FA8C"), // Yellow
		Stretch:  lipgloss.Color("#50FA7B"),
		Rest:     lipgloss.Color("#8BE9FD"), // Cyan
		Paused:   lipgloss.Color("#FF79C6"), // Pink
		Complete: lipgloss.Color("#BD93F9"),
	}
}

// GetPalette returns the palette for the given theme name.
// Unknown names get the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeNord:
		return NordPalette()
	case ThemeGruvbox:
		return GruvboxPalette()
	case ThemeDracula:
		return DraculaPalette()
	default:
		return DefaultPalette()
	}
}
