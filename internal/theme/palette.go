package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/portdeck/internal/appearance"
)

// Palette holds the semantic colors for one appearance. Components should
// depend on these roles rather than on literal colors.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Primary    lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
}

var (
	lightPalette = Palette{
		Background: lipgloss.Color("#FFFFFF"),
		Surface:    lipgloss.Color("#F4F4F5"),
		Text:       lipgloss.Color("#18181B"),
		Muted:      lipgloss.Color("#71717A"),
		Primary:    lipgloss.Color("#6D28D9"),
		Border:     lipgloss.Color("#D4D4D8"),
		Success:    lipgloss.Color("#15803D"),
		Warning:    lipgloss.Color("#B45309"),
		Danger:     lipgloss.Color("#B91C1C"),
	}

	darkPalette = Palette{
		Background: lipgloss.Color("#09090B"),
		Surface:    lipgloss.Color("#18181B"),
		Text:       lipgloss.Color("#FAFAFA"),
		Muted:      lipgloss.Color("#A1A1AA"),
		Primary:    lipgloss.Color("#7D56F4"),
		Border:     lipgloss.Color("#3F3F46"),
		Success:    lipgloss.Color("#43BF6D"),
		Warning:    lipgloss.Color("#FFA500"),
		Danger:     lipgloss.Color("#FF5555"),
	}
)

// PaletteFor returns the palette for a.
func PaletteFor(a appearance.Appearance) Palette {
	if a.IsDark() {
		return darkPalette
	}
	return lightPalette
}
