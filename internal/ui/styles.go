package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/muurk/portdeck/internal/appearance"
	"github.com/muurk/portdeck/internal/ports"
	"github.com/muurk/portdeck/internal/theme"
)

// Layout constants
const (
	MinTerminalWidth  = 60  // Minimum supported terminal width
	MaxContentWidth   = 140 // Maximum content width before capping
	MinTerminalHeight = 16
	DefaultPadding    = 1
)

// Status and selection markers
const (
	MarkerSelected   = "◉"
	MarkerUnselected = "○"
	SuccessMarker    = "✓"
	FailureMarker    = "✗"
)

// Styles is the full style set for one appearance. It is rebuilt whenever
// the presentation flag changes.
type Styles struct {
	Appearance appearance.Appearance
	Palette    theme.Palette

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Chip       lipgloss.Style
	ActiveChip lipgloss.Style
	Pane       lipgloss.Style
	PaneTitle  lipgloss.Style
	Key        lipgloss.Style
	Value      lipgloss.Style
	Tag        lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Option     lipgloss.Style
	Cursor     lipgloss.Style
}

// NewStyles builds the style set for a.
func NewStyles(a appearance.Appearance) Styles {
	p := theme.PaletteFor(a)

	return Styles{
		Appearance: a,
		Palette:    p,

		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			PaddingLeft(DefaultPadding),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			PaddingLeft(DefaultPadding),

		Text:  lipgloss.NewStyle().Foreground(p.Text),
		Muted: lipgloss.NewStyle().Foreground(p.Muted),

		Chip: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),

		ActiveChip: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Primary).
			Bold(true).
			Padding(0, 1),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		PaneTitle: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		Key: lipgloss.NewStyle().
			Foreground(p.Muted).
			Width(14),

		Value: lipgloss.NewStyle().Foreground(p.Text),

		Tag: lipgloss.NewStyle().
			Foreground(p.Primary).
			Background(p.Surface).
			Padding(0, 1),

		Error:   lipgloss.NewStyle().Foreground(p.Danger),
		Success: lipgloss.NewStyle().Foreground(p.Success),

		Option: lipgloss.NewStyle().
			Foreground(p.Text).
			PaddingLeft(2),

		Cursor: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			PaddingLeft(2),
	}
}

// StatusStyle colors a port status.
func (s Styles) StatusStyle(st ports.Status) lipgloss.Style {
	switch st {
	case ports.StatusActive:
		return lipgloss.NewStyle().Foreground(s.Palette.Success)
	case ports.StatusWarning:
		return lipgloss.NewStyle().Foreground(s.Palette.Warning)
	case ports.StatusError:
		return lipgloss.NewStyle().Foreground(s.Palette.Danger)
	}
	return s.Muted
}

// SecurityStyle colors a security level.
func (s Styles) SecurityStyle(level ports.SecurityLevel) lipgloss.Style {
	switch level {
	case ports.SecurityLow:
		return lipgloss.NewStyle().Foreground(s.Palette.Success)
	case ports.SecurityMedium:
		return lipgloss.NewStyle().Foreground(s.Palette.Warning)
	case ports.SecurityHigh:
		return lipgloss.NewStyle().Foreground(s.Palette.Danger)
	}
	return s.Muted
}

// Table converts the style set to bubbles table styles.
func (s Styles) Table() table.Styles {
	return table.Styles{
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(s.Palette.Border).
			BorderBottom(true).
			Foreground(s.Palette.Muted).
			Bold(true).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Foreground(s.Palette.Text).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(s.Palette.Background).
			Background(s.Palette.Primary).
			Bold(true),
	}
}

// Help converts the style set to bubbles help styles.
func (s Styles) Help() help.Styles {
	keyStyle := lipgloss.NewStyle().Foreground(s.Palette.Primary)
	descStyle := lipgloss.NewStyle().Foreground(s.Palette.Muted)
	sepStyle := lipgloss.NewStyle().Foreground(s.Palette.Border)

	return help.Styles{
		Ellipsis:       sepStyle,
		ShortKey:       keyStyle,
		ShortDesc:      descStyle,
		ShortSeparator: sepStyle,
		FullKey:        keyStyle,
		FullDesc:       descStyle,
		FullSeparator:  sepStyle,
	}
}

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _ := GetTerminalSize()
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	return clampWidth(width), max(height, MinTerminalHeight)
}

func clampWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
