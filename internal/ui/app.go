package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/portdeck/internal/appearance"
	"github.com/muurk/portdeck/internal/logging"
	"github.com/muurk/portdeck/internal/ports"
	"github.com/muurk/portdeck/internal/theme"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDashboard Screen = "dashboard"
	ScreenSettings  Screen = "settings"
)

// ModeController is the part of the theme controller the UI drives.
type ModeController interface {
	Mode() theme.Mode
	SetMode(ctx context.Context, mode theme.Mode) error
}

// AppearanceMsg reports that the presentation flag changed.
type AppearanceMsg struct {
	Appearance appearance.Appearance
}

// modeSetMsg carries the result of a SetMode command.
type modeSetMsg struct {
	mode theme.Mode
	err  error
}

// Model is the top-level Bubble Tea model: a port dashboard plus the theme
// settings screen.
type Model struct {
	ctx        context.Context
	controller ModeController

	Screen Screen
	Width  int
	Height int

	styles Styles

	all      []ports.Port
	visible  []ports.Port
	filter   ports.Filter
	table    table.Model
	search   textinput.Model
	focusing bool

	// Settings picker
	cursor  int
	pending bool
	status  string
	failed  bool

	help         help.Model
	keys         dashboardKeyMap
	settingsKeys settingsKeyMap
	searchKeys   searchKeyMap
}

// NewModel creates the application model. initial is the appearance in
// effect when the UI starts.
func NewModel(ctx context.Context, controller ModeController, list []ports.Port, initial appearance.Appearance) Model {
	width, height := GetTerminalSize()

	search := textinput.New()
	search.Placeholder = "Search ports, applications, or tags..."
	search.Prompt = "/ "
	search.CharLimit = 64

	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
	)

	m := Model{
		ctx:          ctx,
		controller:   controller,
		Screen:       ScreenDashboard,
		Width:        width,
		Height:       height,
		all:          list,
		table:        t,
		search:       search,
		help:         help.New(),
		keys:         newDashboardKeyMap(),
		settingsKeys: newSettingsKeyMap(),
		searchKeys:   newSearchKeyMap(),
	}
	m.setAppearance(initial)
	m.cursor = modeIndex(controller.Mode())
	m.refresh()
	m.resize()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = clampWidth(msg.Width)
		m.Height = max(msg.Height, MinTerminalHeight)
		m.resize()
		return m, nil

	case AppearanceMsg:
		m.setAppearance(msg.Appearance)
		return m, nil

	case modeSetMsg:
		m.pending = false
		m.cursor = modeIndex(m.controller.Mode())
		if msg.err != nil {
			m.failed = true
			m.status = fmt.Sprintf("%s %s applied but not saved: %v", FailureMarker, msg.mode.Label(), msg.err)
		} else {
			m.failed = false
			m.status = fmt.Sprintf("%s Theme set to %s", SuccessMarker, msg.mode.Label())
		}
		return m, nil

	case tea.KeyMsg:
		switch m.Screen {
		case ScreenSettings:
			return m.updateSettings(msg)
		default:
			if m.focusing {
				return m.updateSearch(msg)
			}
			return m.updateDashboard(msg)
		}
	}

	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.focusing = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Filter):
		m.filter.Status = nextStatus(m.filter.Status)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.System):
		m.filter.HideSystem = !m.filter.HideSystem
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		m.Screen = ScreenSettings
		m.cursor = modeIndex(m.controller.Mode())
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.searchKeys.Done):
		m.focusing = false
		m.search.Blur()
		return m, nil

	case key.Matches(msg, m.searchKeys.Cancel):
		m.focusing = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Query = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.filter.Query {
		m.filter.Query = m.search.Value()
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.settingsKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.settingsKeys.Back):
		m.Screen = ScreenDashboard
		return m, nil

	case key.Matches(msg, m.settingsKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.settingsKeys.Down):
		if m.cursor < len(theme.Modes)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.settingsKeys.Select):
		if m.pending {
			return m, nil
		}
		m.pending = true
		m.status = ""
		return m, setModeCmd(m.ctx, m.controller, theme.Modes[m.cursor])
	}
	return m, nil
}

// setModeCmd runs SetMode off the UI goroutine. The controller serializes
// concurrent calls itself.
func setModeCmd(ctx context.Context, c ModeController, mode theme.Mode) tea.Cmd {
	return func() tea.Msg {
		err := c.SetMode(ctx, mode)
		if err != nil {
			logging.Warn("Theme change not persisted", zap.String("mode", mode.String()), zap.Error(err))
		}
		return modeSetMsg{mode: mode, err: err}
	}
}

func (m *Model) setAppearance(a appearance.Appearance) {
	m.styles = NewStyles(a)
	m.table.SetStyles(m.styles.Table())
	m.help.Styles = m.styles.Help()
	m.search.PromptStyle = m.styles.PaneTitle
	m.search.TextStyle = m.styles.Text
	m.search.PlaceholderStyle = m.styles.Muted
}

// refresh reapplies the filter and keeps the cursor in range.
func (m *Model) refresh() {
	m.visible = m.filter.Apply(m.all)

	rows := make([]table.Row, 0, len(m.visible))
	for _, p := range m.visible {
		rows = append(rows, table.Row{
			p.Status.Symbol(),
			fmt.Sprintf("%d", p.Number),
			p.Process(),
			p.PIDString(),
			p.LocalAddress,
			p.Uptime,
		})
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) resize() {
	m.table.SetWidth(m.tableWidth())
	// header, toolbar, table header, status line, help
	chrome := 7
	if m.help.ShowAll {
		chrome += 3
	}
	m.table.SetHeight(max(m.Height-chrome, 3))
	m.help.Width = m.Width
	m.search.Width = max(m.Width/3, 20)
}

func (m Model) tableWidth() int {
	return m.Width * 7 / 10
}

// Selected returns the port under the cursor.
func (m Model) Selected() (ports.Port, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return ports.Port{}, false
	}
	return m.visible[c], true
}

// Visible returns the ports passing the current filter.
func (m Model) Visible() []ports.Port {
	return m.visible
}

// Filter returns the current filter.
func (m Model) Filter() ports.Filter {
	return m.filter
}

// Styles returns the style set in use.
func (m Model) Styles() Styles {
	return m.styles
}

func tableColumns() []table.Column {
	return []table.Column{
		{Title: " ", Width: 2},
		{Title: "Port", Width: 6},
		{Title: "Process", Width: 14},
		{Title: "PID", Width: 6},
		{Title: "Address", Width: 20},
		{Title: "Uptime", Width: 9},
	}
}

func nextStatus(s ports.Status) ports.Status {
	for i, st := range ports.FilterStatuses {
		if st == s {
			return ports.FilterStatuses[(i+1)%len(ports.FilterStatuses)]
		}
	}
	// Zero value behaves as "all".
	return ports.FilterStatuses[1]
}

func modeIndex(mode theme.Mode) int {
	for i, m := range theme.Modes {
		if m == mode {
			return i
		}
	}
	return 0
}
