package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/portdeck/internal/ports"
	"github.com/muurk/portdeck/internal/theme"
)

// View implements tea.Model
func (m Model) View() string {
	var body string
	switch m.Screen {
	case ScreenSettings:
		body = m.renderSettings()
	default:
		body = m.renderDashboard()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderHelp(),
	)
}

func (m Model) renderHeader() string {
	s := m.styles
	sum := ports.Summarize(m.all)

	title := s.Title.Render("PORTDECK")
	counts := s.Subtitle.Render(fmt.Sprintf("%d ports  %s %d  %s %d  %s %d",
		sum.Total,
		s.StatusStyle(ports.StatusActive).Render(ports.StatusActive.Symbol()), sum.Active,
		s.StatusStyle(ports.StatusWarning).Render(ports.StatusWarning.Symbol()), sum.Warning,
		s.StatusStyle(ports.StatusError).Render(ports.StatusError.Symbol()), sum.Error,
	))
	mode := s.Muted.Render(fmt.Sprintf("theme: %s (%s)", m.controller.Mode(), s.Appearance))

	left := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", counts)
	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(mode)-1, 1)
	return left + strings.Repeat(" ", gap) + mode
}

func (m Model) renderToolbar() string {
	s := m.styles

	var chips []string
	for _, st := range ports.FilterStatuses {
		label := strings.ToUpper(st.String()[:1]) + st.String()[1:]
		active := m.filter.Status == st || (m.filter.Status == "" && st == ports.StatusAll)
		if active {
			chips = append(chips, s.ActiveChip.Render(label))
		} else {
			chips = append(chips, s.Chip.Render(label))
		}
	}

	system := "Show All"
	if m.filter.HideSystem {
		system = "Hide System"
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		" ",
		m.search.View(),
		"  ",
		strings.Join(chips, " "),
		"  ",
		s.Chip.Render("["+system+"]"),
	)
}

func (m Model) renderDashboard() string {
	s := m.styles

	list := m.table.View()
	if len(m.visible) == 0 {
		list = lipgloss.JoinVertical(lipgloss.Left, list, s.Muted.Render("  No ports match the current filter"))
	}

	detailWidth := max(m.Width-m.tableWidth()-4, 20)
	detail := s.Pane.Width(detailWidth).Render(m.renderDetail())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderToolbar(),
		lipgloss.JoinHorizontal(lipgloss.Top, list, detail),
	)
}

func (m Model) renderDetail() string {
	s := m.styles
	p, ok := m.Selected()
	if !ok {
		return s.Muted.Render("No port selected")
	}

	row := func(k, v string) string {
		if v == "" {
			v = "-"
		}
		return s.Key.Render(k) + s.Value.Render(v)
	}

	lines := []string{
		s.PaneTitle.Render(fmt.Sprintf("%d  %s", p.Number, p.Name)),
		s.Muted.Render(p.Description),
		"",
		s.Key.Render("Status") + s.StatusStyle(p.Status).Render(p.Status.Symbol()+" "+p.Status.String()),
		row("Protocol", string(p.Protocol)),
		row("Process", p.Process()),
		row("PID", p.PIDString()),
		row("User", p.User),
		row("Memory", p.MemoryUsage),
		row("CPU", p.CPUUsage),
		row("Connections", fmt.Sprintf("%d", p.Connections)),
		row("Last activity", p.LastActivity),
		row("Local", p.LocalAddress),
		row("Remote", p.RemoteAddress),
		s.Key.Render("Security") + s.SecurityStyle(p.Security).Render(string(p.Security)),
	}
	if url := p.URL(); url != "" {
		lines = append(lines, row("URL", url))
	}
	if p.System {
		lines = append(lines, s.Muted.Render("system port"))
	}

	if len(p.Tags) > 0 {
		tags := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, s.Tag.Render(t))
		}
		lines = append(lines, "", strings.Join(tags, " "))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderSettings() string {
	s := m.styles
	current := m.controller.Mode()

	lines := []string{
		"",
		s.PaneTitle.Render("Appearance"),
		s.Muted.Render("Choose how portdeck looks. System follows your desktop setting."),
		"",
	}
	for i, mode := range theme.Modes {
		marker := MarkerUnselected
		if mode == current {
			marker = MarkerSelected
		}
		line := fmt.Sprintf("%s %-7s %s", marker, mode.Label(), s.Muted.Render(mode.Description()))
		if i == m.cursor {
			lines = append(lines, s.Cursor.Render("> "+line))
		} else {
			lines = append(lines, s.Option.Render("  "+line))
		}
	}

	lines = append(lines, "")
	switch {
	case m.pending:
		lines = append(lines, s.Muted.Render("Applying..."))
	case m.failed:
		lines = append(lines, s.Error.Render(m.status))
	case m.status != "":
		lines = append(lines, s.Success.Render(m.status))
	}

	width := min(m.Width-2, 72)
	return s.Pane.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	switch {
	case m.Screen == ScreenSettings:
		return m.help.View(m.settingsKeys)
	case m.focusing:
		return m.help.View(m.searchKeys)
	}
	return m.help.View(m.keys)
}
