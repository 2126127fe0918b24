package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/portdeck/internal/appearance"
	"github.com/muurk/portdeck/internal/ports"
	"github.com/muurk/portdeck/internal/theme"
)

// Run starts the interactive dashboard and blocks until the user quits.
// Changes to flag, whether from the settings screen or from the host in
// system mode, restyle the UI while it runs.
func Run(ctx context.Context, controller ModeController, flag *theme.Flag) error {
	model := NewModel(ctx, controller, ports.Sample(), flag.Appearance())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	stop := WatchPresentation(p, flag)
	defer stop()

	_, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// sender is the part of *tea.Program WatchPresentation needs.
type sender interface {
	Send(msg tea.Msg)
}

// WatchPresentation forwards flag changes to p as AppearanceMsg. A single
// goroutine does the sending and always reads the flag's current value, so
// the last message p receives matches the flag. The returned func stops
// forwarding.
func WatchPresentation(p sender, flag *theme.Flag) (stop func()) {
	changed := make(chan struct{}, 1)
	done := make(chan struct{})

	// Observers run on the applier's goroutine and must not block on Send.
	unobserve := flag.Observe(func(appearance.Appearance) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	go func() {
		var (
			last appearance.Appearance
			sent bool
		)
		for {
			select {
			case <-done:
				return
			case <-changed:
			}
			select {
			case <-done:
				return
			default:
			}
			a := flag.Appearance()
			if sent && a == last {
				continue
			}
			p.Send(AppearanceMsg{Appearance: a})
			last, sent = a, true
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unobserve()
			close(done)
		})
	}
}

// Printer writes styled, non-interactive output for the CLI commands. It is
// safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	width  int
	styles Styles
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer, a appearance.Appearance) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:    w,
		width:  GetTerminalWidth(),
		styles: NewStyles(a),
	}
}

// SetAppearance restyles subsequent output.
func (p *Printer) SetAppearance(a appearance.Appearance) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.styles = NewStyles(a)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, content)
}

func (p *Printer) currentStyles() Styles {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.styles
}

// PrintModeStatus prints the stored mode and the effective appearance.
func (p *Printer) PrintModeStatus(mode theme.Mode, effective appearance.Appearance, source string, following bool) {
	s := p.currentStyles()
	follow := "no"
	if following {
		follow = "yes"
	}

	lines := []string{
		s.PaneTitle.Render("Theme"),
		s.Key.Render("Mode") + s.Value.Render(mode.Label()),
		s.Key.Render("Appearance") + s.Value.Render(effective.String()),
		s.Key.Render("Source") + s.Value.Render(source),
		s.Key.Render("Following") + s.Value.Render(follow),
	}
	p.Println(s.Pane.Width(min(p.width-2, 48)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

// PrintAppearance prints one appearance change line.
func (p *Printer) PrintAppearance(a appearance.Appearance) {
	marker := "☀"
	if a.IsDark() {
		marker = "☾"
	}
	p.Println(p.currentStyles().Text.Render(marker + " " + a.String()))
}

// PrintError prints a one-line error.
func (p *Printer) PrintError(err error) {
	p.Println(p.currentStyles().Error.Render(FailureMarker + " " + err.Error()))
}

// PrintSuccess prints a one-line confirmation.
func (p *Printer) PrintSuccess(msg string) {
	p.Println(p.currentStyles().Success.Render(SuccessMarker + " " + msg))
}
