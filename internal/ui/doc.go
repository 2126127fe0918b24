// Package ui provides the portdeck terminal interface.
//
// This package uses Bubble Tea, Bubbles and Lipgloss. It has two parts:
//
//   - Model: the interactive dashboard (port table, detail pane, status
//     filters, search) and the theme settings screen with the
//     Light / Dark / System picker.
//   - Printer: styled one-shot output for the non-interactive CLI commands.
//
// # Theming
//
// Every style is derived from theme.PaletteFor(appearance). The model does
// not decide the appearance itself: it calls ModeController.SetMode from a
// tea.Cmd and restyles when an AppearanceMsg arrives. WatchPresentation
// turns changes of the process-wide theme.Presentation flag into
// AppearanceMsg, so host changes in system mode restyle the running UI
// without any input.
//
// # Usage Example
//
//	ctrl := controller.New(store, source, theme.Presentation)
//	if err := ctrl.Bootstrap(ctx); err != nil {
//	    return err
//	}
//	defer ctrl.Close()
//	return ui.Run(ctx, ctrl, theme.Presentation)
//
// # Logging Integration
//
// The dashboard owns the terminal, so logging must not write to stderr
// while it runs. Set PORTDECK_LOG_FILE together with PORTDECK_LOG_LEVEL to
// capture logs.
package ui
