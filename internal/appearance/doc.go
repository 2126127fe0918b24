// Package appearance reads the host environment's light/dark setting and
// reports changes to it.
//
// A Source answers two questions: what is the appearance now (Query), and
// tell me when it changes (Subscribe). Every Subscription is cancelled
// exactly once by its owner; Cancel is idempotent and, once it returns, the
// callback is never called again.
//
// # Sources
//
//   - GSettingsSource: GNOME color-scheme, pushed by `gsettings monitor`
//   - CommandSource: macOS `defaults` or Windows `reg query`, polled
//   - GTKSettingsSource: ~/.config/gtk-3.0/settings.ini, watched with fsnotify
//   - TerminalSource: terminal background color, polled
//   - EnvSource: GTK_THEME, fixed for the life of the process
//
// New builds a source by kind name; Detect picks one for the platform.
//
// # Failure Handling
//
// Query and Subscribe failures are returned as *HostError. Callers decide the
// fallback; the theme controller treats any failure as light.
//
// # Usage Example
//
//	src, err := appearance.New(appearance.KindAuto, appearance.Options{})
//	if err != nil {
//	    return err
//	}
//	sub, err := src.Subscribe(ctx, func(a appearance.Appearance) {
//	    fmt.Println("host is now", a)
//	})
//	if err != nil {
//	    return err
//	}
//	defer sub.Cancel()
package appearance
