// Package theme turns a stored theme preference into an effective
// appearance and publishes it to the render layer.
//
// # Modes
//
// A Mode is what the user picked: light, dark, or system. Resolve maps a mode
// plus the host's current appearance to the appearance actually rendered:
//
//	light  -> light
//	dark   -> dark
//	system -> whatever the host reports
//
// Resolve is pure; the host appearance argument is ignored for light and
// dark.
//
// # Presentation Flag
//
// Presentation is the single process-wide "is dark" flag. The theme
// controller writes it through the Applier interface; views read it with
// IsDark or register with Observe to re-render on change:
//
//	stop := theme.Presentation.Observe(func(a appearance.Appearance) {
//	    program.Send(appearanceMsg(a))
//	})
//	defer stop()
//
// PaletteFor returns the color roles for an appearance.
package theme
