// Package controller keeps the UI's appearance in step with the user's theme
// mode and, in system mode, with the host.
//
// # Lifecycle
//
//	Uninitialized --Bootstrap--> Active(mode, subscribed) --Close--> Closed
//
// Bootstrap reads the stored mode (light if unreadable), applies the
// resolved appearance and, for system mode, subscribes to host changes.
// SetMode persists the new mode, applies it and reconciles the
// subscription. Exactly one host subscription is live when the mode is
// system and the host cooperated; none otherwise.
//
// # Concurrency
//
// Bootstrap, SetMode and Close are serialized; a SetMode issued while another
// is in flight waits for it. Host notifications never call into the
// controller directly: the subscription callback posts to a one-slot inbox
// and a single event loop applies it. Each subscription carries a
// generation number, and events from a released generation are dropped, so
// a late notification from a cancelled subscription cannot change the
// appearance.
//
// # Failures
//
//   - Unreadable preference: logged, light is used.
//   - Preference write: SetMode returns ErrPersistenceWrite after applying.
//   - Host query: logged, light is applied, no subscription.
//   - Host subscribe: logged, the queried value stays until the next SetMode.
//
// # Usage Example
//
//	store, _ := prefs.DefaultFileStore()
//	src, _ := appearance.New(appearance.KindAuto, appearance.Options{})
//	ctrl := controller.New(store, src, theme.Presentation)
//	if err := ctrl.Bootstrap(ctx); err != nil {
//	    return err
//	}
//	defer ctrl.Close()
//
//	err := ctrl.SetMode(ctx, theme.ModeSystem)
package controller
