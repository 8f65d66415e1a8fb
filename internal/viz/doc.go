// Package viz is a terminal preview of a parallax scene.
//
// Keyboard and mouse events are fed through an [input.Emitter] into an
// engine, exactly as a page would feed scroll and pointer events. The
// preview draws every element on a Braille [Canvas], lists the CSS applied
// to each one and plots the recent history of a selected term.
//
// # Key Bindings
//
//	j/k, ↓/↑   - Scroll by one step
//	PgDn/PgUp  - Scroll by one viewport
//	g/G        - Jump to top/bottom
//	Tab        - Select next element
//	[ ]        - Cycle the plotted term
//	T          - Cycle color themes
//	?          - Show help overlay
//	Q          - Quit
//
// Mouse motion moves the pointer. Pointer-driven layers ease toward their
// target with a spring whose speed follows the layer's transition hint;
// the easing is display-only and never feeds back into the engine.
package viz
