// Package input tracks the two signals that drive every parallax transform:
// the vertical scroll offset and the pointer position.
//
// A [Tracker] holds each signal in its own single-writer cell. Handlers
// ([Tracker.OnScroll], [Tracker.OnPointerMove]) write the cell and then
// synchronously notify watchers so callers can recompute descriptors. No
// debouncing, throttling or batching happens here; events are handled in
// the order a [Source] delivers them.
//
// Subscriptions are scoped: [Tracker.Mount] attaches the handlers to one or
// more sources and the returned [Mount] releases all of them on Close, no
// matter how the owner exits.
//
// # Pointer sentinel
//
// The zero [Pointer] is Unset. Layers keyed to the pointer must render no
// transform at all until the first real pointer-move event; they check
// [Pointer.Set] rather than comparing against (0, 0).
package input
