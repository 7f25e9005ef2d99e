// Package render decides when the two canvas surfaces must repaint.
//
// The static surface (shapes, background, grid) repaints only when the
// mutation nonce changed or when its projection of the view state changed.
// Selection fields are not part of that projection, so selection-only
// changes never repaint it.
//
// The interactive surface (selection handles, remote cursors, editing
// affordances) also watches the selection nonce, so a selection change
// repaints it even when no element changed. Its selection maps are compared
// by content because they are freshly allocated on every update; all other
// fields are compared by value.
//
// Selection resolution must finish before Canvases.Update runs: the gates
// read the already-updated fields.
//
// Painting itself is delegated to a Painter. A Throttle coalesces paint
// requests so at most one paint per surface happens per animation frame
// after the first.
package render
