// Package session wires the selection engine into an editing session.
//
// A Session owns one scene, the current view state, the selection cache, the
// selection nonce and the two gated canvases. Its commands mirror the
// editor's interaction handlers: each one computes the next selection state
// with packages selection and groups, replaces the view state wholesale and
// bumps the selection nonce when the selection content changed. Render must
// be called after a command to let the canvases decide what to repaint.
//
// Thread-safety: a Session is not safe for concurrent use. Editing is single
// threaded and every command runs to completion.
package session
