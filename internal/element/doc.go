// Package element defines the diagram elements the selection engine reads.
//
// Elements are owned by the scene. Once an element value is handed to the
// selection or render layers it is treated as immutable: the scene replaces
// elements wholesale (copy, modify, bump Version) and never edits a shared
// pointer in place. Caches keyed on element slices rely on this.
//
// Groups are not stored anywhere. An element's GroupIDs lists the groups it
// belongs to, outermost first; the last entry is the innermost group.
//
// Frames are ordinary elements of TypeFrame. Children reference their frame
// through FrameID.
package element
