// Package groups derives group membership from elements and resolves
// group-level selection.
//
// Groups are never stored. An element's GroupIDs lists its groups from
// outermost to innermost, and a group is simply the set of elements whose
// GroupIDs contain its id. A group with fewer than two members is not
// selectable as a group; selecting it degrades to plain element selection.
//
// Nested editing: while EditingGroupID is set, the edited group and every
// group nested inside it are transparent to group selection. Selecting an
// element inside the edited group selects its innermost surviving ancestor
// outside that group, or just the element when there is none.
//
// Malformed or cyclic GroupIDs lists are not validated; callers keep them
// well formed.
package groups
