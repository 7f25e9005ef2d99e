// Package selection resolves which elements are selected and which can be
// selected by a rubber-band rectangle.
//
// All functions are pure over their inputs: they never modify the element
// slice, the elements or the State they are given, and return fresh values
// instead. Memoization goes through an explicit *Cache owned by the editing
// session. A nil *Cache disables memoization.
//
// # Frame exclusivity
//
// A frame and any of its children never both appear as independent entries in
// a resolved selection: when the frame is a candidate, its children are
// dropped.
//
// # Cache keys
//
// Cache supports two key modes. KeyExact fingerprints the content that a
// result depends on (ids, group ids, versions, selection maps), so a hit is
// only possible for content-identical inputs. KeyApprox keys on element and
// selection counts, or on slice and map identity, and accepts that two
// logically different calls sharing a count can return a stale result.
package selection
