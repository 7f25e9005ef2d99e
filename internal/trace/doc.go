// Package trace serializes session step snapshots for golden comparison and
// for the run journal.
//
// Snapshots are encoded as canonical JSON: object keys sorted by UTF-16 code
// units, no insignificant whitespace, no HTML escaping, strings NFC
// normalized, no floats and no null. The same snapshot always encodes to the
// same bytes, so a digest of the encoding identifies the observable state
// after a step.
package trace
