// Package id generates node IDs for collection wrappers.
//
// Two schemes are provided:
//
//   - Deterministic: content-addressable IDs derived from a prefix and
//     identifying parts. The same inputs always produce the same ID, so
//     keyed-map entries can be located without an index.
//   - Random: uuid-backed IDs for positionally addressed elements such as
//     sequence members, where identity carries no content.
//
// Both schemes prefix the ID with its kind (e.g. "entry:...", "el:...") so
// rendered graphs stay readable.
package id
