// Package binding turns an extracted block descriptor into the metadata file
// consumed by the visual flowgraph tool.
//
// Generation is deterministic: parameters keep their extraction order and
// both directions are rendered inputs first, so regenerating from identical
// input is byte-for-byte reproducible. Every document is checked against an
// embedded CUE schema before it is rendered.
package binding
