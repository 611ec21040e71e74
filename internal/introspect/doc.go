// Package introspect extracts a block's construction parameters and stream
// port signature from its source/header pair.
//
// The scanner is structural, not a compiler front end: it locates the factory
// declaration in the header and the io_signature calls in the source and
// tolerates any surrounding code. Macros, templates and build configuration
// are not resolved. A human reviews the generated descriptor afterwards.
package introspect
