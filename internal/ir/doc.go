// Package ir provides the intermediate representation of a block as it
// travels from the source introspector to the binding generator.
//
// This package contains type definitions, the type mapper and the canonical
// encoding used for fingerprints. All other internal packages import ir; ir
// imports nothing internal.
//
// Key design constraints:
//   - Parameter and Descriptor values are treated as immutable once produced;
//     transformations return copies (see Descriptor.Clone)
//   - Type mapping never fails: unknown source types map to TypeRaw
//   - All JSON tags use snake_case
package ir
