// Package manifest edits build manifests made of parenthesized list
// statements, such as CMakeLists.txt files.
//
// A Buffer holds the raw text of one manifest. There is no parse tree: every
// operation is a pattern-scoped rewrite of the text, so comments, blank lines
// and hand-made formatting outside the edited span survive untouched.
//
// # Occurrence contract
//
// Every mutating method reports how many places it matched. Callers branch on
// the count with Classify:
//
//   - NoMatch: nothing was changed
//   - Applied: exactly one place was changed
//   - Ambiguous: several places matched; only the first was changed
//
// Statement-scoped edits (AppendValue, RemoveValue, DeleteEntry) only ever
// look at the first matching statement. DisableFile records an
// AmbiguousEditWarning for zero or multiple hits; warnings are advisory and
// never returned as errors.
//
// Statement names are matched at the start of a line (after indentation), so
// commented-out statements are never edited. Bodies may not contain nested
// parentheses.
package manifest
