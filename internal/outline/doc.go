// Package outline infers a document symbol tree from raw Vibe source text.
//
// # Purpose
//
//   - Provide a fast, dependency-free approximation of the document outline
//     (functions, classes, structs, enums, constants) when no full language
//     server is available to the editor.
//   - Produce deterministic, serialisable symbol records with zero-based
//     line/column positions that map directly onto editor outline views.
//
// # Scope
//
// The builder is purely textual. It never lexes, parses, or executes Vibe
// code; it matches a fixed, ordered table of defining line patterns and
// tracks block nesting with a depth counter plus an explicit frame stack.
// Malformed input yields a partial or empty forest, never an error. The
// result is a best-effort approximation, not a grammar-backed parse.
//
// # Data model
//
// Symbol is the central record. Children are ordered by appearance in the
// source. A Function or Enum defined inside an open Class or Struct block
// becomes a child of that block's symbol; Class, Struct and Constant are
// always top-level, matching the language's flat namespace for types.
//
// Unterminated blocks keep their provisional end position (the defining
// line's end); a closing keyword with no open frame is a no-op.
package outline
