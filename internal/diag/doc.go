// Package diag defines the diagnostic model for the Vibe editor tooling and
// the locator that lifts free-form interpreter error output into structured,
// position-anchored diagnostics.
//
// The interpreter reports problems as plain text on stderr, one finding per
// line, in two recognized shapes:
//
//	[<line>:<column>] message   (1-based line:column prefix)
//	... line <N> ...            (1-based line number anywhere in the text)
//
// Anything else becomes an unanchored diagnostic at the start of the
// document. Locate is a pure, single-pass, best-effort scan: it never fails,
// and malformed positions are clamped rather than propagated.
//
// Store holds the current diagnostic set per document on behalf of the host.
// Sets are replaced whole on every interpreter run, never merged.
package diag
