package diag

// Diagnostic is one reported problem, anchored to a zero-based position in
// the document it was reported against. The interpreter never reports an end
// position, so a diagnostic conceptually underlines from (Line, Col) to the
// end of that line; consumers materialise the end themselves.
type Diagnostic struct {
	Line     int
	Col      int
	Message  string
	Severity Severity
}
