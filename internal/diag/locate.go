package diag

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// [12:3] message, the interpreter's preferred shape, 1-based.
	bracketRe = regexp.MustCompile(`^\[(\d+):(\d+)\]\s*(.*)$`)
	// "... line 12 ...", prose fallback, 1-based, anywhere in the text.
	proseLineRe = regexp.MustCompile(`(?i)\bline\s+(\d+)`)
)

// Locate parses one interpreter invocation's captured error text into an
// ordered list of diagnostics, one per non-blank line. It never fails; empty
// or whitespace-only input yields an empty list. Lines that match neither
// recognized shape become unanchored diagnostics at the document start.
func Locate(errorText string) []Diagnostic {
	diags := make([]Diagnostic, 0, 4)
	for _, raw := range strings.Split(errorText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		diags = append(diags, locateLine(line))
	}
	return diags
}

func locateLine(line string) Diagnostic {
	if m := bracketRe.FindStringSubmatch(line); m != nil {
		return Diagnostic{
			Line:     clampZero(atoiSafe(m[1]) - 1),
			Col:      clampZero(atoiSafe(m[2]) - 1),
			Message:  strings.TrimSpace(m[3]),
			Severity: SevError,
		}
	}
	if m := proseLineRe.FindStringSubmatch(line); m != nil {
		return Diagnostic{
			Line:     clampZero(atoiSafe(m[1]) - 1),
			Col:      0,
			Message:  line,
			Severity: SevError,
		}
	}
	return Diagnostic{Line: 0, Col: 0, Message: line, Severity: SevError}
}

// atoiSafe parses digits that may overflow int; overflow degrades to 0 and
// the diagnostic lands at the document start instead of failing.
func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
