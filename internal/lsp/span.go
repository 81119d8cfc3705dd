package lsp

import (
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// splitLines keeps the builder's view of the document: newline-separated,
// carriage returns stripped so columns agree across platforms.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// utf16Col converts a byte column within line to UTF-16 code units, the
// coordinate space the protocol mandates.
func utf16Col(line string, byteCol int) int {
	if byteCol <= 0 {
		return 0
	}
	if byteCol > len(line) {
		byteCol = len(line)
	}
	units := 0
	for i := 0; i < byteCol; {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return units
}

// utf16Len is the UTF-16 length of a whole line, used for "to end of line"
// diagnostic ranges.
func utf16Len(line string) int {
	return utf16Col(line, len(line))
}

// byteColForUTF16 is the inverse mapping for incoming positions: the byte
// offset within line of the given UTF-16 column.
func byteColForUTF16(line string, utf16Units int) int {
	if utf16Units <= 0 {
		return 0
	}
	units := 0
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > utf16Units {
			return i
		}
		units += need
		i += size
		if units == utf16Units {
			return i
		}
	}
	return len(line)
}
