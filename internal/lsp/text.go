package lsp

import "unicode/utf8"

func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	if len(changes) == 0 {
		return text
	}
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		if end < start {
			end = start
		}
		if start > len(text) {
			start = len(text)
		}
		if end > len(text) {
			end = len(text)
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

func offsetForPosition(text string, pos position) int {
	line := 0
	i := 0
	for i < len(text) && line < int(pos.Line) {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < int(pos.Line) {
		return len(text)
	}
	utf16Units := 0
	for i < len(text) {
		if text[i] == '\n' {
			break
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if utf16Units+need > int(pos.Character) {
			break
		}
		utf16Units += need
		i += size
		if utf16Units == int(pos.Character) {
			break
		}
	}
	return i
}
