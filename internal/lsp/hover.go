package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/vibe-lang/vibe-vscode/internal/outline"
)

// Documentation for the language's block and declaration keywords. These are
// served even without an interpreter installed; everything richer is the
// external language server's job.
var keywordDocs = map[string]string{
	"def":    "`def name(args)`: declares a function or method. The body runs until the matching `end`.",
	"class":  "`class Name`: declares a class. Classes are always top-level; methods and enums declared inside belong to the class.",
	"struct": "`struct Name`: declares a plain data structure with named fields.",
	"enum":   "`enum Name`: declares an enumeration of variants.",
	"const":  "`const NAME = value`: binds an immutable constant. Constant names are SCREAMING_SNAKE_CASE.",
	"if":     "`if condition`: opens a conditional block, closed by `end`.",
	"for":    "`for item in collection`: opens a loop block, closed by `end`.",
	"while":  "`while condition`: opens a loop block, closed by `end`.",
	"match":  "`match value`: opens a pattern-matching block, closed by `end`.",
	"try":    "`try`: opens an exception-handling block, closed by `end`.",
	"end":    "`end`: closes the innermost open block.",
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	text, ok := s.documentText(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	result := buildHover(text, params.Position)
	return s.sendResponse(msg.ID, result)
}

func buildHover(text string, pos position) *hover {
	lines := splitLines(text)
	word, startCol, endCol := wordAt(lines, pos)
	if word == "" {
		return nil
	}
	line := int(pos.Line)
	hoverRange := lspRange{
		Start: position{Line: safeUint32(line), Character: safeUint32(utf16Col(lines[line], startCol))},
		End:   position{Line: safeUint32(line), Character: safeUint32(utf16Col(lines[line], endCol))},
	}

	if doc, ok := keywordDocs[word]; ok {
		return &hover{
			Contents: markupContent{Kind: "markdown", Value: doc},
			Range:    &hoverRange,
		}
	}
	if sym := findSymbolNamed(outline.Build(text), word); sym != nil {
		signature := fmt.Sprintf("```vibe\n%s %s\n```", sym.Kind, sym.Name)
		location := fmt.Sprintf("Defined at line %d", sym.Start.Line+1)
		return &hover{
			Contents: markupContent{Kind: "markdown", Value: signature + "\n" + location},
			Range:    &hoverRange,
		}
	}
	return nil
}

// wordAt extracts the identifier-shaped token under pos. Returned columns
// are byte offsets into the line.
func wordAt(lines []string, pos position) (word string, startCol, endCol int) {
	line := int(pos.Line)
	if line < 0 || line >= len(lines) {
		return "", 0, 0
	}
	lineText := lines[line]
	at := byteColForUTF16(lineText, int(pos.Character))
	if at > len(lineText) {
		at = len(lineText)
	}
	start := at
	for start > 0 && isWordByte(lineText[start-1]) {
		start--
	}
	end := at
	for end < len(lineText) && isWordByte(lineText[end]) {
		end++
	}
	if start == end {
		return "", 0, 0
	}
	return lineText[start:end], start, end
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func findSymbolNamed(forest []*outline.Symbol, name string) *outline.Symbol {
	for _, sym := range forest {
		if sym.Name == name {
			return sym
		}
		if found := findSymbolNamed(sym.Children, name); found != nil {
			return found
		}
	}
	return nil
}
