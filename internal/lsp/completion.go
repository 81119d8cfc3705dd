package lsp

import (
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/vibe-lang/vibe-vscode/internal/outline"
)

// LSP CompletionItemKind values.
const (
	completionKindFunction = 3
	completionKindClass    = 7
	completionKindEnum     = 13
	completionKindKeyword  = 14
	completionKindConstant = 21
	completionKindStruct   = 22
)

var completionKeywords = []string{
	"class", "const", "def", "else", "end", "enum", "for",
	"if", "match", "return", "struct", "try", "while",
}

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	text, ok := s.documentText(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []completionItem{})
	}
	return s.sendResponse(msg.ID, buildCompletions(text, params.Position))
}

func buildCompletions(text string, pos position) []completionItem {
	prefix := typedPrefix(splitLines(text), pos)
	items := make([]completionItem, 0, 16)
	seen := make(map[string]struct{})

	for _, kw := range completionKeywords {
		if !matchesPrefix(kw, prefix) {
			continue
		}
		items = append(items, completionItem{Label: kw, Kind: completionKindKeyword})
		seen[kw] = struct{}{}
	}

	var walk func(syms []*outline.Symbol)
	walk = func(syms []*outline.Symbol) {
		for _, sym := range syms {
			if _, dup := seen[sym.Name]; !dup && matchesPrefix(sym.Name, prefix) {
				items = append(items, completionItem{
					Label:  sym.Name,
					Kind:   completionKindFor(sym.Kind),
					Detail: sym.Kind.String(),
				})
				seen[sym.Name] = struct{}{}
			}
			walk(sym.Children)
		}
	}
	walk(outline.Build(text))

	sort.SliceStable(items, func(i, j int) bool {
		// Keywords first, then symbols, alphabetical within each group.
		ki := items[i].Kind == completionKindKeyword
		kj := items[j].Kind == completionKindKeyword
		if ki != kj {
			return ki
		}
		return items[i].Label < items[j].Label
	})
	return items
}

// typedPrefix is the identifier fragment immediately left of the cursor.
func typedPrefix(lines []string, pos position) string {
	line := int(pos.Line)
	if line < 0 || line >= len(lines) {
		return ""
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
	return lineText[start:at]
}

// matchesPrefix compares case-insensitively on NFC-normalized forms, so a
// decomposed identifier typed by the editor still matches its composed
// definition.
func matchesPrefix(candidate, prefix string) bool {
	if prefix == "" {
		return true
	}
	c := strings.ToLower(norm.NFC.String(candidate))
	p := strings.ToLower(norm.NFC.String(prefix))
	return strings.HasPrefix(c, p)
}

func completionKindFor(kind outline.Kind) int {
	switch kind {
	case outline.KindFunction:
		return completionKindFunction
	case outline.KindClass:
		return completionKindClass
	case outline.KindStruct:
		return completionKindStruct
	case outline.KindEnum:
		return completionKindEnum
	case outline.KindConstant:
		return completionKindConstant
	}
	return completionKindFunction
}
