package lsp

import (
	"encoding/json"

	"github.com/vibe-lang/vibe-vscode/internal/outline"
)

// LSP SymbolKind values for the kinds the outline produces.
const (
	symbolKindClass    = 5
	symbolKindMethod   = 6
	symbolKindEnum     = 10
	symbolKindFunction = 12
	symbolKindConstant = 14
	symbolKindStruct   = 23
)

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	text, ok := s.documentText(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []documentSymbol{})
	}
	forest := outline.Build(text)
	lines := splitLines(text)
	return s.sendResponse(msg.ID, convertSymbols(forest, lines, false))
}

func convertSymbols(forest []*outline.Symbol, lines []string, nested bool) []documentSymbol {
	out := make([]documentSymbol, 0, len(forest))
	for _, sym := range forest {
		out = append(out, convertSymbol(sym, lines, nested))
	}
	return out
}

func convertSymbol(sym *outline.Symbol, lines []string, nested bool) documentSymbol {
	start := positionFor(sym.Start, lines)
	end := positionFor(sym.End, lines)
	selEnd := positionFor(outline.Position{Line: sym.Start.Line, Col: sym.Start.Col + len(sym.Name)}, lines)
	return documentSymbol{
		Name: sym.Name,
		Kind: symbolKindFor(sym.Kind, nested),
		Range: lspRange{
			Start: start,
			End:   end,
		},
		SelectionRange: lspRange{
			Start: start,
			End:   selEnd,
		},
		Children: convertSymbols(sym.Children, lines, true),
	}
}

func positionFor(pos outline.Position, lines []string) position {
	col := pos.Col
	if pos.Line >= 0 && pos.Line < len(lines) {
		col = utf16Col(lines[pos.Line], pos.Col)
	}
	return position{Line: safeUint32(pos.Line), Character: safeUint32(col)}
}

func symbolKindFor(kind outline.Kind, nested bool) int {
	switch kind {
	case outline.KindFunction:
		if nested {
			return symbolKindMethod
		}
		return symbolKindFunction
	case outline.KindClass:
		return symbolKindClass
	case outline.KindStruct:
		return symbolKindStruct
	case outline.KindEnum:
		return symbolKindEnum
	case outline.KindConstant:
		return symbolKindConstant
	}
	return symbolKindFunction
}
