package lsp

import (
	"encoding/json"
	"sort"

	"github.com/vibe-lang/vibe-vscode/internal/outline"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	text, ok := s.documentText(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, buildFoldingRanges(outline.Build(text)))
}

// buildFoldingRanges folds every outlined construct whose block spans more
// than one line. Control-flow blocks are invisible to the outline and thus
// not foldable here; the full language server handles those.
func buildFoldingRanges(forest []*outline.Symbol) []foldingRange {
	ranges := make([]foldingRange, 0, len(forest))
	var walk func(syms []*outline.Symbol)
	walk = func(syms []*outline.Symbol) {
		for _, sym := range syms {
			if sym.End.Line > sym.Start.Line {
				ranges = append(ranges, foldingRange{
					StartLine: safeUint32(sym.Start.Line),
					EndLine:   safeUint32(sym.End.Line),
				})
			}
			walk(sym.Children)
		}
	}
	walk(forest)
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].StartLine == ranges[j].StartLine {
			return ranges[i].EndLine < ranges[j].EndLine
		}
		return ranges[i].StartLine < ranges[j].StartLine
	})
	return ranges
}
