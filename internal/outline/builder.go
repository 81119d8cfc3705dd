package outline

import (
	"regexp"
	"strings"
)

// definingPattern is one entry of the ordered defining-line table. The first
// pattern whose regexp matches a line wins; a line never defines two symbols.
type definingPattern struct {
	kind       Kind
	re         *regexp.Regexp
	opensBlock bool
}

// Identifier casing is part of the pattern: types require an uppercase first
// letter, functions a lowercase one, constants are SCREAMING_SNAKE. A line
// whose identifier violates the casing rule for its keyword is not a
// definition, though its keyword still counts for depth tracking.
var definingPatterns = []definingPattern{
	{KindFunction, regexp.MustCompile(`^\s*def\s+([a-z_][A-Za-z0-9_]*)`), true},
	{KindClass, regexp.MustCompile(`^\s*class\s+([A-Z][A-Za-z0-9_]*)`), true},
	{KindStruct, regexp.MustCompile(`^\s*struct\s+([A-Z][A-Za-z0-9_]*)`), true},
	{KindEnum, regexp.MustCompile(`^\s*enum\s+([A-Z][A-Za-z0-9_]*)`), true},
	{KindConstant, regexp.MustCompile(`^\s*const\s+([A-Z][A-Z0-9_]*)\s*=`), false},
}

var (
	// Every keyword that opens a block, whether or not the line also
	// introduces a symbol. Conditionals, loops and try blocks contribute to
	// depth but never to the outline.
	blockOpenRe = regexp.MustCompile(`^\s*(?:def|class|struct|enum|if|for|while|match|try)\b`)
	// A standalone `end` closes the innermost open block.
	blockCloseRe = regexp.MustCompile(`^\s*end\s*$`)
)

// frame is one currently-open block during a single build. It remembers the
// depth that existed when the block opened, so the matching close is the one
// that brings depth back to (or below) that level. Frames hold non-owning
// pointers into the forest being built.
type frame struct {
	node  *Symbol
	depth int
}

// Build scans text top to bottom and returns the top-level symbol forest.
// It never fails: any input, including empty strings and binary garbage,
// yields a forest (possibly empty). Two calls on identical input produce
// structurally identical results.
func Build(text string) []*Symbol {
	lines := strings.Split(text, "\n")
	forest := make([]*Symbol, 0, 8)
	stack := make([]frame, 0, 8)
	depth := 0

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lineEnd := Position{Line: i, Col: len(line)}

		var node *Symbol
		var opensScope bool
		for _, pat := range definingPatterns {
			loc := pat.re.FindStringSubmatchIndex(line)
			if loc == nil {
				continue
			}
			node = &Symbol{
				Name:  line[loc[2]:loc[3]],
				Kind:  pat.kind,
				Start: Position{Line: i, Col: loc[2]},
				End:   lineEnd,
			}
			opensScope = pat.opensBlock
			break
		}

		if node != nil {
			// Methods and nested enums belong to the enclosing block's
			// symbol; every other kind stays top-level regardless of
			// lexical position.
			if len(stack) > 0 && (node.Kind == KindFunction || node.Kind == KindEnum) {
				top := stack[len(stack)-1]
				top.node.Children = append(top.node.Children, node)
			} else {
				forest = append(forest, node)
			}
		}

		// Depth tracking is independent of symbol recognition: a line like
		// `class lowercase` opens a block even though it defines nothing.
		// At most one increment and one decrement are applied per line.
		if blockOpenRe.MatchString(line) {
			openedAt := depth
			depth++
			if node != nil && opensScope {
				stack = append(stack, frame{node: node, depth: openedAt})
			}
		}
		if blockCloseRe.MatchString(line) {
			depth--
			if len(stack) > 0 && depth <= stack[len(stack)-1].depth {
				top := stack[len(stack)-1]
				top.node.End = lineEnd
				stack = stack[:len(stack)-1]
			}
		}
	}

	// Unterminated frames are abandoned; their nodes keep the provisional
	// end from the defining line.
	return forest
}
