package outline

// Kind classifies a named construct found in source text.
type Kind uint8

const (
	// KindFunction is a `def` function or method.
	KindFunction Kind = iota
	// KindClass is a `class` declaration.
	KindClass
	// KindStruct is a `struct` declaration.
	KindStruct
	// KindEnum is an `enum` declaration.
	KindEnum
	// KindConstant is a top-level `const NAME = ...` binding.
	KindConstant
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindConstant:
		return "constant"
	}
	return "unknown"
}

// Position is a zero-based line/column pair. Columns count bytes within the
// line; conversion to UTF-16 units happens at the LSP boundary.
type Position struct {
	Line int
	Col  int
}

// Symbol is one named construct in the document outline. Start points at the
// defining identifier; End is the closing boundary of the construct's block,
// or the defining line's end while the block is still open.
type Symbol struct {
	Name     string
	Kind     Kind
	Start    Position
	End      Position
	Children []*Symbol
}
