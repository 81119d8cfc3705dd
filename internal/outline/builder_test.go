package outline

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildClassWithMethods(t *testing.T) {
	text := strings.Join([]string{
		"class Greeter",
		"  def hello(name)",
		"    print(name)",
		"  end",
		"  def bye()",
		"  end",
		"end",
	}, "\n")

	forest := Build(text)
	if len(forest) != 1 {
		t.Fatalf("expected 1 top-level symbol, got %d", len(forest))
	}
	cls := forest[0]
	if cls.Name != "Greeter" || cls.Kind != KindClass {
		t.Fatalf("unexpected root symbol: %+v", cls)
	}
	if len(cls.Children) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(cls.Children))
	}
	if cls.Children[0].Name != "hello" || cls.Children[1].Name != "bye" {
		t.Fatalf("methods out of order: %q, %q", cls.Children[0].Name, cls.Children[1].Name)
	}
	// Each method ends at its own `end` line, the class at the outer one.
	if cls.Children[0].End.Line != 3 {
		t.Fatalf("hello should close at line 3, got %d", cls.Children[0].End.Line)
	}
	if cls.Children[1].End.Line != 5 {
		t.Fatalf("bye should close at line 5, got %d", cls.Children[1].End.Line)
	}
	if cls.End.Line != 6 {
		t.Fatalf("class should close at line 6, got %d", cls.End.Line)
	}
}

func TestBuildTopLevelFunction(t *testing.T) {
	forest := Build("def main()\nend\n")
	if len(forest) != 1 {
		t.Fatalf("expected 1 symbol, got %d", len(forest))
	}
	fn := forest[0]
	if fn.Kind != KindFunction || fn.Name != "main" {
		t.Fatalf("unexpected symbol: %+v", fn)
	}
	if fn.Start != (Position{Line: 0, Col: 4}) {
		t.Fatalf("start should point at the identifier, got %+v", fn.Start)
	}
	if fn.End.Line != 1 {
		t.Fatalf("function should close at line 1, got %d", fn.End.Line)
	}
}

func TestBuildStartPointsAtIdentifier(t *testing.T) {
	forest := Build("  class Indented\n  end\n")
	if len(forest) != 1 {
		t.Fatalf("expected 1 symbol, got %d", len(forest))
	}
	if forest[0].Start.Col != 8 {
		t.Fatalf("expected identifier column 8, got %d", forest[0].Start.Col)
	}
}

func TestBuildUnterminatedClass(t *testing.T) {
	forest := Build("class Dangling\n  def x()\n")
	if len(forest) != 1 {
		t.Fatalf("expected 1 top-level symbol, got %d", len(forest))
	}
	cls := forest[0]
	if cls.End != (Position{Line: 0, Col: len("class Dangling")}) {
		t.Fatalf("unterminated class should keep provisional end, got %+v", cls.End)
	}
	if len(cls.Children) != 1 || cls.Children[0].Name != "x" {
		t.Fatalf("nested def should still attach: %+v", cls.Children)
	}
}

func TestBuildConstants(t *testing.T) {
	forest := Build("const MAX_DEPTH = 8\nconst lower = 1\nconst Mixed = 2\n")
	if len(forest) != 1 {
		t.Fatalf("only SCREAMING_SNAKE constants are recognized, got %d symbols", len(forest))
	}
	c := forest[0]
	if c.Kind != KindConstant || c.Name != "MAX_DEPTH" {
		t.Fatalf("unexpected constant: %+v", c)
	}
	if c.End.Line != 0 || c.End.Col != len("const MAX_DEPTH = 8") {
		t.Fatalf("constant end should be its line's end, got %+v", c.End)
	}
}

func TestBuildCasingRules(t *testing.T) {
	// Wrong casing means no symbol, but the keyword still opens a block, so
	// the following def nests one level deeper and the end lines match up.
	text := strings.Join([]string{
		"class lowercase",
		"  def inner()",
		"  end",
		"end",
		"def after()",
		"end",
	}, "\n")
	forest := Build(text)
	if len(forest) != 2 {
		t.Fatalf("expected inner and after, got %d symbols", len(forest))
	}
	if forest[0].Name != "inner" || forest[1].Name != "after" {
		t.Fatalf("unexpected symbols: %q, %q", forest[0].Name, forest[1].Name)
	}
	if forest[1].End.Line != 5 {
		t.Fatalf("after should close at line 5, got %d", forest[1].End.Line)
	}
}

func TestBuildTypesNeverNest(t *testing.T) {
	text := strings.Join([]string{
		"class Outer",
		"  struct Inner",
		"  end",
		"  enum Color",
		"  end",
		"end",
	}, "\n")
	forest := Build(text)
	if len(forest) != 2 {
		t.Fatalf("expected Outer and Inner at top level, got %d", len(forest))
	}
	if forest[1].Kind != KindStruct || forest[1].Name != "Inner" {
		t.Fatalf("struct must stay top-level: %+v", forest[1])
	}
	outer := forest[0]
	if len(outer.Children) != 1 || outer.Children[0].Kind != KindEnum {
		t.Fatalf("enum should nest under the class: %+v", outer.Children)
	}
}

func TestBuildControlFlowContributesDepth(t *testing.T) {
	text := strings.Join([]string{
		"def outer()",
		"  if ready",
		"    while true",
		"    end",
		"  end",
		"end",
	}, "\n")
	forest := Build(text)
	if len(forest) != 1 {
		t.Fatalf("expected 1 symbol, got %d", len(forest))
	}
	if forest[0].End.Line != 5 {
		t.Fatalf("outer should close at line 5, not at a control-flow end: got %d", forest[0].End.Line)
	}
}

func TestBuildNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"end\nend\nend\n",
		"def",
		"class",
		"\x00\xff\xfe garbage \x80",
		"const = 1",
		strings.Repeat("if x\n", 200),
	}
	for _, input := range inputs {
		forest := Build(input)
		if forest == nil {
			t.Fatalf("Build(%q) returned nil forest", input)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	text := "class A\n  def m()\n  end\nend\nconst K = 1\n"
	first := Build(text)
	second := Build(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Build is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
