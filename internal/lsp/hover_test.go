package lsp

import (
	"strings"
	"testing"
)

func TestHoverKeyword(t *testing.T) {
	text := "class Greeter\nend\n"
	h := buildHover(text, position{Line: 0, Character: 2})
	if h == nil {
		t.Fatal("expected hover for keyword")
	}
	if !strings.Contains(h.Contents.Value, "declares a class") {
		t.Fatalf("unexpected hover: %q", h.Contents.Value)
	}
	if h.Range == nil || h.Range.Start.Character != 0 || h.Range.End.Character != 5 {
		t.Fatalf("hover range should cover the keyword: %+v", h.Range)
	}
}

func TestHoverSymbol(t *testing.T) {
	text := "class Greeter\n  def hello()\n  end\nend\nGreeter\n"
	h := buildHover(text, position{Line: 4, Character: 3})
	if h == nil {
		t.Fatal("expected hover for known symbol")
	}
	if !strings.Contains(h.Contents.Value, "class Greeter") {
		t.Fatalf("expected signature, got %q", h.Contents.Value)
	}
	if !strings.Contains(h.Contents.Value, "line 1") {
		t.Fatalf("expected definition line, got %q", h.Contents.Value)
	}
}

func TestHoverNestedSymbol(t *testing.T) {
	text := "class Greeter\n  def hello()\n  end\nend\nhello\n"
	h := buildHover(text, position{Line: 4, Character: 1})
	if h == nil {
		t.Fatal("expected hover for nested symbol")
	}
	if !strings.Contains(h.Contents.Value, "function hello") {
		t.Fatalf("unexpected hover: %q", h.Contents.Value)
	}
}

func TestHoverUnknownWord(t *testing.T) {
	if h := buildHover("mystery\n", position{Line: 0, Character: 2}); h != nil {
		t.Fatalf("unknown word should have no hover, got %+v", h)
	}
}

func TestHoverOutOfRange(t *testing.T) {
	if h := buildHover("x\n", position{Line: 40, Character: 2}); h != nil {
		t.Fatalf("out-of-range position should have no hover, got %+v", h)
	}
}
