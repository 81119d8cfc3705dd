package lsp

import (
	"strings"
	"testing"

	"github.com/vibe-lang/vibe-vscode/internal/outline"
)

func TestBuildFoldingRanges(t *testing.T) {
	text := strings.Join([]string{
		"class Greeter",
		"  def hello()",
		"    x",
		"  end",
		"end",
		"const K = 1",
	}, "\n")
	ranges := buildFoldingRanges(outline.Build(text))
	if len(ranges) != 2 {
		t.Fatalf("expected class and method folds, got %+v", ranges)
	}
	if ranges[0].StartLine != 0 || ranges[0].EndLine != 4 {
		t.Fatalf("class fold: %+v", ranges[0])
	}
	if ranges[1].StartLine != 1 || ranges[1].EndLine != 3 {
		t.Fatalf("method fold: %+v", ranges[1])
	}
}

func TestFoldingSkipsSingleLineSymbols(t *testing.T) {
	ranges := buildFoldingRanges(outline.Build("const K = 1\n"))
	if len(ranges) != 0 {
		t.Fatalf("single-line constructs should not fold: %+v", ranges)
	}
}
