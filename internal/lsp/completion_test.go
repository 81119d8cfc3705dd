package lsp

import (
	"strings"
	"testing"
)

func completionLabels(items []completionItem) []string {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	return labels
}

func TestCompletionKeywordsAndSymbols(t *testing.T) {
	text := strings.Join([]string{
		"class Greeter",
		"  def hello()",
		"  end",
		"end",
		"",
	}, "\n")
	items := buildCompletions(text, position{Line: 4, Character: 0})
	labels := completionLabels(items)

	var hasClassKw, hasGreeter, hasHello bool
	for _, label := range labels {
		switch label {
		case "class":
			hasClassKw = true
		case "Greeter":
			hasGreeter = true
		case "hello":
			hasHello = true
		}
	}
	if !hasClassKw || !hasGreeter || !hasHello {
		t.Fatalf("missing expected completions in %v", labels)
	}
	// Keywords sort ahead of document symbols.
	if items[0].Kind != completionKindKeyword {
		t.Fatalf("keywords should come first: %+v", items[0])
	}
}

func TestCompletionPrefixFilter(t *testing.T) {
	text := "class Greeter\nend\nclass Helper\nend\nGr"
	items := buildCompletions(text, position{Line: 4, Character: 2})
	labels := completionLabels(items)
	for _, label := range labels {
		if label == "Helper" {
			t.Fatalf("prefix filter leaked: %v", labels)
		}
	}
	found := false
	for _, label := range labels {
		if label == "Greeter" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Greeter in %v", labels)
	}
}

func TestCompletionPrefixCaseInsensitive(t *testing.T) {
	text := "class Greeter\nend\ngre"
	items := buildCompletions(text, position{Line: 2, Character: 3})
	found := false
	for _, item := range items {
		if item.Label == "Greeter" {
			found = true
		}
	}
	if !found {
		t.Fatalf("case-insensitive prefix should match, got %v", completionLabels(items))
	}
}

func TestCompletionDedupesSymbolNames(t *testing.T) {
	text := "def setup()\nend\ndef setup()\nend\n"
	items := buildCompletions(text, position{Line: 4, Character: 0})
	count := 0
	for _, item := range items {
		if item.Label == "setup" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one setup entry, got %d", count)
	}
}

func TestMatchesPrefixNormalizes(t *testing.T) {
	// é typed as e + combining acute must match the composed definition.
	composed := "café"
	decomposed := "café"
	if !matchesPrefix(composed, decomposed) {
		t.Fatal("NFC-equal strings should match")
	}
}
