package diag

import (
	"sort"
	"sync"
	"testing"
)

func TestStoreReplaceWholeSet(t *testing.T) {
	store := NewStore()
	store.Set("file:///a.vibe", []Diagnostic{{Line: 1, Message: "old", Severity: SevError}})
	store.Set("file:///a.vibe", []Diagnostic{
		{Line: 3, Message: "new one", Severity: SevError},
		{Line: 5, Message: "new two", Severity: SevError},
	})
	got := store.Get("file:///a.vibe")
	if len(got) != 2 {
		t.Fatalf("expected full replacement, got %+v", got)
	}
	if got[0].Message != "new one" {
		t.Fatalf("stale diagnostic survived: %+v", got[0])
	}
}

func TestStoreEmptySetClears(t *testing.T) {
	store := NewStore()
	store.Set("file:///a.vibe", []Diagnostic{{Message: "boom", Severity: SevError}})
	store.Set("file:///a.vibe", nil)
	if got := store.Get("file:///a.vibe"); got != nil {
		t.Fatalf("empty set should clear the entry, got %+v", got)
	}
	if uris := store.URIs(); len(uris) != 0 {
		t.Fatalf("no URIs should remain, got %v", uris)
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Set("file:///a.vibe", []Diagnostic{{Message: "a", Severity: SevError}})
	store.Set("file:///b.vibe", []Diagnostic{{Message: "b", Severity: SevError}})
	store.Clear("file:///a.vibe")
	if store.Get("file:///a.vibe") != nil {
		t.Fatal("cleared document should have no diagnostics")
	}
	if store.Get("file:///b.vibe") == nil {
		t.Fatal("other documents must be untouched")
	}
	store.ClearAll()
	if uris := store.URIs(); len(uris) != 0 {
		t.Fatalf("ClearAll left entries: %v", uris)
	}
}

func TestStoreGetCopies(t *testing.T) {
	store := NewStore()
	store.Set("file:///a.vibe", []Diagnostic{{Message: "keep", Severity: SevError}})
	got := store.Get("file:///a.vibe")
	got[0].Message = "mutated"
	if store.Get("file:///a.vibe")[0].Message != "keep" {
		t.Fatal("Get must return a copy, not the internal slice")
	}
}

func TestStoreConcurrentDocuments(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	uris := []string{"file:///a.vibe", "file:///b.vibe", "file:///c.vibe"}
	for _, uri := range uris {
		wg.Add(1)
		go func(uri string) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				store.Set(uri, []Diagnostic{{Line: i, Message: uri, Severity: SevError}})
				store.Get(uri)
			}
		}(uri)
	}
	wg.Wait()
	got := store.URIs()
	sort.Strings(got)
	if len(got) != len(uris) {
		t.Fatalf("expected %d documents, got %v", len(uris), got)
	}
}
