package diag

import "sync"

// Store holds the current diagnostic set per document, keyed by URI. It is
// owned by the host (LSP server or CLI); the parsing functions themselves
// stay free of this state. Every Set replaces a document's diagnostics
// atomically; stale entries never survive a new interpreter run.
// Thread-safe for concurrent documents.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]Diagnostic
}

func NewStore() *Store {
	return &Store{docs: make(map[string][]Diagnostic)}
}

// Set replaces the whole diagnostic set for a document.
func (s *Store) Set(uri string, diags []Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(diags) == 0 {
		delete(s.docs, uri)
		return
	}
	s.docs[uri] = append([]Diagnostic(nil), diags...)
}

// Get returns a copy of a document's current diagnostics.
func (s *Store) Get(uri string) []Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	diags, ok := s.docs[uri]
	if !ok {
		return nil
	}
	return append([]Diagnostic(nil), diags...)
}

// Clear drops a document's diagnostics, e.g. when it is closed or when the
// interpreter run succeeded with no error output.
func (s *Store) Clear(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// ClearAll drops every document's diagnostics, e.g. when diagnostics are
// disabled by configuration.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string][]Diagnostic)
}

// URIs lists documents that currently have diagnostics.
func (s *Store) URIs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	return uris
}
