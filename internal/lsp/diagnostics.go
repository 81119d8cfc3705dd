package lsp

import (
	"context"
	"time"

	"github.com/vibe-lang/vibe-vscode/internal/diag"
	"github.com/vibe-lang/vibe-vscode/internal/runner"
)

// scheduleDiagnostics debounces an interpreter run for one document. Each
// call supersedes the previous one for the same URI; the sequence check in
// publishFor guarantees the latest run wins even if an older invocation
// finishes late.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	if !s.cfg.DiagnosticsEnabled() {
		s.mu.Unlock()
		s.clearAllDiagnostics()
		return
	}
	s.diagSeq[uri]++
	seq := s.diagSeq[uri]
	if t := s.timers[uri]; t != nil {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(uri, seq)
	})
	s.mu.Unlock()
}

func (s *Server) runDiagnostics(uri string, seq uint64) {
	s.mu.Lock()
	if s.diagSeq[uri] != seq {
		s.mu.Unlock()
		return
	}
	_, open := s.openDocs[uri]
	cfg := s.cfg
	s.mu.Unlock()
	if !open {
		return
	}
	path := uriToPath(uri)
	if path == "" {
		return
	}

	ctx := s.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := s.invoke(ctx, path, runner.Options{
		Binary:           cfg.Interpreter.Binary,
		UseRunSubcommand: cfg.Interpreter.UseRunSubcommand,
		Timeout:          cfg.Timeout(),
		MaxOutput:        cfg.MaxOutput(),
	})
	if err != nil {
		// Could not launch the interpreter at all; treat as "no diagnostics
		// available" rather than surfacing a failure to the editor.
		s.logf("interpreter run failed: %v", err)
		s.publishFor(uri, seq, nil)
		return
	}
	if result.TimedOut {
		s.logf("interpreter run timed out for %s", path)
		s.publishFor(uri, seq, nil)
		return
	}

	diags := diag.Locate(result.Stderr)
	if len(diags) > s.maxDiagnostics {
		diags = diags[:s.maxDiagnostics]
	}
	s.publishFor(uri, seq, diags)
}

// publishFor replaces a document's diagnostics in the store and on the wire.
// A stale sequence means a newer run is in flight and this result is dropped.
func (s *Server) publishFor(uri string, seq uint64, diags []diag.Diagnostic) {
	s.mu.Lock()
	if s.diagSeq[uri] != seq {
		s.mu.Unlock()
		return
	}
	text, open := s.openDocs[uri]
	if !open {
		s.mu.Unlock()
		return
	}
	_, hadPublished := s.published[uri]
	if len(diags) > 0 {
		s.published[uri] = struct{}{}
	} else {
		delete(s.published, uri)
	}
	s.mu.Unlock()

	s.store.Set(uri, diags)
	if len(diags) == 0 && !hadPublished {
		return
	}
	if err := s.sendPublish(uri, convertDiagnostics(diags, splitLines(text))); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
}

// convertDiagnostics maps located diagnostics onto protocol ranges. The
// interpreter never reports an end position, so each range runs to the end
// of the reported line.
func convertDiagnostics(diags []diag.Diagnostic, lines []string) []lspDiagnostic {
	out := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		startChar := d.Col
		endChar := d.Col
		if d.Line >= 0 && d.Line < len(lines) {
			line := lines[d.Line]
			if startChar > utf16Len(line) {
				startChar = utf16Len(line)
			}
			endChar = utf16Len(line)
		}
		out = append(out, lspDiagnostic{
			Range: lspRange{
				Start: position{Line: safeUint32(d.Line), Character: safeUint32(startChar)},
				End:   position{Line: safeUint32(d.Line), Character: safeUint32(endChar)},
			},
			Severity: d.Severity.LSP(),
			Source:   "vibe",
			Message:  d.Message,
		})
	}
	return out
}

// clearAllDiagnostics wipes the store and retracts anything published.
func (s *Server) clearAllDiagnostics() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	s.published = make(map[string]struct{})
	s.mu.Unlock()

	s.store.ClearAll()
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}
