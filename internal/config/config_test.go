package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vibe.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[interpreter]
binary = "/opt/vibe/bin/vibe"
use_run_subcommand = true

[diagnostics]
enabled = false
timeout_ms = 1500
max_output_kb = 16
`)
	cfg, path, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path == "" {
		t.Fatal("expected manifest path")
	}
	if cfg.Interpreter.Binary != "/opt/vibe/bin/vibe" || !cfg.Interpreter.UseRunSubcommand {
		t.Fatalf("interpreter config: %+v", cfg.Interpreter)
	}
	if cfg.DiagnosticsEnabled() {
		t.Fatal("diagnostics should be disabled")
	}
	if cfg.Timeout() != 1500*time.Millisecond {
		t.Fatalf("timeout: %v", cfg.Timeout())
	}
	if cfg.MaxOutput() != 16*1024 {
		t.Fatalf("max output: %d", cfg.MaxOutput())
	}
}

func TestLoadFromDirDefaults(t *testing.T) {
	cfg, path, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != "" {
		t.Fatalf("expected no manifest, got %q", path)
	}
	if cfg.Interpreter.Binary != "vibe" {
		t.Fatalf("default binary: %q", cfg.Interpreter.Binary)
	}
	if !cfg.DiagnosticsEnabled() {
		t.Fatal("diagnostics default on")
	}
	if cfg.Timeout() != 5*time.Second {
		t.Fatalf("default timeout: %v", cfg.Timeout())
	}
}

func TestFindVibeTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[interpreter]\nbinary = \"vibe\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := FindVibeToml(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !ok || filepath.Dir(path) != root {
		t.Fatalf("expected manifest in %s, got %q ok=%v", root, path, ok)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "not [valid toml")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPartialManifestKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[diagnostics]\ntimeout_ms = 250\n")
	cfg, _, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Interpreter.Binary != "vibe" {
		t.Fatalf("binary default lost: %q", cfg.Interpreter.Binary)
	}
	if cfg.Timeout() != 250*time.Millisecond {
		t.Fatalf("timeout: %v", cfg.Timeout())
	}
	if cfg.MaxOutput() != 64*1024 {
		t.Fatalf("max output default lost: %d", cfg.MaxOutput())
	}
}
