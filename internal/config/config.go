// Package config loads vibe.toml, the per-project manifest that tells the
// editor tooling how to reach the external interpreter and how diagnostics
// should be supervised. Absent manifest or absent fields fall back to
// defaults; the tooling works out of the box in a bare directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultBinary      = "vibe"
	defaultTimeoutMS   = 5000
	defaultMaxOutputKB = 64
)

// Config mirrors vibe.toml.
type Config struct {
	Interpreter InterpreterConfig `toml:"interpreter"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

// InterpreterConfig locates the external interpreter.
type InterpreterConfig struct {
	Binary string `toml:"binary"`
	// UseRunSubcommand switches the invocation to `vibe run <file>` for
	// interpreter builds that ship the subcommand-style CLI.
	UseRunSubcommand bool `toml:"use_run_subcommand"`
}

// DiagnosticsConfig bounds the on-save interpreter run.
type DiagnosticsConfig struct {
	Enabled     *bool `toml:"enabled"`
	TimeoutMS   int   `toml:"timeout_ms"`
	MaxOutputKB int   `toml:"max_output_kb"`
}

// Default returns the configuration used when no vibe.toml is present.
func Default() Config {
	return Config{
		Interpreter: InterpreterConfig{Binary: defaultBinary},
		Diagnostics: DiagnosticsConfig{
			TimeoutMS:   defaultTimeoutMS,
			MaxOutputKB: defaultMaxOutputKB,
		},
	}
}

// DiagnosticsEnabled reports whether on-save diagnostics are active; they
// are on unless the manifest says otherwise.
func (c Config) DiagnosticsEnabled() bool {
	if c.Diagnostics.Enabled == nil {
		return true
	}
	return *c.Diagnostics.Enabled
}

// Timeout returns the interpreter wall-clock bound.
func (c Config) Timeout() time.Duration {
	if c.Diagnostics.TimeoutMS <= 0 {
		return defaultTimeoutMS * time.Millisecond
	}
	return time.Duration(c.Diagnostics.TimeoutMS) * time.Millisecond
}

// MaxOutput returns the stderr capture cap in bytes.
func (c Config) MaxOutput() int {
	if c.Diagnostics.MaxOutputKB <= 0 {
		return defaultMaxOutputKB * 1024
	}
	return c.Diagnostics.MaxOutputKB * 1024
}

// FindVibeToml walks from startDir toward the filesystem root looking for a
// vibe.toml manifest.
func FindVibeToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "vibe.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses one manifest file. Unset fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Interpreter.Binary == "" {
		cfg.Interpreter.Binary = defaultBinary
	}
	return cfg, nil
}

// LoadFromDir finds and loads the nearest manifest above startDir, or the
// defaults when none exists. The second result is the manifest path, empty
// when defaults were used.
func LoadFromDir(startDir string) (Config, string, error) {
	path, ok, err := FindVibeToml(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}
