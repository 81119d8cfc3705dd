// Package runner launches the external Vibe interpreter for one document and
// captures its error output under a wall-clock timeout and an output cap.
// The captured stderr is what the diagnostic locator consumes; a timed-out
// or truncated run degrades to "no diagnostics available", never a crash.
package runner

import (
	"context"
	"errors"
	"os/exec"
	"time"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultMaxOutput = 64 * 1024
)

// Options configures one interpreter invocation.
type Options struct {
	// Binary is the interpreter executable. Required.
	Binary string
	// UseRunSubcommand invokes `<binary> run <path>` instead of
	// `<binary> <path>`; newer interpreter builds expect the subcommand.
	UseRunSubcommand bool
	// Timeout bounds the whole invocation. Zero means the default.
	Timeout time.Duration
	// MaxOutput bounds retained stderr bytes. Zero means the default.
	MaxOutput int
}

// Result is the outcome of one invocation.
type Result struct {
	Stderr    string
	ExitCode  int
	TimedOut  bool
	Truncated bool
}

// Invoke runs the interpreter on path and captures stderr. A non-zero exit
// is a normal outcome (the interpreter found errors); the returned error is
// reserved for failures to launch the process at all.
func Invoke(ctx context.Context, path string, opts Options) (Result, error) {
	if opts.Binary == "" {
		return Result{}, errors.New("runner: no interpreter binary configured")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxOutput := opts.MaxOutput
	if maxOutput <= 0 {
		maxOutput = defaultMaxOutput
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stderr := newCappedBuffer(maxOutput)
	cmd := exec.CommandContext(ctx, opts.Binary, argsFor(path, opts.UseRunSubcommand)...)
	cmd.Stderr = stderr

	err := cmd.Run()
	result := Result{
		Stderr:    stderr.String(),
		Truncated: stderr.Truncated(),
	}
	if ctx.Err() != nil {
		result.TimedOut = true
		return result, nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

func argsFor(path string, useRunSubcommand bool) []string {
	if useRunSubcommand {
		return []string{"run", path}
	}
	return []string{path}
}

// cappedBuffer keeps the first max bytes written and discards the rest.
// Discarding instead of failing keeps the interpreter's pipe drained.
type cappedBuffer struct {
	max       int
	buf       []byte
	truncated bool
}

func newCappedBuffer(max int) *cappedBuffer {
	return &cappedBuffer{max: max}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.max - len(b.buf)
	if room <= 0 {
		b.truncated = b.truncated || len(p) > 0
		return len(p), nil
	}
	if len(p) > room {
		b.buf = append(b.buf, p[:room]...)
		b.truncated = true
		return len(p), nil
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *cappedBuffer) String() string { return string(b.buf) }

func (b *cappedBuffer) Truncated() bool { return b.truncated }
