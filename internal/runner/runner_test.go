package runner

import (
	"context"
	"strings"
	"testing"
)

func TestArgsFor(t *testing.T) {
	if got := argsFor("main.vibe", false); len(got) != 1 || got[0] != "main.vibe" {
		t.Fatalf("direct mode args: %v", got)
	}
	got := argsFor("main.vibe", true)
	if len(got) != 2 || got[0] != "run" || got[1] != "main.vibe" {
		t.Fatalf("run-subcommand args: %v", got)
	}
}

func TestCappedBuffer(t *testing.T) {
	b := newCappedBuffer(8)
	n, err := b.Write([]byte("12345"))
	if err != nil || n != 5 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	if b.Truncated() {
		t.Fatal("should not be truncated yet")
	}
	n, err = b.Write([]byte("67890"))
	if err != nil || n != 5 {
		t.Fatalf("writes past the cap must still report full length: n=%d err=%v", n, err)
	}
	if b.String() != "12345678" {
		t.Fatalf("expected first 8 bytes, got %q", b.String())
	}
	if !b.Truncated() {
		t.Fatal("expected truncation flag")
	}
	// Further writes are swallowed entirely.
	if n, _ := b.Write([]byte("more")); n != 4 {
		t.Fatalf("swallowed write must report full length, got %d", n)
	}
	if b.String() != "12345678" {
		t.Fatalf("buffer grew past cap: %q", b.String())
	}
}

func TestInvokeMissingBinary(t *testing.T) {
	_, err := Invoke(context.Background(), "main.vibe", Options{Binary: "definitely-not-a-real-interpreter"})
	if err == nil {
		t.Fatal("expected launch error for missing binary")
	}
	if strings.Contains(err.Error(), "panic") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestInvokeRequiresBinary(t *testing.T) {
	if _, err := Invoke(context.Background(), "main.vibe", Options{}); err == nil {
		t.Fatal("expected error when no binary is configured")
	}
}
