package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibe-lang/vibe-vscode/internal/config"
	"github.com/vibe-lang/vibe-vscode/internal/lsp"
)

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Run the Vibe language server over stdio",
	SilenceUsage: true,
	RunE:         runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.LoadFromDir(".")
	if err != nil {
		// A broken manifest should not keep the editor from starting the
		// server; defaults still give outlines and hovers.
		fmt.Fprintf(os.Stderr, "vibels: %v (using defaults)\n", err)
		cfg = config.Default()
	}
	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{Config: cfg})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
