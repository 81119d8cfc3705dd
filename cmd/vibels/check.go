package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vibe-lang/vibe-vscode/internal/config"
	"github.com/vibe-lang/vibe-vscode/internal/diag"
	"github.com/vibe-lang/vibe-vscode/internal/runner"
)

var checkCmd = &cobra.Command{
	Use:          "check [flags] <files...>",
	Short:        "Run the Vibe interpreter over files and report diagnostics",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().String("interpreter", "", "interpreter binary (overrides vibe.toml)")
}

type checkResult struct {
	path  string
	diags []diag.Diagnostic
	skip  string
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.LoadFromDir(".")
	if err != nil {
		return err
	}
	if override, _ := cmd.Flags().GetString("interpreter"); override != "" {
		cfg.Interpreter.Binary = override
	}

	results := make([]checkResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			result, err := runner.Invoke(ctx, path, runner.Options{
				Binary:           cfg.Interpreter.Binary,
				UseRunSubcommand: cfg.Interpreter.UseRunSubcommand,
				Timeout:          cfg.Timeout(),
				MaxOutput:        cfg.MaxOutput(),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if result.TimedOut {
				results[i] = checkResult{path: path, skip: "interpreter timed out"}
				return nil
			}
			results[i] = checkResult{path: path, diags: diag.Locate(result.Stderr)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	hasErrors := false
	quiet, _ := cmd.Flags().GetBool("quiet")
	for _, res := range results {
		if res.skip != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", res.path, res.skip)
			continue
		}
		if len(res.diags) > 0 {
			hasErrors = true
			printDiagnostics(res.path, res.diags)
		} else if !quiet {
			fmt.Printf("%s %s\n", color.GreenString("ok"), res.path)
		}
	}
	if hasErrors {
		os.Exit(1)
	}
	return nil
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	contextColor = color.New(color.Faint)
)

func printDiagnostics(path string, diags []diag.Diagnostic) {
	lines := readLines(path)
	for _, d := range diags {
		fmt.Printf("%s:%d:%d: %s: %s\n",
			path, d.Line+1, d.Col+1, errorColor.Sprint(d.Severity), d.Message)
		if d.Line < 0 || d.Line >= len(lines) {
			continue
		}
		src := lines[d.Line]
		fmt.Printf("  %s\n", contextColor.Sprint(src))
		// The caret sits under the reported column; the underline runs to
		// the end of the line since the interpreter never reports one.
		runes := []rune(src)
		col := d.Col
		if col > len(runes) {
			col = len(runes)
		}
		pad := runewidth.StringWidth(string(runes[:col]))
		rest := runewidth.StringWidth(string(runes[col:]))
		if rest < 1 {
			rest = 1
		}
		fmt.Printf("  %s%s\n", strings.Repeat(" ", pad), errorColor.Sprint("^"+strings.Repeat("~", rest-1)))
	}
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
