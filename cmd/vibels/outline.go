package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vibe-lang/vibe-vscode/internal/outline"
	"github.com/vibe-lang/vibe-vscode/internal/ui"
)

var outlineCmd = &cobra.Command{
	Use:          "outline [flags] <file.vibe>",
	Short:        "Print the symbol outline of a Vibe source file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runOutline,
}

func init() {
	outlineCmd.Flags().Bool("json", false, "emit the outline as JSON")
	outlineCmd.Flags().Bool("interactive", false, "browse the outline in the terminal")
	outlineCmd.Flags().Bool("cached", false, "reuse the on-disk outline cache")
}

// jsonSymbol is the stable CLI shape; internal positions stay unexported
// from the wire format.
type jsonSymbol struct {
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	StartLine int          `json:"startLine"`
	StartCol  int          `json:"startCol"`
	EndLine   int          `json:"endLine"`
	EndCol    int          `json:"endCol"`
	Children  []jsonSymbol `json:"children,omitempty"`
}

func runOutline(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := string(data)

	useCache, _ := cmd.Flags().GetBool("cached")
	forest, err := buildOutline(text, useCache)
	if err != nil {
		return err
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		program := tea.NewProgram(ui.NewOutlineModel(path, forest), tea.WithAltScreen())
		_, err := program.Run()
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toJSONSymbols(forest))
	}
	printOutline(cmd, forest, 0)
	return nil
}

// buildOutline runs the builder, going through the disk cache when asked.
// Cache failures degrade to a plain build; the outline must always appear.
func buildOutline(text string, useCache bool) ([]*outline.Symbol, error) {
	if !useCache {
		return outline.Build(text), nil
	}
	cache, err := outline.OpenCache("vibels")
	if err != nil {
		return outline.Build(text), nil
	}
	key := outline.DigestOf(text)
	if forest, ok, err := cache.Get(key); err == nil && ok {
		return forest, nil
	}
	forest := outline.Build(text)
	if err := cache.Put(key, forest); err != nil {
		fmt.Fprintf(os.Stderr, "vibels: outline cache write failed: %v\n", err)
	}
	return forest, nil
}

var outlineKindColor = map[outline.Kind]*color.Color{
	outline.KindFunction: color.New(color.FgCyan),
	outline.KindClass:    color.New(color.FgYellow, color.Bold),
	outline.KindStruct:   color.New(color.FgYellow),
	outline.KindEnum:     color.New(color.FgMagenta),
	outline.KindConstant: color.New(color.FgGreen),
}

func printOutline(cmd *cobra.Command, forest []*outline.Symbol, depth int) {
	out := cmd.OutOrStdout()
	for _, sym := range forest {
		kindLabel := sym.Kind.String()
		if c, ok := outlineKindColor[sym.Kind]; ok {
			kindLabel = c.Sprint(kindLabel)
		}
		fmt.Fprintf(out, "%s%s %s  [%d:%d-%d:%d]\n",
			strings.Repeat("  ", depth),
			kindLabel,
			sym.Name,
			sym.Start.Line+1, sym.Start.Col+1,
			sym.End.Line+1, sym.End.Col+1,
		)
		printOutline(cmd, sym.Children, depth+1)
	}
}

func toJSONSymbols(forest []*outline.Symbol) []jsonSymbol {
	out := make([]jsonSymbol, 0, len(forest))
	for _, sym := range forest {
		out = append(out, jsonSymbol{
			Name:      sym.Name,
			Kind:      sym.Kind.String(),
			StartLine: sym.Start.Line,
			StartCol:  sym.Start.Col,
			EndLine:   sym.End.Line,
			EndCol:    sym.End.Col,
			Children:  toJSONSymbols(sym.Children),
		})
	}
	return out
}
