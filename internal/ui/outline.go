// Package ui renders an interactive outline browser in the terminal. It is
// the CLI stand-in for the editor's outline panel: the same symbol forest,
// navigable with vi-style keys.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vibe-lang/vibe-vscode/internal/outline"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Toggle: key.NewBinding(key.WithKeys("enter", " ")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// row is one visible line of the tree.
type row struct {
	sym      *outline.Symbol
	depth    int
	expanded bool
	foldable bool
}

type outlineModel struct {
	title     string
	forest    []*outline.Symbol
	collapsed map[*outline.Symbol]bool
	cursor    int
	width     int
	height    int
}

// NewOutlineModel returns a Bubble Tea model that browses a symbol forest.
func NewOutlineModel(title string, forest []*outline.Symbol) tea.Model {
	return &outlineModel{
		title:     title,
		forest:    forest,
		collapsed: make(map[*outline.Symbol]bool),
		width:     80,
		height:    24,
	}
}

func (m *outlineModel) Init() tea.Cmd {
	return nil
}

func (m *outlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visibleRows())-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			rows := m.visibleRows()
			if m.cursor < len(rows) && rows[m.cursor].foldable {
				sym := rows[m.cursor].sym
				m.collapsed[sym] = !m.collapsed[sym]
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *outlineModel) visibleRows() []row {
	rows := make([]row, 0, 16)
	var walk func(syms []*outline.Symbol, depth int)
	walk = func(syms []*outline.Symbol, depth int) {
		for _, sym := range syms {
			foldable := len(sym.Children) > 0
			rows = append(rows, row{
				sym:      sym,
				depth:    depth,
				foldable: foldable,
				expanded: foldable && !m.collapsed[sym],
			})
			if foldable && !m.collapsed[sym] {
				walk(sym.Children, depth+1)
			}
		}
	}
	walk(m.forest, 0)
	return rows
}

func (m *outlineModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	if len(rows) == 0 {
		b.WriteString("  (no symbols)\n")
		return b.String()
	}
	for i, r := range rows {
		marker := "  "
		if r.foldable {
			if r.expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		label := fmt.Sprintf("%s%s%s %s",
			strings.Repeat("  ", r.depth),
			marker,
			r.sym.Name,
			kindStyle.Render(fmt.Sprintf("%s :%d", r.sym.Kind, r.sym.Start.Line+1)),
		)
		label = truncate(label, m.width-4)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n  j/k move · enter fold · q quit\n")
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
