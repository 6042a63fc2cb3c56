package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trieviz/pkg/pipeline"
	"github.com/matzehuels/trieviz/pkg/trie"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
	listKeywordStyle  = lipgloss.NewStyle().Foreground(colorOK)
)

// maxMatches bounds the keyword list shown under the current prefix.
const maxMatches = 10

// exploreCommand creates the interactive prefix explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "explore [keyword...]",
		Short: "Walk the trie interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.options(cmd, args, &opts)
			if err != nil {
				return err
			}
			b, err := pipeline.NewBuild(popts)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(NewExploreModel(b.Trie), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(ExploreModel); ok && m.Current != trie.Root {
				fmt.Fprintln(cmd.OutOrStdout(), m.Trie.Prefix(m.Current))
			}
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

// =============================================================================
// ExploreModel - Interactive trie navigation
// =============================================================================

// ExploreModel is the bubbletea model for walking a trie one character at a
// time.
type ExploreModel struct {
	Trie    *trie.Trie
	Current trie.NodeID
	Cursor  int

	path     []trie.NodeID // ancestors of Current, root first
	children []childEntry
}

type childEntry struct {
	char rune
	id   trie.NodeID
}

// NewExploreModel creates an explorer positioned at the root.
func NewExploreModel(t *trie.Trie) ExploreModel {
	m := ExploreModel{Trie: t, Current: trie.Root}
	m.loadChildren()
	return m
}

func (m *ExploreModel) loadChildren() {
	m.children = m.children[:0:0]
	for r, id := range m.Trie.Children(m.Current) {
		m.children = append(m.children, childEntry{char: r, id: id})
	}
	m.Cursor = 0
}

func (m *ExploreModel) descend(id trie.NodeID) {
	m.path = append(m.path, m.Current)
	m.Current = id
	m.loadChildren()
}

func (m *ExploreModel) ascend() {
	if len(m.path) == 0 {
		return
	}
	from := m.Current
	m.Current = m.path[len(m.path)-1]
	m.path = m.path[:len(m.path)-1]
	m.loadChildren()
	for i, ch := range m.children {
		if ch.id == from {
			m.Cursor = i
		}
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down":
		if m.Cursor < len(m.children)-1 {
			m.Cursor++
		}
	case "enter", "right":
		if len(m.children) > 0 {
			m.descend(m.children[m.Cursor].id)
		}
	case "backspace", "left":
		m.ascend()
	default:
		if key.Type == tea.KeyRunes && len(key.Runes) == 1 {
			if id, ok := m.Trie.Child(m.Current, key.Runes[0]); ok {
				m.descend(id)
			}
		}
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Trie"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type a character or ↑/↓ ⏎ to descend  ⌫ back  esc quit"))
	b.WriteString("\n\n")

	prefix := m.Trie.Prefix(m.Current)
	b.WriteString(StyleDim.Render("prefix "))
	if prefix == "" {
		b.WriteString(listDimStyle.Render(trie.RootLabel))
	} else {
		b.WriteString(StyleHighlight.Render(prefix))
	}
	if m.Trie.IsKeyword(m.Current) {
		b.WriteString(" " + listKeywordStyle.Render(iconSuccess+" keyword"))
	}
	b.WriteString("\n\n")

	if len(m.children) == 0 {
		b.WriteString(listDimStyle.Render("  (leaf)"))
		b.WriteString("\n")
	}
	for i, ch := range m.children {
		n := len(m.Trie.KeywordsUnder(m.Trie.Prefix(ch.id)))
		line := fmt.Sprintf("%q  %d keyword(s)", ch.char, n)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	matches := m.Trie.KeywordsUnder(prefix)
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d match(es)", len(matches))))
	b.WriteString("\n")
	for i, kw := range matches {
		if i == maxMatches {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(matches)-maxMatches)))
			b.WriteString("\n")
			break
		}
		b.WriteString("  " + StyleValue.Render(kw) + "\n")
	}
	return b.String()
}
