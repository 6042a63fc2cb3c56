package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/export"
	"github.com/matzehuels/trieviz/pkg/pipeline"
	"github.com/matzehuels/trieviz/pkg/trie"
)

// inspectCommand creates the inspect command, which prints the trie outline
// and per-depth statistics.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		opts   buildOpts
		prefix string
		stats  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [keyword...]",
		Short: "Print the trie outline, statistics and prefix matches",
		Example: `  trieviz inspect
  trieviz inspect --prefix st
  trieviz inspect --cursor sta
  trieviz inspect -k words.txt --stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.options(cmd, args, &opts)
			if err != nil {
				return err
			}
			b, err := pipeline.NewBuild(popts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cmd.Flags().Changed("prefix") {
				return printPrefix(w, b.Trie, prefix)
			}
			if b.Cursor != "" {
				return printCursor(w, b.Trie, b.Cursor)
			}
			if stats {
				fmt.Fprintln(w, depthTable(b.Trie))
				return nil
			}
			fmt.Fprintln(w, b.Trie.String())
			printNewline()
			printKeyValue("keywords", strconv.Itoa(len(b.Trie.Keywords())))
			printKeyValue("nodes", strconv.Itoa(b.Graph.NodeCount()))
			printKeyValue("edges", strconv.Itoa(b.Graph.EdgeCount()))
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "list the keywords starting with prefix")
	cmd.Flags().BoolVar(&stats, "stats", false, "print node and keyword counts per depth")

	return cmd
}

func printPrefix(w io.Writer, t *trie.Trie, prefix string) error {
	id, ok := t.Find(prefix)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "no keyword starts with %q", prefix)
	}
	for _, kw := range t.KeywordsUnder(prefix) {
		fmt.Fprintln(w, kw)
	}
	printDetail("%s: %d children, keyword=%t", t.Label(id), t.NumChildren(id), t.IsKeyword(id))
	return nil
}

// printCursor prints the classes the exporter gives the cursor node.
func printCursor(w io.Writer, t *trie.Trie, cursor string) error {
	id, ok := t.Find(cursor)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "no keyword starts with %q", cursor)
	}
	fmt.Fprintf(w, "%s\t%s\n", t.Label(id), strings.Join(export.Classes(t, id, true), " "))
	return nil
}

// depthStats counts nodes and keyword terminators at each depth.
func depthStats(t *trie.Trie) (nodes, keywords []int) {
	t.Walk(func(id trie.NodeID, depth int) bool {
		for len(nodes) <= depth {
			nodes = append(nodes, 0)
			keywords = append(keywords, 0)
		}
		nodes[depth]++
		if t.IsKeyword(id) {
			keywords[depth]++
		}
		return true
	})
	return nodes, keywords
}

func depthTable(t *trie.Trie) string {
	nodes, keywords := depthStats(t)
	rows := make([][]string, len(nodes))
	for d := range nodes {
		rows[d] = []string{strconv.Itoa(d), strconv.Itoa(nodes[d]), strconv.Itoa(keywords[d])}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Depth", "Nodes", "Keywords").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1)
		})
	return strings.TrimRight(tbl.Render(), "\n")
}
