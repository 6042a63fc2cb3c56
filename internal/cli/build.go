package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/pipeline"
)

// buildCommand creates the build command, which prints the graph of a
// keyword set without rendering it.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		opts   buildOpts
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "build [keyword...]",
		Short: "Build a trie and print its graph as DOT",
		Long: `Build inserts the keywords into a trie and prints the resulting digraph.

Keywords come from the arguments, the --keywords file, the config file, or
the built-in set (arts, star, tsar, tars, start), in that order.`,
		Example: `  trieviz build cat car
  trieviz build -k words.txt --order preorder -o trie.dot
  trieviz build --json cat car`,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.options(cmd, args, &opts)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), cmd.OutOrStdout(), popts, output, asJSON)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the graph as JSON")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, w io.Writer, opts pipeline.Options, output string, asJSON bool) error {
	prog := newProgress(loggerFromContext(ctx))
	b, err := pipeline.NewRunner(nil, nil, c.Logger).Build(ctx, opts)
	if err != nil {
		return err
	}

	if output != "" {
		if err := errs.ValidatePath(output); err != nil {
			return err
		}
		if err := b.Graph.WriteFile(output, asJSON); err != nil {
			return err
		}
		prog.done("built trie", "keywords", len(b.Keywords), "nodes", b.Graph.NodeCount())
		printFile(output)
		if !asJSON {
			printNextStep("Render it", "trieviz convert "+output+" "+strings.TrimSuffix(output, filepath.Ext(output))+".svg")
		}
		return nil
	}

	if asJSON {
		return b.Graph.WriteJSON(w)
	}
	_, err = fmt.Fprintln(w, string(b.DOT))
	return err
}
