package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trieviz/pkg/cache"
	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/pipeline"
	"github.com/matzehuels/trieviz/pkg/render"
)

// defaultOutput is the base name for rendered files when -o is not given.
const defaultOutput = "trie"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	buildOpts
	output  string // output file (single format) or base path
	formats string // comma-separated output formats
	noCache bool   // skip the artifact cache entirely
	refresh bool   // re-render even when cached
}

// renderCommand creates the render command for writing artifacts to disk.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [keyword...]",
		Short: "Render a trie to DOT, JSON, SVG, PNG, JPG or PDF files",
		Example: `  trieviz render -f svg star start stars
  trieviz render -k words.yaml -f svg,pdf -o out/words
  trieviz render -f png --mark --order preorder`,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.options(cmd, args, &opts.buildOpts)
			if err != nil {
				return err
			}
			popts.Formats = parseFormats(opts.formats, c.cfg().Formats)
			popts.Refresh = opts.refresh
			if err := popts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): dot (default), json, svg, png, jpg, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := startSpinner(ctx, fmt.Sprintf("Rendering %d keywords...", len(popts.Keywords)))
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %d keywords", result.Stats.KeywordCount)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	printDetail("graph %s", cache.ShortHash(result.Hash, 12))
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with an
// output carrying an extension is written there as-is; otherwise output is
// a base path that gets the format's extension.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output == "" {
		output = defaultOutput
	}
	if len(formats) == 1 && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	for _, f := range formats {
		paths[f] = base + render.Format(f).Ext()
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
