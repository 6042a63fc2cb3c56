package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/keywords"
	"github.com/matzehuels/trieviz/pkg/pipeline"
)

// watchCommand creates the watch command, which re-renders whenever the
// keyword file changes.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts     renderOpts
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render a keyword file whenever it changes",
		Example: `  trieviz watch -k words.txt -f svg -o trie.svg`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.keywordsFile == "" {
				opts.keywordsFile = c.cfg().KeywordsFile
			}
			if opts.keywordsFile == "" {
				return errs.New(errs.ErrCodeInvalidInput, "watch needs a keyword file (--keywords or keywords_file in the config)")
			}
			popts, err := c.options(cmd, nil, &opts.buildOpts)
			if err != nil {
				return err
			}
			popts.Formats = parseFormats(opts.formats, c.cfg().Formats)
			if err := popts.ValidateForRender(); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), popts, &opts, debounce)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): dot (default), json, svg, png, jpg, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().DurationVar(&debounce, "debounce", keywords.DefaultDebounce, "quiet period before reloading")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, popts pipeline.Options, opts *renderOpts, debounce time.Duration) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	rebuild := func(kws []string) {
		p := popts
		p.Keywords = kws
		prog := newProgress(logger)
		if err := c.renderOnce(ctx, runner, p, opts.output); err != nil {
			logger.Debug("render failed", "error", err)
			printError("Render failed: %s", errs.UserMessage(err))
			return
		}
		prog.done("rendered", "file", opts.keywordsFile)
	}

	rebuild(popts.Keywords)
	printInfo("Watching %s (ctrl+c to stop)", opts.keywordsFile)

	return keywords.Watch(ctx, opts.keywordsFile, debounce, func(kws []string, err error) {
		if err != nil {
			logger.Warn("reload failed", "file", opts.keywordsFile, "error", err)
			return
		}
		logger.Debug("keywords changed", "count", len(kws))
		rebuild(kws)
	})
}

// renderOnce executes the pipeline and writes every artifact.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options, output string) error {
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	paths := outputPaths(output, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}
