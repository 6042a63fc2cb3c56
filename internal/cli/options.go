package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/keywords"
	"github.com/matzehuels/trieviz/pkg/pipeline"
)

// buildOpts holds the flags shared by every command that builds a trie.
type buildOpts struct {
	keywordsFile string // keyword file (txt, json, yaml, toml)
	order        string // export order: stack or preorder
	mark         bool   // mark keyword terminators
	normalize    string // keyword normalization form
	classes      bool   // emit class attributes
	cursor       string // prefix to highlight
}

// register adds the build flags to cmd.
func (o *buildOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.keywordsFile, "keywords", "k", "", "keyword file (.txt, .json, .yaml, .toml)")
	cmd.Flags().StringVar(&o.order, "order", "", "node order: stack (default), preorder")
	cmd.Flags().BoolVar(&o.mark, "mark", false, "draw keyword nodes with a double border")
	cmd.Flags().StringVar(&o.normalize, "normalize", "", "keyword normalization: none (default), nfc, nfd, fold")
	cmd.Flags().BoolVar(&o.classes, "classes", false, "add node-root/leaf/interior/keyword/cursor class attributes")
	cmd.Flags().StringVar(&o.cursor, "cursor", "", "highlight the node reached by this prefix")
}

// options merges flags over the config file. Flags that were not set on the
// command line fall back to config values.
func (c *CLI) options(cmd *cobra.Command, args []string, o *buildOpts) (pipeline.Options, error) {
	cfg := c.cfg()
	opts := pipeline.Options{
		Order:        cfg.Order,
		MarkKeywords: cfg.MarkKeywords,
		Normalize:    cfg.Normalize,
		Classes:      o.classes,
		Cursor:       o.cursor,
		Logger:       c.Logger,
	}
	if cmd.Flags().Changed("order") {
		opts.Order = o.order
	}
	if cmd.Flags().Changed("mark") {
		opts.MarkKeywords = o.mark
	}
	if cmd.Flags().Changed("normalize") {
		opts.Normalize = o.normalize
	}

	kws, err := c.resolveKeywords(args, o.keywordsFile)
	if err != nil {
		return opts, err
	}
	opts.Keywords = kws

	if err := opts.ValidateForBuild(); err != nil {
		return opts, err
	}
	return opts, nil
}

// resolveKeywords picks the keyword source: positional arguments, then the
// --keywords file, then the config file, then the built-in set.
func (c *CLI) resolveKeywords(args []string, file string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if file != "" {
		return loadKeywordFile(file)
	}
	kws, err := c.cfg().LoadKeywords()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidKeywords, err, "config keywords")
	}
	if len(kws) > 0 {
		return kws, nil
	}
	c.Logger.Debug("no keywords given, using the built-in set")
	return keywords.Default(), nil
}

func loadKeywordFile(path string) ([]string, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	kws, err := keywords.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "keyword file %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidKeywords, err, "load %s", path)
	}
	return kws, nil
}
