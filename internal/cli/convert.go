package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/render"
)

// convertCommand creates the convert command, which hands a file to the
// converter registered for its input and output extensions.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		scale  float64
		header string
	)

	cmd := &cobra.Command{
		Use:   "convert <input> <output> [-- tool args...]",
		Short: "Convert DOT, SVG or Markdown files by extension",
		Long: `Convert picks a converter from the input and output extensions:

  .dot/.gv  -> .svg .png .jpg .pdf   Graphviz (in-process)
  .svg      -> .pdf .png             rsvg-convert
  .md       -> .html                 pandoc, with the configured header file

Arguments after -- are passed to the external tool.`,
		Example: `  trieviz convert trie.dot trie.svg
  trieviz convert trie.svg trie.png --scale 3
  trieviz convert README.md README.html --header header.html`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			var extra []string
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				if dash != 2 {
					return errs.New(errs.ErrCodeInvalidInput, "expected exactly two paths before --")
				}
				extra = args[dash:]
			} else if len(args) > 2 {
				return errs.New(errs.ErrCodeInvalidInput, "expected exactly two paths, got %d", len(args))
			}
			for _, p := range []string{in, out} {
				if err := errs.ValidatePath(p); err != nil {
					return err
				}
			}

			cfg := c.cfg().Convert
			if !cmd.Flags().Changed("header") {
				header = cfg.PandocHeader
			}
			conv, err := render.ForPaths(in, out, header)
			if err != nil {
				return errs.Wrap(errs.ErrCodeUnsupported, err, "convert %s", in)
			}
			if cc, ok := conv.(render.CommandConverter); ok && cc.Tool == "pandoc" {
				extra = append(append([]string{}, cfg.PandocArgs...), extra...)
			}

			spinner := startSpinner(cmd.Context(), fmt.Sprintf("Converting %s...", in))
			err = conv.Convert(cmd.Context(), in, out, render.ConvertOptions{Scale: scale, Args: extra})
			spinner.Stop()
			if err != nil {
				var ce *render.ConversionError
				if errors.As(err, &ce) {
					c.Logger.Debug("conversion failed", "tool", ce.Tool, "stderr", ce.Stderr)
				}
				return errs.Wrap(errs.ErrCodeConversion, err, "convert %s", in)
			}
			printSuccess("Converted %s", in)
			printFile(out)
			return nil
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 0, "raster scale factor for SVG to PNG")
	cmd.Flags().StringVar(&header, "header", "", "HTML header file for Markdown conversion (default from config)")

	return cmd
}
