package cli

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/pipeline"
)

// diagramFormats are the formats the render command produces.
var diagramFormats = []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatDOT}

// renderCommand creates the render command, a shortcut for parse with a
// diagram format inferred from the output file.
func (c *CLI) renderCommand() *cobra.Command {
	var opts outputOpts

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Draw a report as an SVG, PNG or DOT diagram",
		Long: `Draw the dependency tree of a report with Graphviz.

The format follows the extension of --output (.svg, .png, .dot or .gv) unless
--format is given. --flat draws the de-duplicated library graph: one node
per group:artifact with an edge for every place it is required.`,
		Example: `  gradletree render deps.txt -o deps.svg
  gradletree render deps.txt -o libs.png --flat -c runtimeClasspath
  gradle -q dependencies | gradletree render -f dot --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := diagramFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return c.runParse(cmd, path, &opts)
		},
	}

	opts.register(cmd, true)
	return cmd
}

// diagramFormat picks the render format from the flag, then the output
// extension, then SVG.
func diagramFormat(flag, output string) (string, error) {
	format := flag
	if format == "" {
		switch ext := strings.ToLower(filepath.Ext(output)); ext {
		case ".svg", ".png", ".dot":
			format = ext[1:]
		case ".gv":
			format = pipeline.FormatDOT
		case "":
			format = pipeline.FormatSVG
		default:
			return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer a diagram format from %q; use --format", output)
		}
	}
	if slices.Contains(diagramFormats, format) {
		return format, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "render supports %s, got %q", strings.Join(diagramFormats, ", "), format)
}
