package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gradletree/pkg/pipeline"
)

// parseCommand creates the parse command for saved reports.
func (c *CLI) parseCommand() *cobra.Command {
	var opts outputOpts

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a saved `gradle dependencies` report",
		Long: `Parse the output of "gradle dependencies" into a tree with one subtree per
configuration and print it in the selected format.

The report is read from the file argument, or from stdin when the argument
is "-" or missing. Parsed trees are cached under the SHA-256 of the report.`,
		Example: `  # Print the tree of a saved report
  gradle -q dependencies > deps.txt
  gradletree parse deps.txt

  # Pipe straight from Gradle, keep two configurations, emit JSON
  gradle -q dependencies | gradletree parse -f json -c compileClasspath -c runtimeClasspath

  # Write YAML to a file
  gradletree parse deps.txt -f yaml -o deps.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

func (c *CLI) runParse(cmd *cobra.Command, path string, opts *outputOpts) error {
	ctx := cmd.Context()

	in, source, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.options(cmd, c.Config, source)
	result, err := runner.ExecuteReader(ctx, in, popts)
	if err != nil {
		return err
	}
	warnIfEmpty(result, source, popts.Lenient)

	if err := writeResult(cmd, result, popts.Format, opts.output); err != nil {
		return err
	}
	if opts.output != "" && source != "stdin" && !slices.Contains(diagramFormats, popts.Format) {
		printNextStep("Draw it", fmt.Sprintf("%s render %s -o deps.svg", appName, source))
	}
	return nil
}

// warnIfEmpty points out reports that produced no configurations.
func warnIfEmpty(result *pipeline.Result, source string, lenient bool) {
	if result.Stats.Configurations > 0 {
		return
	}
	printWarning("No dependency trees found in %s", source)
	if !lenient {
		printDetail("Configurations with a single dependency need --lenient")
	}
}
