package cli

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gradletree/internal/config"
	"github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/pipeline"
)

// outputOpts holds the flags shared by the commands that produce a tree.
type outputOpts struct {
	format         string
	configurations []string
	output         string
	lenient        bool
	noCache        bool
	refresh        bool
	flat           bool
	detailed       bool
}

// register adds the flags to cmd. Diagram flags are only added when diagrams
// is set.
func (o *outputOpts) register(cmd *cobra.Command, diagrams bool) {
	f := cmd.Flags()
	f.StringVarP(&o.format, "format", "f", "", "output format: "+strings.Join(pipeline.ValidFormats, ", ")+" (default from config, text)")
	f.StringArrayVarP(&o.configurations, "configuration", "c", nil, "only keep this configuration (repeatable)")
	f.StringVarP(&o.output, "output", "o", "", "output file (stdout if empty)")
	f.BoolVar(&o.lenient, "lenient", false, "also accept configurations with a single dependency")
	f.BoolVar(&o.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&o.refresh, "refresh", false, "ignore cached results and store fresh ones")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	if diagrams {
		f.BoolVar(&o.flat, "flat", false, "diagrams: draw the de-duplicated library graph instead of the tree")
		f.BoolVar(&o.detailed, "detailed", false, "diagrams: show versions and descriptions in labels")
	}
}

// options converts the flags into pipeline options. Values not set on the
// command line come from cfg.
func (o *outputOpts) options(cmd *cobra.Command, cfg config.Config, source string) pipeline.Options {
	opts := pipeline.Options{
		Source:         source,
		Configurations: o.configurations,
		Lenient:        cfg.Lenient,
		Refresh:        o.refresh,
		Format:         o.format,
		Flat:           o.flat,
		Detailed:       o.detailed,
	}
	if cmd.Flags().Changed("lenient") {
		opts.Lenient = o.lenient
	}
	if opts.Format == "" {
		opts.Format = cfg.Format
	}
	return opts
}

// =============================================================================
// Input / Output
// =============================================================================

// nopCloser wraps an io.Writer to implement io.WriteCloser with a no-op Close.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openInput opens a report. "-" and "" read the command's stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "report %s", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	return f, path, nil
}

// openOutput returns the command's stdout when path is empty, otherwise it
// creates the file at path, overwriting if it exists.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	return f, nil
}

// writeResult writes the artifact to path or stdout and reports what was
// written. Binary formats are not written to a terminal.
func writeResult(cmd *cobra.Command, result *pipeline.Result, format, path string) error {
	if path == "" && pipeline.IsBinary(format) && isTerminal(cmd.OutOrStdout()) {
		return errors.New(errors.ErrCodeInvalidInput, "refusing to write %s to a terminal; use --output", format)
	}

	out, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if _, err := out.Write(result.Artifact); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write output")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}

	if path != "" {
		printSuccess("Wrote %s", format)
		printFile(path)
		printStats(result.Stats.Configurations, result.Stats.Nodes, result.CacheInfo.ParseHit)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
