// Package pipeline runs the parse → encode pipeline shared by the CLI and the
// HTTP server.
//
// A [Runner] owns the cache lookups, the observability hooks and the logging
// around [gradle.Parse] and the encoders, so every entry point produces the
// same output for the same report.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, report, pipeline.Options{
//	    Source: "build/deps.txt",
//	    Format: pipeline.FormatJSON,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
//
// Run individual stages:
//
//	root, treeKey, hit, err := runner.ParseWithCacheInfo(ctx, report, opts)
//	data, hit, err := runner.RenderWithCacheInfo(ctx, root, treeKey, opts)
//
// [gradle.Parse]: github.com/matzehuels/gradletree/pkg/gradle.Parse
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gradletree/pkg/cache"
	"github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/gradle"
	gtio "github.com/matzehuels/gradletree/pkg/io"
)

// Format constants for output formats.
const (
	FormatText   = gtio.FormatText
	FormatJSON   = gtio.FormatJSON
	FormatYAML   = gtio.FormatYAML
	FormatGradle = gtio.FormatGradle
	FormatGraph  = gtio.FormatGraph
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatPNG    = "png"
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = FormatText

// ValidFormats lists every supported output format.
var ValidFormats = append(slices.Clone(gtio.Formats), FormatDOT, FormatSVG, FormatPNG)

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return gtio.ContentType(format)
	}
}

// IsBinary reports whether a format should not be written to a terminal.
func IsBinary(format string) bool {
	return format == FormatPNG
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Source names the report in logs and hooks ("stdin", a path, "http").
	Source string `json:"source,omitempty"`

	// Parse options
	Configurations []string `json:"configurations,omitempty"`
	Lenient        bool     `json:"lenient,omitempty"`
	Refresh        bool     `json:"refresh,omitempty"` // skip cache lookups, still store

	// Output options
	Format   string `json:"format,omitempty"`
	Flat     bool   `json:"flat,omitempty"`     // dot/svg/png: draw the de-duplicated graph
	Detailed bool   `json:"detailed,omitempty"` // dot/svg/png: versions in labels

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	for _, name := range o.Configurations {
		if err := errors.ValidateConfigurationName(name); err != nil {
			return err
		}
	}
	if o.Source == "" {
		o.Source = "report"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ParseOptions returns the options handed to the parser.
func (o Options) ParseOptions() gradle.Options {
	return gradle.Options{Configurations: o.Configurations, Lenient: o.Lenient}
}

// TreeKeyOpts returns the cache key options of the parse stage.
func (o Options) TreeKeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{Configurations: o.Configurations, Lenient: o.Lenient}
}

// ArtifactKeyOpts returns the cache key options of the render stage. Flat and
// Detailed only matter for diagram formats.
func (o Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: o.Format}
	if isDiagram(o.Format) {
		opts.Flat, opts.Detailed = o.Flat, o.Detailed
	}
	return opts
}

func isDiagram(format string) bool {
	return format == FormatDOT || format == FormatSVG || format == FormatPNG
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed report.
	Tree *gradle.Node

	// ReportHash is the SHA-256 of the report bytes.
	ReportHash string

	// Artifact is the encoded output in Options.Format.
	Artifact []byte

	// ContentType is the MIME type of Artifact.
	ContentType string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ReportSize     int
	Configurations int
	Nodes          int
	ParseTime      time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool
	RenderHit bool
}
