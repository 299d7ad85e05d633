package io

import (
	"io"
	"slices"

	"github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/gradle"
)

// Format names accepted by [Encode].
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatText   = "text"
	FormatGradle = "gradle"
	FormatGraph  = "graph"
)

// Formats lists the tree encodings in the order they are documented.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatGradle, FormatGraph}

// ContentType returns the MIME type for a format name.
func ContentType(format string) string {
	switch format {
	case FormatJSON, FormatGraph:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// IsFormat reports whether format is one of [Formats].
func IsFormat(format string) bool {
	return slices.Contains(Formats, format)
}

// Encode writes root to w in the named format. "graph" flattens the tree with
// [gradle.Flatten] and writes graph JSON.
func Encode(w io.Writer, root *gradle.Node, format string) error {
	switch format {
	case FormatJSON:
		return WriteTreeJSON(root, w)
	case FormatYAML:
		return WriteTreeYAML(root, w)
	case FormatText:
		return WriteText(root, w)
	case FormatGradle:
		return WriteReport(root, w)
	case FormatGraph:
		return WriteGraphJSON(gradle.Flatten(root), w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %v)", format, Formats)
	}
}
