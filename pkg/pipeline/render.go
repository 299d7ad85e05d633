package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/gradletree/pkg/gradle"
	gtio "github.com/matzehuels/gradletree/pkg/io"
	"github.com/matzehuels/gradletree/pkg/render/nodelink"
)

// Render encodes a tree in opts.Format without touching any cache.
func Render(ctx context.Context, root *gradle.Node, opts Options) ([]byte, error) {
	if !isDiagram(opts.Format) {
		var buf bytes.Buffer
		if err := gtio.Encode(&buf, root, opts.Format); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot := DOT(root, opts)
	switch opts.Format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported diagram format: %s", opts.Format)
	}
}

// DOT returns the Graphviz source for a tree, or for its flattened graph when
// opts.Flat is set.
func DOT(root *gradle.Node, opts Options) string {
	nl := nodelink.Options{Detailed: opts.Detailed}
	if opts.Flat {
		return nodelink.ToDOT(gradle.Flatten(root), nl)
	}
	return nodelink.TreeDOT(root, nl)
}
