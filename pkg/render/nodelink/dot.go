package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gradletree/pkg/dag"
	"github.com/matzehuels/gradletree/pkg/gradle"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds versions and metadata to node labels.
	// When false, only the coordinate or configuration name is shown.
	Detailed bool
}

const header = `digraph G {
  rankdir=LR;
  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
  ranksep=0.6;
  nodesep=0.2;

`

// ToDOT converts a flattened graph to Graphviz DOT.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString(header)

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", graphLabel(*n, opts.Detailed))}
		attrs = append(attrs, kindAttrs(n.Kind)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if to, ok := g.Node(e.To); ok && to.Meta["constraint"] == true {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func graphLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	parts := []string{n.ID, fmt.Sprintf("row: %d", n.Row)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		if v := n.Meta[k]; v != "" {
			parts = append(parts, fmt.Sprintf("%s: %v", k, v))
		}
	}
	return strings.Join(parts, "\n")
}

func kindAttrs(k dag.NodeKind) []string {
	switch k {
	case dag.NodeKindConfiguration:
		return []string{"shape=folder", "fillcolor=lightblue"}
	case dag.NodeKindOpaque:
		return []string{`style="rounded,filled,dashed"`}
	default:
		return nil
	}
}

// TreeDOT converts a parsed tree to Graphviz DOT with one node per report
// line, so repeated libraries appear once per occurrence.
func TreeDOT(root *gradle.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString(header)

	ids := make(map[*gradle.Node]string)
	var edges []string
	root.Walk(func(n *gradle.Node) bool {
		id := "n" + strconv.Itoa(len(ids))
		ids[n] = id

		attrs := []string{fmt.Sprintf("label=%q", treeLabel(n, opts.Detailed))}
		attrs = append(attrs, treeAttrs(n)...)
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))

		if n.Parent != nil {
			edge := fmt.Sprintf("  %s -> %s", ids[n.Parent], id)
			if n.Constraint {
				edge += " [style=dotted]"
			}
			edges = append(edges, edge+";\n")
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func treeLabel(n *gradle.Node, detailed bool) string {
	switch {
	case n.IsRoot():
		return n.Label
	case n.IsConfiguration():
		if !detailed || n.Description() == "" {
			return n.ConfigurationName()
		}
		return n.ConfigurationName() + "\n" + n.Description()
	case n.Opaque:
		return n.Text()
	case !detailed:
		return n.Coordinate()
	}
	label := n.Coordinate() + "\n" + n.Version
	if n.RequestedVersion != "" {
		label += " (requested " + n.RequestedVersion + ")"
	}
	return label
}

func treeAttrs(n *gradle.Node) []string {
	switch {
	case n.IsRoot():
		return []string{"shape=plaintext", `style=""`}
	case n.IsConfiguration():
		return kindAttrs(dag.NodeKindConfiguration)
	case n.Opaque:
		return kindAttrs(dag.NodeKindOpaque)
	case n.Omitted:
		return []string{"fillcolor=lightgrey", "fontcolor=dimgrey"}
	case n.Unresolved:
		return []string{"color=red"}
	default:
		return nil
	}
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using the embedded Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag with one whose width and
// height match the viewBox, so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
