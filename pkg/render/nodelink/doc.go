// Package nodelink renders dependency trees and graphs as node-link diagrams.
//
// # Usage
//
// Convert a parsed tree (one box per report line) or its flattened graph (one
// box per library) to DOT, then render:
//
//	dot := nodelink.TreeDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
//	dot = nodelink.ToDOT(gradle.Flatten(root), nodelink.Options{Detailed: true})
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// Configurations are drawn as folders, opaque lines (project dependencies and
// similar) with dashed outlines, and omitted repeats in grey. Constraint edges
// are dotted.
//
// The DOT text is deterministic: nodes and edges appear in report order.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering; no Graphviz installation is needed.
package nodelink
