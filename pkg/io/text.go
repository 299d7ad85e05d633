package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/gradletree/pkg/gradle"
)

// Report connectors, matching what Gradle prints.
const (
	midConnector  = "+--- "
	lastConnector = `\--- `
	barIndent     = "|    "
	padIndent     = "     "
)

// WriteText writes a box-drawn tree for terminals. Configurations show their
// name only; dependencies show their report text, markers included.
func WriteText(root *gradle.Node, w io.Writer) error {
	if _, err := fmt.Fprintln(w, textTree(root).String()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func textTree(n *gradle.Node) *tree.Tree {
	t := tree.Root(describe(n))
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(describe(c))
			continue
		}
		t.Child(textTree(c))
	}
	return t
}

func describe(n *gradle.Node) string {
	switch {
	case n.IsRoot():
		return n.Label
	case n.IsConfiguration():
		if name := n.ConfigurationName(); name != "" {
			return name
		}
		return "(unlabeled)"
	default:
		return n.Text()
	}
}

// WriteReport writes the tree back in `gradle dependencies` format: each
// configuration label followed by its dependency lines and a blank line.
//
// Parsing the output yields the same tree, except that a configuration with a
// single dependency starts with a last-child connector and therefore needs
// [gradle.Options.Lenient] to be picked up again. Unplaced lines are dropped.
func WriteReport(root *gradle.Node, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, conf := range root.Configurations() {
		if conf.Label != "" {
			bw.WriteString(conf.Label)
			bw.WriteByte('\n')
		}
		writeLines(bw, conf.Children, "")
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func writeLines(w *bufio.Writer, children []*gradle.Node, prefix string) {
	for i, c := range children {
		connector, next := midConnector, prefix+barIndent
		if i == len(children)-1 {
			connector, next = lastConnector, prefix+padIndent
		}
		w.WriteString(prefix)
		w.WriteString(connector)
		w.WriteString(strings.TrimSpace(c.Text()))
		w.WriteByte('\n')
		writeLines(w, c.Children, next)
	}
}
