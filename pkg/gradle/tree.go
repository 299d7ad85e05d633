package gradle

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/gradletree/pkg/errors"
)

// Options filters what [ParseWithOptions] keeps.
type Options struct {
	// Configurations keeps only the named configurations (e.g. "runtimeClasspath").
	// Empty keeps all of them.
	Configurations []string

	// Lenient also opens a configuration block on a last-child connector, so
	// configurations with a single dependency are not dropped.
	Lenient bool
}

func (o Options) keep(b Block) bool {
	if len(o.Configurations) == 0 {
		return true
	}
	name := (&Node{Label: b.Label}).ConfigurationName()
	return slices.Contains(o.Configurations, name)
}

// BuildTree turns configuration blocks into a tree under a synthetic root.
//
// Each block seeds a configuration node. Its lines are placed with a stack of
// ancestors whose top is the most recently placed node:
//
//   - same level as the top: sibling, the top is replaced
//   - deeper than the top: child, pushed on the stack
//   - shallower: pop until the top is not deeper, then apply one of the above
//
// Children keep report order.
func BuildTree(blocks []Block) *Node {
	root := NewRoot()
	for _, b := range blocks {
		root.AddChild(buildConfiguration(b))
	}
	return root
}

func buildConfiguration(b Block) *Node {
	conf := &Node{Label: b.Label, Level: ConfigurationLevel, Line: b.Start}
	stack := []*Node{conf}

	for i, raw := range b.Lines {
		d := ParseLine(raw)
		d.Line = b.LineOf(i)
		if d.Level <= ConfigurationLevel {
			conf.Unplaced = append(conf.Unplaced, raw)
			continue
		}
		stack = place(stack, d)
	}
	return conf
}

// place attaches d relative to the stack top and returns the new stack.
// The configuration at the bottom is never popped: every placeable level is
// deeper than ConfigurationLevel.
func place(stack []*Node, d *Node) []*Node {
	top := stack[len(stack)-1]
	for d.Level < top.Level {
		stack = stack[:len(stack)-1]
		top = stack[len(stack)-1]
	}

	if d.Level == top.Level {
		top.Parent.AddChild(d)
		stack[len(stack)-1] = d
		return stack
	}
	top.AddChild(d)
	return append(stack, d)
}

// Parse reads a complete `gradle dependencies` report and builds its tree.
// A read failure aborts the parse and no tree is returned.
func Parse(r io.Reader) (*Node, error) {
	return ParseWithOptions(r, Options{})
}

// ParseWithOptions is [Parse] with block filtering.
func ParseWithOptions(r io.Reader, opts Options) (*Node, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read report")
	}
	blocks := extractBlocks(lines, opts.Lenient)
	kept := blocks[:0]
	for _, b := range blocks {
		if opts.keep(b) {
			kept = append(kept, b)
		}
	}
	return BuildTree(kept), nil
}

// ParseString parses a report held in memory.
func ParseString(report string) (*Node, error) {
	return Parse(strings.NewReader(report))
}

// Load parses rc and closes it on every path. A close failure is reported
// only when parsing itself succeeded.
func Load(rc io.ReadCloser, opts Options) (root *Node, err error) {
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			root, err = nil, errors.Wrap(errors.ErrCodeIO, cerr, "close report")
		}
	}()
	return ParseWithOptions(rc, opts)
}

// ParseFile opens and parses the report at path.
func ParseFile(path string, opts Options) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	return Load(f, opts)
}
