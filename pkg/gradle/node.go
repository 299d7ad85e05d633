package gradle

import "strings"

const (
	// RootLabel is the label of the synthetic node that owns every configuration.
	RootLabel = "Project Dependencies"

	// RootLevel is the level of the synthetic root.
	RootLevel = -2

	// ConfigurationLevel is the level of a configuration node. Dependencies
	// listed directly under a configuration are at level 0.
	ConfigurationLevel = -1
)

// Node is either a configuration or a single dependency line of the report.
//
// Parent is a lookup reference only; a node is owned by the Children slice of
// its parent. Trees are never mutated once [BuildTree] returns.
type Node struct {
	Label    string // Configuration line, dependency payload, or raw line for opaque nodes
	Group    string // Maven group, empty for configurations and opaque nodes
	Artifact string // Maven artifact, empty for configurations and opaque nodes

	// Version is the effective version after conflict resolution.
	Version string
	// RequestedVersion is the left side of "requested -> resolved", if any.
	RequestedVersion string
	// ReplacedByVersion is the right side of "requested -> resolved", if any.
	ReplacedByVersion string

	Omitted    bool // "(*)": children were already listed elsewhere in the report
	Constraint bool // "(c)": dependency constraint, not a real edge
	Unresolved bool // "(n)": declared but not resolved
	Opaque     bool // payload was not group:artifact:version

	Level int // Depth in the configuration tree, see RootLevel and ConfigurationLevel
	Line  int // 1-based line in the source report, 0 for the root

	Parent   *Node
	Children []*Node

	// Unplaced holds lines of a configuration block that carried no tree
	// marker and therefore could not be attached. Only set on configurations.
	Unplaced []string
}

// NewRoot returns an empty synthetic root.
func NewRoot() *Node {
	return &Node{Label: RootLabel, Level: RootLevel}
}

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool { return n.Parent == nil && n.Level == RootLevel }

// IsConfiguration reports whether n is a configuration node.
func (n *Node) IsConfiguration() bool { return n.Level == ConfigurationLevel }

// Coordinate returns "group:artifact", or the empty string for nodes without
// coordinates.
func (n *Node) Coordinate() string {
	if n.Group == "" && n.Artifact == "" {
		return ""
	}
	return n.Group + ":" + n.Artifact
}

// ID returns "group:artifact:version", falling back to the label.
func (n *Node) ID() string {
	if c := n.Coordinate(); c != "" {
		return c + ":" + n.Version
	}
	return n.Label
}

// ConfigurationName returns the configuration name from a label such as
// "runtime - Classpath for running the compiled main classes.".
func (n *Node) ConfigurationName() string {
	name, _, _ := strings.Cut(n.Label, " - ")
	return strings.TrimSpace(name)
}

// Description returns the text after the " - " separator of a configuration
// label, or the empty string.
func (n *Node) Description() string {
	_, desc, _ := strings.Cut(n.Label, " - ")
	return strings.TrimSpace(desc)
}

// Text returns the dependency text without tree markers. For opaque nodes the
// markers are stripped from the raw line.
func (n *Node) Text() string {
	if n.Opaque {
		return Payload(n.Label)
	}
	return n.Label
}

// Walk visits n and its descendants depth-first in source order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of dependency nodes below n, excluding n itself
// and configuration nodes.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(x *Node) bool {
		if x != n && x.Level >= 0 {
			count++
		}
		return true
	})
	return count
}

// Configurations returns the configuration nodes below n.
func (n *Node) Configurations() []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.IsConfiguration() {
			out = append(out, x)
			return false
		}
		return true
	})
	return out
}

// Configuration returns the configuration with the given name.
func (n *Node) Configuration(name string) (*Node, bool) {
	for _, c := range n.Configurations() {
		if c.ConfigurationName() == name {
			return c, true
		}
	}
	return nil, false
}

// Find returns every node below n whose coordinate is "group:artifact", in
// source order.
func (n *Node) Find(coordinate string) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.Coordinate() == coordinate {
			out = append(out, x)
		}
		return true
	})
	return out
}

// AddChild appends c to n's children and sets its parent.
func (n *Node) AddChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}
