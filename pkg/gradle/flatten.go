package gradle

import (
	"github.com/matzehuels/gradletree/pkg/dag"
)

// Flatten folds a tree into a graph with one node per library.
//
// Library nodes are keyed by coordinate, configurations by name and opaque
// lines by their text. Repeated appearances of a library (including omitted
// ones) merge into the first node seen; its Row becomes the shallowest depth.
// The metadata keeps the first effective version plus any other versions seen
// under "versions".
func Flatten(root *Node) *dag.DAG {
	g := dag.New(dag.Metadata{"label": root.Label})
	for _, conf := range root.Configurations() {
		id := conf.ConfigurationName()
		if id == "" {
			id = conf.Label
		}
		if _, ok := g.Node(id); !ok {
			_ = g.AddNode(dag.Node{
				ID:   id,
				Kind: dag.NodeKindConfiguration,
				Meta: dag.Metadata{"description": conf.Description()},
			})
		}
		for _, c := range conf.Children {
			flattenInto(g, id, c)
		}
	}
	return g
}

func flattenInto(g *dag.DAG, parentID string, n *Node) {
	id := flatID(n)
	if id == "" {
		return
	}
	row := n.Level + 1

	if existing, ok := g.Node(id); ok {
		if row < existing.Row {
			existing.Row = row
		}
		mergeVersion(existing, n)
	} else {
		_ = g.AddNode(dag.Node{ID: id, Row: row, Kind: flatKind(n), Meta: nodeMeta(n)})
	}

	if parentID != id && !g.HasEdge(parentID, id) {
		_ = g.AddEdge(dag.Edge{From: parentID, To: id})
	}
	for _, c := range n.Children {
		flattenInto(g, id, c)
	}
}

func flatID(n *Node) string {
	if n.Opaque {
		return n.Text()
	}
	return n.Coordinate()
}

func flatKind(n *Node) dag.NodeKind {
	if n.Opaque {
		return dag.NodeKindOpaque
	}
	return dag.NodeKindLibrary
}

func nodeMeta(n *Node) dag.Metadata {
	m := dag.Metadata{}
	if n.Version != "" {
		m["version"] = n.Version
	}
	if n.RequestedVersion != "" {
		m["requested"] = n.RequestedVersion
	}
	if n.Constraint {
		m["constraint"] = true
	}
	if n.Unresolved {
		m["unresolved"] = true
	}
	return m
}

func mergeVersion(existing *dag.Node, n *Node) {
	if n.Version == "" {
		return
	}
	first, _ := existing.Meta["version"].(string)
	if first == "" {
		existing.Meta["version"] = n.Version
		return
	}
	if first == n.Version {
		return
	}
	others, _ := existing.Meta["versions"].([]string)
	for _, v := range others {
		if v == n.Version {
			return
		}
	}
	existing.Meta["versions"] = append(others, n.Version)
}
