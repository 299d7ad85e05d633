package dag

import (
	"errors"
	"testing"
)

func TestAddNodeErrors(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a:a"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode(Node{ID: "a:a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want ErrDuplicateNodeID", err)
	}
	n, _ := g.Node("a:a")
	if n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"unknown source", Edge{From: "x", To: "a"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNodesKeepInsertionOrder(t *testing.T) {
	g := New(nil)
	ids := []string{"z", "a", "m"}
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}
	got := NodeIDs(g.Nodes())
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("Nodes() = %v, want %v", got, ids)
		}
	}
}

func TestHasEdge(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	if !g.HasEdge("a", "b") {
		t.Error("HasEdge(a, b) = false")
	}
	if g.HasEdge("b", "a") {
		t.Error("HasEdge(b, a) = true")
	}
}

func TestNodesInRow(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "conf", Kind: NodeKindConfiguration})
	_ = g.AddNode(Node{ID: "a", Row: 1})
	_ = g.AddNode(Node{ID: "b", Row: 1})
	_ = g.AddNode(Node{ID: "c", Row: 2})

	if got := len(g.NodesInRow(1)); got != 2 {
		t.Errorf("NodesInRow(1) = %d nodes, want 2", got)
	}
	if got := g.RowIDs(); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("RowIDs() = %v, want [0 1 2]", got)
	}
}

func TestValidate(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	_ = g.AddEdge(Edge{From: "c", To: "a"})
	if err := g.Validate(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("Validate() = %v, want ErrGraphHasCycle", err)
	}
}

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{NodeKindLibrary, "library"},
		{NodeKindConfiguration, "configuration"},
		{NodeKindOpaque, "opaque"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
