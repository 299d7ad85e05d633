// Package dag provides the flattened library graph of a dependency report.
//
// # Overview
//
// A parsed report is a tree: the same library shows up once per path that
// pulls it in, and repeats are marked omitted. Flattening folds those repeats
// into one node per library, keyed by its "group:artifact" coordinate, with an
// edge for every distinct dependent/dependency pair.
//
//	g := dag.New(nil)
//	_ = g.AddNode(dag.Node{ID: "runtimeClasspath", Kind: dag.NodeKindConfiguration})
//	_ = g.AddNode(dag.Node{ID: "com.google.guava:guava", Row: 1})
//	_ = g.AddEdge(dag.Edge{From: "runtimeClasspath", To: "com.google.guava:guava"})
//
// Row is the shallowest depth at which a node was seen. Rows are informative
// only; edges may span several rows.
//
// # Metadata
//
// Nodes, edges and the graph carry [Metadata] maps, never nil after insertion.
// Flattening stores the effective version, the requested version and flags
// such as "omitted" there.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
package dag
