// Package io encodes and decodes parsed dependency trees and their flattened
// graphs.
//
// # Tree formats
//
// A tree from [github.com/matzehuels/gradletree/pkg/gradle] can be written as:
//
//   - JSON ([WriteTreeJSON], decodable again with [ReadTreeJSON])
//   - YAML ([WriteTreeYAML] / [ReadTreeYAML])
//   - an indented text tree for terminals ([WriteText])
//   - the `gradle dependencies` report format itself ([WriteReport])
//
// JSON and YAML share one document shape. Parent links are not encoded; the
// decoders rebuild them:
//
//	{
//	  "label": "Project Dependencies",
//	  "level": -2,
//	  "children": [
//	    {
//	      "label": "runtimeClasspath - Runtime classpath of source set 'main'.",
//	      "level": -1,
//	      "line": 23,
//	      "children": [
//	        {"label": "com.google.guava:guava:31.1-jre", "group": "com.google.guava", ...}
//	      ]
//	    }
//	  ]
//	}
//
// # Graph format
//
// [WriteGraphJSON] encodes a [dag.DAG] as a node list plus an edge list:
//
//	{
//	  "nodes": [{"id": "runtimeClasspath", "kind": "configuration"}, {"id": "g:a", "row": 1}],
//	  "edges": [{"from": "runtimeClasspath", "to": "g:a"}]
//	}
//
// Rows of zero and the library kind are omitted. [ReadGraphJSON] reverses it.
//
// # Format names
//
// [Encode] dispatches on the names in [Formats], which are the values the CLI
// and the HTTP server accept.
//
// [dag.DAG]: github.com/matzehuels/gradletree/pkg/dag.DAG
package io
