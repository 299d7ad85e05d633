// Package pkg provides the libraries behind gradletree.
//
// # Overview
//
// gradletree turns the report printed by `gradle dependencies` into a tree
// of typed nodes with one subtree per configuration. The pkg directory is
// organized as:
//
//  1. [gradle] - The parser: block extraction, line normalization, tree building
//  2. [dag] - The de-duplicated library graph derived from a tree
//  3. [io] - Tree encoders and decoders (text, JSON, YAML, gradle, graph JSON)
//  4. [nodelink] - Graphviz DOT, SVG and PNG diagrams
//  5. [cache] - Null, file, memory, Redis and layered byte caches
//  6. [pipeline] - Orchestration (parse → encode) with caching and hooks
//  7. [observability], [errors], [buildinfo] - Hooks, coded errors, version
//
// # Architecture
//
//	gradle dependencies output
//	         ↓
//	    [gradle] package (blocks → normalized lines → tree)
//	         ↓
//	    [pipeline] package (cache lookup, hooks)
//	         ↓
//	    [io] / [nodelink] packages (encode)
//	         ↓
//	    text/JSON/YAML/DOT/SVG/PNG output
//
// # Quick Start
//
//	root, err := gradle.ParseFile("deps.txt", gradle.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, conf := range root.Configurations() {
//	    fmt.Println(conf.ConfigurationName(), conf.Count())
//	}
//
// [gradle]: github.com/matzehuels/gradletree/pkg/gradle
// [dag]: github.com/matzehuels/gradletree/pkg/dag
// [io]: github.com/matzehuels/gradletree/pkg/io
// [nodelink]: github.com/matzehuels/gradletree/pkg/render/nodelink
// [cache]: github.com/matzehuels/gradletree/pkg/cache
// [pipeline]: github.com/matzehuels/gradletree/pkg/pipeline
// [observability]: github.com/matzehuels/gradletree/pkg/observability
// [errors]: github.com/matzehuels/gradletree/pkg/errors
// [buildinfo]: github.com/matzehuels/gradletree/pkg/buildinfo
package pkg
