package io

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gradletree/pkg/gradle"
)

// treeNode is the serialized form of a [gradle.Node]. Parent is rebuilt on
// decode.
type treeNode struct {
	Label             string      `json:"label" yaml:"label"`
	Group             string      `json:"group,omitempty" yaml:"group,omitempty"`
	Artifact          string      `json:"artifact,omitempty" yaml:"artifact,omitempty"`
	Version           string      `json:"version,omitempty" yaml:"version,omitempty"`
	RequestedVersion  string      `json:"requested_version,omitempty" yaml:"requested_version,omitempty"`
	ReplacedByVersion string      `json:"replaced_by_version,omitempty" yaml:"replaced_by_version,omitempty"`
	Omitted           bool        `json:"omitted,omitempty" yaml:"omitted,omitempty"`
	Constraint        bool        `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Unresolved        bool        `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Opaque            bool        `json:"opaque,omitempty" yaml:"opaque,omitempty"`
	Level             int         `json:"level" yaml:"level"`
	Line              int         `json:"line,omitempty" yaml:"line,omitempty"`
	Unplaced          []string    `json:"unplaced,omitempty" yaml:"unplaced,omitempty"`
	Children          []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func fromNode(n *gradle.Node) *treeNode {
	t := &treeNode{
		Label:             n.Label,
		Group:             n.Group,
		Artifact:          n.Artifact,
		Version:           n.Version,
		RequestedVersion:  n.RequestedVersion,
		ReplacedByVersion: n.ReplacedByVersion,
		Omitted:           n.Omitted,
		Constraint:        n.Constraint,
		Unresolved:        n.Unresolved,
		Opaque:            n.Opaque,
		Level:             n.Level,
		Line:              n.Line,
		Unplaced:          n.Unplaced,
	}
	if len(n.Children) > 0 {
		t.Children = make([]*treeNode, len(n.Children))
		for i, c := range n.Children {
			t.Children[i] = fromNode(c)
		}
	}
	return t
}

func (t *treeNode) toNode() *gradle.Node {
	n := &gradle.Node{
		Label:             t.Label,
		Group:             t.Group,
		Artifact:          t.Artifact,
		Version:           t.Version,
		RequestedVersion:  t.RequestedVersion,
		ReplacedByVersion: t.ReplacedByVersion,
		Omitted:           t.Omitted,
		Constraint:        t.Constraint,
		Unresolved:        t.Unresolved,
		Opaque:            t.Opaque,
		Level:             t.Level,
		Line:              t.Line,
		Unplaced:          t.Unplaced,
	}
	for _, c := range t.Children {
		if c == nil {
			continue
		}
		n.AddChild(c.toNode())
	}
	return n
}

// WriteTreeJSON encodes a tree as indented JSON and writes it to w.
func WriteTreeJSON(root *gradle.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromNode(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadTreeJSON decodes a tree written by [WriteTreeJSON] and restores parent
// links. ReadTreeJSON does not close r.
func ReadTreeJSON(r io.Reader) (*gradle.Node, error) {
	var t treeNode
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return t.toNode(), nil
}

// WriteTreeYAML encodes a tree as YAML using the same field names as JSON.
func WriteTreeYAML(root *gradle.Node, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fromNode(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadTreeYAML decodes a tree written by [WriteTreeYAML].
func ReadTreeYAML(r io.Reader) (*gradle.Node, error) {
	var t treeNode
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return t.toNode(), nil
}
