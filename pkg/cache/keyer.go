package cache

import (
	"slices"
)

// TreeKeyOpts are the parse options that change a tree.
type TreeKeyOpts struct {
	Configurations []string `json:"configurations,omitempty"`
	Lenient        bool     `json:"lenient,omitempty"`
}

// ArtifactKeyOpts are the output options that change an encoded artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Flat     bool   `json:"flat,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// TreeKey returns the key of a parsed tree for a report hash.
	TreeKey(reportHash string, opts TreeKeyOpts) string

	// ArtifactKey returns the key of an encoded output for a tree key.
	ArtifactKey(treeKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the inputs of each key kind.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TreeKey implements Keyer. Configuration order does not matter.
func (DefaultKeyer) TreeKey(reportHash string, opts TreeKeyOpts) string {
	confs := slices.Clone(opts.Configurations)
	slices.Sort(confs)
	confs = slices.Compact(confs)
	return hashKey("tree", reportHash, TreeKeyOpts{Configurations: confs, Lenient: opts.Lenient})
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(treeKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeKey, opts)
}
