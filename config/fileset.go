package config

import "slices"

// DefaultBaseFile is the base source used when no base files are given.
const DefaultBaseFile = "base"

// FileSet is the ordered list of source names merged for one resolution.
// Base files come first in the order given; the environment source is always
// the last, highest-precedence entry. Names are not de-duplicated.
type FileSet struct {
	base []string
	env  string
}

// NewFileSet builds the file set for env on top of base. A nil base falls
// back to [DefaultBaseFile]; an empty one merges the environment source only.
// The base slice is copied.
func NewFileSet(base []string, env string) FileSet {
	if base == nil {
		base = []string{DefaultBaseFile}
	}

	return FileSet{
		base: slices.Clone(base),
		env:  env,
	}
}

// Names returns the source names in merge order.
func (s FileSet) Names() []string {
	names := make([]string, 0, len(s.base)+1)
	names = append(names, s.base...)

	return append(names, s.env)
}
