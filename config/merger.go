package config

import (
	"errors"
	"fmt"
)

// EnvKey is the key under which the resolved environment name is seeded
// into every merged tree.
const EnvKey = "env"

// ErrLoad is returned when a source of the file set cannot be read or parsed.
var ErrLoad = errors.New("cannot load config file")

// OpenFunc returns a DataFetcher for the source with the given name.
type OpenFunc func(name string) (DataFetcher, error)

// Merger loads every source of a FileSet in order and folds them into one tree.
type Merger struct {
	Open   OpenFunc
	Parser Parser
}

// Merge folds the sources of files onto {env: env} with MergeReplacingSequences.
// Any failure aborts the merge; no partial tree is returned.
func (m Merger) Merge(env string, files FileSet) (Tree, error) {
	merged := Tree{EnvKey: env}

	for _, name := range files.Names() {
		tree, err := m.load(name)
		if err != nil {
			return nil, err
		}

		merged = MergeReplacingSequences(merged, tree)
	}

	return merged, nil
}

func (m Merger) load(name string) (Tree, error) {
	fetcher, err := m.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrLoad, name, err)
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("%w %q: reading data error: %w", ErrLoad, name, err)
	}

	var tree Tree

	err = m.Parser.Parse(data, &tree, "")
	if err != nil {
		return nil, fmt.Errorf("%w %q: parsing error: %w", ErrLoad, name, err)
	}

	return tree, nil
}
