package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrPathNotFound is returned by a Parser when path names no value in the document.
var ErrPathNotFound = errors.New("path not found")

// Parser decodes configuration data into a target.
//
// An empty path decodes the whole document; source files are always read
// this way. Otherwise path selects a nested value with colon (:) between
// keys, e.g. "nmConfig:defaultFiles" for the project descriptor settings.
// A path that names nothing yields an error matching ErrPathNotFound.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Source is a resolved configuration able to decode one of its sections.
// The path uses dot (.) as the separator; an empty path decodes everything.
type Source interface {
	Unmarshal(path string, target any) error
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that decodes the section at path from a resolved
// Source into target, then sets defaults and validates it.
func Provider[T any](target *T, path string) func(Source) (*T, error) {
	return func(source Source) (*T, error) {
		err := source.Unmarshal(path, target)
		if err != nil {
			return nil, fmt.Errorf("decoding section %q: %w", path, err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
