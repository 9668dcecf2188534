// Package config provides the layered merge pipeline behind nmconfig.
//
// The package uses an interface-based design with five extension points:
//   - Parser: deserializes raw data into a Tree or a struct, with path navigation support
//   - DataFetcher: retrieves raw config data for one source
//   - Source: a resolved configuration that decodes sections
//   - Validator: validates a decoded section
//   - Defaulter: applies default values before validation
//
// # Merge Rules
//
// A Merger folds the sources of a FileSet in order onto {env: <environment>}.
// Later sources win at every key. Mappings are merged recursively, sequences
// are replaced as a whole:
//
//	base.yml: {hosts: [a, b], db: {host: x}}
//	dev.yml:  {hosts: [c],    db: {port: 1}}
//	result:   {hosts: [c],    db: {host: x, port: 1}, env: dev}
//
// MergeRecursive is the plain recursive merge used for the project block of
// the metadata descriptor. It merges sequences element by element instead.
//
// # Example
//
//	type APIConfig struct {
//	    Timeout int    `yaml:"timeout"`
//	    BaseURL string `yaml:"base_url"`
//	}
//
//	provider := config.Provider(&APIConfig{}, "services.api")
//	cfg, err := provider(resolved)
package config
