// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml for YAML parsing with native
// PathString support for efficient path navigation. The parser converts
// colon-separated paths (e.g., "api:permissions") to YAML path format
// (e.g., "$.api.permissions") internally.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var tree map[string]any
//	err := parser.Parse(data, &tree, "")
//
// Whole documents parsed into a map[string]any become config trees: an empty
// document is an empty tree, and a document that is not a mapping is rejected
// with ErrNotMapping.
//
// Path Conversion:
//   - Empty path "" -> unmarshal entire document
//   - Single key "key" -> "$.key"
//   - Nested path "api:permissions" -> "$.api.permissions"
package yaml
