package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/nmconfig/config"
	"github.com/goccy/go-yaml"
)

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = config.ErrPathNotFound

// ErrNotMapping is returned when a whole document decoded into a tree is not a mapping.
var ErrNotMapping = errors.New("document is not a mapping")

// Parser implements config.Parser interface for YAML data.
// It uses goccy/go-yaml PathString for efficient path navigation.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and unmarshals it into the target.
// The path parameter specifies a navigation path using colon (:) as separator.
// Empty path parses the entire document.
//
// An empty document leaves target untouched, except for a *map[string]any
// target which is set to an empty map. Such a target also gets nested
// mappings with non-string keys normalised to map[string]any.
func (p *Parser) Parse(data []byte, target any, path string) error {
	tree, isTree := target.(*map[string]any)

	if len(bytes.TrimSpace(data)) == 0 {
		if isTree && *tree == nil {
			*tree = map[string]any{}
		}

		return nil
	}

	if isTree && path == "" {
		return p.parseTree(data, tree)
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath := convertToYAMLPath(path)

	pathObj, err := yaml.PathString(yamlPath)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	reader := bytes.NewReader(data)

	err = pathObj.Read(reader, target)
	if err != nil {
		if isKeyNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

func (p *Parser) parseTree(data []byte, tree *map[string]any) error {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	if doc == nil {
		*tree = map[string]any{}

		return nil
	}

	normalized, ok := normalize(doc).(map[string]any)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrNotMapping, doc)
	}

	*tree = normalized

	return nil
}

// normalize converts every mapping in value to map[string]any and every
// sequence to []any.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = normalize(item)
		}

		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}

		return out
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}

		return v
	default:
		return value
	}
}

// Marshal encodes a value as YAML.
func Marshal(value any) ([]byte, error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api:permissions" -> "$.api.permissions"
func convertToYAMLPath(path string) string {
	parts := strings.Split(path, ":")

	return "$." + strings.Join(parts, ".")
}

// isKeyNotFoundError checks if the error indicates a key was not found.
func isKeyNotFoundError(err error) bool {
	return yaml.IsNotFoundNodeError(err)
}
