package nmconfig

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/knadh/koanf/v2"
)

// ErrSectionNotFound is returned by Unmarshal for a path that holds no value.
var ErrSectionNotFound = errors.New("section not found")

// Config is a resolved configuration: the merged files with environment
// overrides applied. Paths use "." between segments, e.g. "db.host".
// A Config is read-only and safe for concurrent use.
type Config struct {
	k         *koanf.Koanf
	env       string
	prefix    string
	separator string
	root      string
	files     []string
}

// Env returns the resolved environment name.
func (c *Config) Env() string {
	return c.env
}

// Prefix returns the prefix of the overlay environment variables.
func (c *Config) Prefix() string {
	return c.prefix
}

// Separator returns the separator of the overlay environment variables.
func (c *Config) Separator() string {
	return c.separator
}

// Root returns the project root the configuration was resolved in.
func (c *Config) Root() string {
	return c.root
}

// Files returns the merged source names in merge order.
func (c *Config) Files() []string {
	return slices.Clone(c.files)
}

// Get returns the raw value at path, or nil.
func (c *Config) Get(path string) any {
	return c.k.Get(path)
}

// Exists reports whether path holds a value.
func (c *Config) Exists(path string) bool {
	return c.k.Exists(path)
}

// String returns the value at path as a string.
func (c *Config) String(path string) string {
	return c.k.String(path)
}

// Int returns the value at path as an int, or 0.
func (c *Config) Int(path string) int {
	return c.k.Int(path)
}

// Float64 returns the value at path as a float64, or 0.
func (c *Config) Float64(path string) float64 {
	return c.k.Float64(path)
}

// Bool returns the value at path as a bool, or false.
func (c *Config) Bool(path string) bool {
	return c.k.Bool(path)
}

// Strings returns the sequence at path as strings.
func (c *Config) Strings(path string) []string {
	return c.k.Strings(path)
}

// Duration returns the value at path parsed as a time.Duration.
func (c *Config) Duration(path string) time.Duration {
	return c.k.Duration(path)
}

// Keys returns every leaf path, sorted.
func (c *Config) Keys() []string {
	return c.k.Keys()
}

// Map returns a nested copy of the whole configuration.
func (c *Config) Map() map[string]any {
	return c.k.Raw()
}

// Unmarshal decodes the section at path into target using yaml struct tags.
// An empty path decodes the whole configuration. It implements config.Source.
func (c *Config) Unmarshal(path string, target any) error {
	if path != "" && !c.k.Exists(path) {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, path)
	}

	err := c.k.UnmarshalWithConf(path, target, koanf.UnmarshalConf{Tag: "yaml"})
	if err != nil {
		return fmt.Errorf("section %q: %w", path, err)
	}

	return nil
}
