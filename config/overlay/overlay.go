package overlay

import (
	"fmt"
	"strings"

	"github.com/0xalexb/nmconfig/config"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Delim separates path segments in lookups on the resolved handle.
const Delim = "."

// New loads tree into a koanf instance and overlays every environment
// variable named <prefix><separator><path> on top of it. The path is split on
// separator and its segments are used verbatim; values stay strings.
func New(tree config.Tree, prefix, separator string) (*koanf.Koanf, error) {
	k := koanf.New(Delim)

	err := k.Load(confmap.Provider(config.Clone(tree), ""), nil)
	if err != nil {
		return nil, fmt.Errorf("loading merged config: %w", err)
	}

	if separator == "" {
		return k, nil
	}

	err = k.Load(env.ProviderWithValue(prefix+separator, Delim, func(name, value string) (string, any) {
		key, ok := Key(name, prefix, separator)
		if !ok {
			return "", nil
		}

		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment overlay: %w", err)
	}

	return k, nil
}

// Key maps an environment variable name to the config path it overrides.
// It reports false when name does not carry the prefix or names no path.
func Key(name, prefix, separator string) (string, bool) {
	rest, found := strings.CutPrefix(name, prefix+separator)
	if !found || rest == "" {
		return "", false
	}

	segments := strings.Split(rest, separator)
	for _, segment := range segments {
		if segment == "" {
			return "", false
		}
	}

	return strings.Join(segments, Delim), true
}
