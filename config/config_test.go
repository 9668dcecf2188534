package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDataFetcher struct {
	fetchFunc func() ([]byte, error)
}

func (m *mockDataFetcher) Fetch() ([]byte, error) {
	return m.fetchFunc()
}

// treeSource serves sections of a resolved tree by dotted path.
type treeSource struct {
	tree  Tree
	paths []string
}

func (s *treeSource) Unmarshal(path string, target any) error {
	s.paths = append(s.paths, path)

	section := s.tree

	for _, key := range strings.Split(path, ".") {
		next, ok := section[key].(Tree)
		if !ok {
			return errors.New("section not found")
		}

		section = next
	}

	cfg, ok := target.(interface{ decode(Tree) })
	if !ok {
		return errors.New("invalid target type")
	}

	cfg.decode(section)

	return nil
}

type poolConfig struct {
	Size      int
	defaulted bool
}

func (c *poolConfig) decode(section Tree) {
	if size, ok := section["size"].(int); ok {
		c.Size = size
	}
}

func (c *poolConfig) SetDefaults() bool {
	if c.Size != 0 {
		return false
	}

	c.Size = 4
	c.defaulted = true

	return true
}

func (c *poolConfig) Validate() error {
	if c.Size > 64 {
		return errors.New("pool size above 64")
	}

	return nil
}

type plainConfig struct {
	Name string
}

func (c *plainConfig) decode(section Tree) {
	c.Name, _ = section["name"].(string)
}

func TestProvider_DecodesSection(t *testing.T) {
	t.Parallel()

	source := &treeSource{tree: Tree{"app": Tree{"name": "shop"}}}
	target := &plainConfig{}

	result, err := Provider(target, "app")(source)

	require.NoError(t, err)
	assert.Same(t, target, result)
	assert.Equal(t, "shop", result.Name)
	assert.Equal(t, []string{"app"}, source.paths)
}

func TestProvider_DefaultsAndValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		section       Tree
		wantSize      int
		wantDefaulted bool
		wantErr       bool
	}{
		{
			name:     "value from the tree",
			section:  Tree{"size": 8},
			wantSize: 8,
		},
		{
			name:          "default applied",
			section:       Tree{},
			wantSize:      4,
			wantDefaulted: true,
		},
		{
			name:    "validation failure",
			section: Tree{"size": 100},
			wantErr: true,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			source := &treeSource{tree: Tree{"db": Tree{"pool": testInfo.section}}}

			result, err := Provider(new(poolConfig), "db.pool")(source)
			if testInfo.wantErr {
				require.ErrorContains(t, err, "validating error")
				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testInfo.wantSize, result.Size)
			assert.Equal(t, testInfo.wantDefaulted, result.defaulted)
		})
	}
}

func TestProvider_MissingSection(t *testing.T) {
	t.Parallel()

	source := &treeSource{tree: Tree{"db": Tree{}}}

	result, err := Provider(new(poolConfig), "cache.pool")(source)

	require.ErrorContains(t, err, `decoding section "cache.pool"`)
	assert.Nil(t, result)
}
