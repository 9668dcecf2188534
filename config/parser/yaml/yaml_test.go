package yaml

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptor = `
name: shop api
nmConfig:
  defaultFiles: [base, dev.example, staging, live]
shopapi:
  db:
    host: localhost
    port: 5432
    ssl: false
    timeout: 2.5
  replicas:
    primary:
      host: primary.db.internal
    replica:
      host: replica.db.internal
`

func TestParser_Parse_WholeDocument(t *testing.T) {
	t.Parallel()

	var result struct {
		Name     string `yaml:"name"`
		NmConfig struct {
			DefaultFiles []string `yaml:"defaultFiles"`
		} `yaml:"nmConfig"`
	}

	err := NewParser().Parse([]byte(descriptor), &result, "")

	require.NoError(t, err)
	assert.Equal(t, "shop api", result.Name)
	assert.Equal(t, []string{"base", "dev.example", "staging", "live"}, result.NmConfig.DefaultFiles)
}

func TestParser_Parse_Path(t *testing.T) {
	t.Parallel()

	type endpoint struct {
		Host string `yaml:"host"`
	}

	tests := []struct {
		name   string
		path   string
		target func() any
		want   any
	}{
		{
			name:   "string",
			path:   "name",
			target: func() any { return new(string) },
			want:   "shop api",
		},
		{
			name:   "sequence",
			path:   "nmConfig:defaultFiles",
			target: func() any { return new([]string) },
			want:   []string{"base", "dev.example", "staging", "live"},
		},
		{
			name:   "int",
			path:   "shopapi:db:port",
			target: func() any { return new(int) },
			want:   5432,
		},
		{
			name:   "bool",
			path:   "shopapi:db:ssl",
			target: func() any { return new(bool) },
			want:   false,
		},
		{
			name:   "float",
			path:   "shopapi:db:timeout",
			target: func() any { return new(float64) },
			want:   2.5,
		},
		{
			name:   "mapping of structs",
			path:   "shopapi:replicas",
			target: func() any { return new(map[string]endpoint) },
			want: map[string]endpoint{
				"primary": {Host: "primary.db.internal"},
				"replica": {Host: "replica.db.internal"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := tt.target()

			err := NewParser().Parse([]byte(descriptor), target, tt.path)

			require.NoError(t, err)
			assert.Equal(t, tt.want, reflect.ValueOf(target).Elem().Interface())
		})
	}
}

func TestParser_Parse_MissingPath(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"version", "shopapi:cache", "name:first"} {
		var result any

		err := NewParser().Parse([]byte(descriptor), &result, path)

		require.Error(t, err, path)
	}

	var result any

	err := NewParser().Parse([]byte(descriptor), &result, "shopapi:cache")
	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestParser_Parse_EmptyData(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	result := struct {
		Name string `yaml:"name"`
	}{Name: "kept"}

	err := parser.Parse([]byte{}, &result, "")

	require.NoError(t, err)
	assert.Equal(t, "kept", result.Name)
}

func TestParser_Parse_EmptyDocumentIntoTree(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	for _, data := range [][]byte{nil, []byte("   \n\n"), []byte("# only a comment\n")} {
		var tree map[string]any

		err := parser.Parse(data, &tree, "")

		require.NoError(t, err)
		assert.NotNil(t, tree)
		assert.Empty(t, tree)
	}
}

func TestParser_Parse_Tree(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
hosts:
  - a.example.com
  - b.example.com
db:
  primary:
    host: db.example.com
verbose: true
`)

	var tree map[string]any

	err := parser.Parse(data, &tree, "")
	require.NoError(t, err)

	assert.Equal(t, []any{"a.example.com", "b.example.com"}, tree["hosts"])
	assert.Equal(t, true, tree["verbose"])

	db, ok := tree["db"].(map[string]any)
	require.True(t, ok, "nested mapping should decode as map[string]any")

	primary, ok := db["primary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "db.example.com", primary["host"])
}

func TestParser_Parse_TreeFromSequenceDocument(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var tree map[string]any

	err := parser.Parse([]byte("- a\n- b\n"), &tree, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotMapping)
}

func TestNormalize_NonStringKeys(t *testing.T) {
	t.Parallel()

	value := normalize(map[any]any{
		1:      "one",
		"list": []any{map[any]any{true: "yes"}},
	})

	assert.Equal(t, map[string]any{
		"1":    "one",
		"list": []any{map[string]any{"true": "yes"}},
	}, value)
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := Marshal(map[string]any{"env": "dev"})

	require.NoError(t, err)
	assert.Equal(t, "env: dev\n", string(data))
}

func TestParser_Parse_InvalidYAML(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
invalid: yaml: content: [
`)

	var result struct{}

	err := parser.Parse(data, &result, "")

	require.Error(t, err)
}

func TestConvertToYAMLPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$.name", convertToYAMLPath("name"))
	assert.Equal(t, "$.nmConfig.defaultFiles", convertToYAMLPath("nmConfig:defaultFiles"))
}
