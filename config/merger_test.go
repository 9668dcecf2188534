package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeParser returns pre-built trees keyed by the fetched data.
type treeParser struct {
	trees map[string]Tree
	err   error
}

func (p *treeParser) Parse(data []byte, target any, _ string) error {
	if p.err != nil {
		return p.err
	}

	tree, ok := target.(*Tree)
	if !ok {
		return errors.New("invalid target type")
	}

	*tree = Clone(p.trees[string(data)])

	return nil
}

func openNames(opened *[]string, missing ...string) OpenFunc {
	return func(name string) (DataFetcher, error) {
		for _, m := range missing {
			if m == name {
				return nil, fmt.Errorf("stat file %q: no such file", name)
			}
		}

		*opened = append(*opened, name)

		return &mockDataFetcher{
			fetchFunc: func() ([]byte, error) {
				return []byte(name), nil
			},
		}, nil
	}
}

func TestMerger_Merge(t *testing.T) {
	t.Parallel()

	var opened []string

	merger := Merger{
		Open: openNames(&opened),
		Parser: &treeParser{trees: map[string]Tree{
			"base": {"a": []any{1, 2}, "b": Tree{"x": 1}},
			"dev":  {"a": []any{3}, "b": Tree{"y": 2}},
		}},
	}

	merged, err := merger.Merge("dev", NewFileSet(nil, "dev"))
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "dev"}, opened)
	assert.Equal(t, Tree{
		"a":    []any{3},
		"b":    Tree{"x": 1, "y": 2},
		EnvKey: "dev",
	}, merged)
}

func TestMerger_Merge_FilesCanOverrideEnv(t *testing.T) {
	t.Parallel()

	var opened []string

	merger := Merger{
		Open: openNames(&opened),
		Parser: &treeParser{trees: map[string]Tree{
			"base": {EnvKey: "from-file"},
		}},
	}

	merged, err := merger.Merge("live", NewFileSet([]string{"base"}, "live"))
	require.NoError(t, err)

	assert.Equal(t, "from-file", merged[EnvKey])
}

func TestMerger_Merge_EmptySourcesKeepEnv(t *testing.T) {
	t.Parallel()

	var opened []string

	merger := Merger{
		Open:   openNames(&opened),
		Parser: &treeParser{trees: map[string]Tree{}},
	}

	merged, err := merger.Merge("staging", NewFileSet(nil, "staging"))
	require.NoError(t, err)

	assert.Equal(t, Tree{EnvKey: "staging"}, merged)
}

func TestMerger_Merge_Errors(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("fetch failed")
	parseErr := errors.New("parse failed")

	tests := []struct {
		name    string
		merger  func(opened *[]string) Merger
		wantErr error
		wantMsg string
	}{
		{
			name: "missing file",
			merger: func(opened *[]string) Merger {
				return Merger{Open: openNames(opened, "dev"), Parser: &treeParser{}}
			},
			wantErr: ErrLoad,
			wantMsg: `"dev"`,
		},
		{
			name: "fetch error",
			merger: func(_ *[]string) Merger {
				return Merger{
					Open: func(_ string) (DataFetcher, error) {
						return &mockDataFetcher{fetchFunc: func() ([]byte, error) { return nil, fetchErr }}, nil
					},
					Parser: &treeParser{},
				}
			},
			wantErr: fetchErr,
			wantMsg: "reading data error",
		},
		{
			name: "parse error",
			merger: func(opened *[]string) Merger {
				return Merger{Open: openNames(opened), Parser: &treeParser{err: parseErr}}
			},
			wantErr: parseErr,
			wantMsg: "parsing error",
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			var opened []string

			merged, err := testInfo.merger(&opened).Merge("dev", NewFileSet(nil, "dev"))

			require.Error(t, err)
			assert.Nil(t, merged)
			require.ErrorIs(t, err, ErrLoad)
			require.ErrorIs(t, err, testInfo.wantErr)
			assert.Contains(t, err.Error(), testInfo.wantMsg)
		})
	}
}
