package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when a config source path names a directory.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher is a config.DataFetcher over one source file, read once when opened.
type Fetcher struct {
	data []byte
}

// Open reads the source file at path. A missing file yields an error
// matching fs.ErrNotExist.
func Open(path string) (*Fetcher, error) {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", path, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- sources live under the project config dir
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", path, err)
	}

	return &Fetcher{data: data}, nil
}

// Fetch returns a copy of the data read by Open.
func (f *Fetcher) Fetch() ([]byte, error) {
	return bytes.Clone(f.data), nil
}
