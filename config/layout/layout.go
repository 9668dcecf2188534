package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xalexb/nmconfig/config"
	"github.com/0xalexb/nmconfig/config/fetcher/file"
)

const (
	// DirName is the name of the config directory under the project root.
	DirName = "config"
	// Ext is the extension of every config source.
	Ext = ".yml"
	// ExampleSuffix marks the template of a source: <name>.example.yml.
	ExampleSuffix = ".example"
	// DevEnv is the environment in which ensure failures are fatal.
	DevEnv = "dev"

	dirPerm  = 0o750
	filePerm = 0o600
)

var (
	// ErrEnsure is returned when a required file cannot be ensured.
	ErrEnsure = errors.New("cannot ensure file")
	// ErrNoTemplate is returned when a required file is missing and has no example to copy.
	ErrNoTemplate = errors.New("file missing and no example template found")
)

// Dir is the config directory of a project.
type Dir struct {
	path string
}

// NewDir returns the config directory under root.
func NewDir(root string) Dir {
	return Dir{path: filepath.Join(root, DirName)}
}

// Path returns the directory path.
func (d Dir) Path() string {
	return d.path
}

// File returns the path of the source named name.
func (d Dir) File(name string) string {
	return filepath.Join(d.path, name+Ext)
}

// Example returns the path of the example template for the source named name.
func (d Dir) Example(name string) string {
	return filepath.Join(d.path, name+ExampleSuffix+Ext)
}

// Open reads the source named name. It implements config.OpenFunc.
func (d Dir) Open(name string) (config.DataFetcher, error) {
	return file.Open(d.File(name))
}

// Bootstrap creates the directory and an empty file for each name that does
// not exist yet. Existing files are left untouched, so running it again is a
// no-op.
func (d Dir) Bootstrap(names []string) error {
	err := os.MkdirAll(d.path, dirPerm)
	if err != nil {
		return fmt.Errorf("creating config dir %q: %w", d.path, err)
	}

	for _, name := range names {
		err := createIfMissing(d.File(name), nil)
		if err != nil {
			return err
		}
	}

	return nil
}

// Ensure makes sure the source named name exists, copying it from its example
// template when it is missing. The name may carry the .yml extension.
func (d Dir) Ensure(name string) error {
	name = strings.TrimSuffix(name, Ext)
	target := d.File(name)

	_, err := os.Stat(target)
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w %q: %w", ErrEnsure, target, err)
	}

	template, err := os.ReadFile(d.Example(name)) // #nosec G304 -- path is built from the config dir
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w %q: %w", ErrEnsure, target, ErrNoTemplate)
		}

		return fmt.Errorf("%w %q: reading template: %w", ErrEnsure, target, err)
	}

	err = createIfMissing(target, template)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrEnsure, target, err)
	}

	return nil
}

func createIfMissing(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm) // #nosec G304 -- path is built from the config dir
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}

		return fmt.Errorf("creating file %q: %w", path, err)
	}

	_, err = f.Write(data)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("writing file %q: %w", path, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("closing file %q: %w", path, err)
	}

	return nil
}

// Ensurer applies the environment-sensitive failure policy on top of Dir.Ensure.
type Ensurer struct {
	Dir    Dir
	Logger *slog.Logger
}

// Ensure ensures the source named name for env. In the dev environment a
// failure is returned; in any other environment it is logged and nil is
// returned, leaving the file absent.
func (e Ensurer) Ensure(name, env string) error {
	err := e.Dir.Ensure(name)
	if err == nil {
		return nil
	}

	if env == DevEnv {
		return err
	}

	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Warn("cannot ensure config file",
		slog.String("file", name),
		slog.String("env", env),
		slog.Any("error", err),
	)

	return nil
}
