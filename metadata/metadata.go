package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/0xalexb/nmconfig/config"
	"golang.org/x/mod/modfile"
)

const (
	// DescriptorFile is the project descriptor read from the project root.
	DescriptorFile = "project.yml"
	// SettingsKey holds the nmconfig settings inside the descriptor.
	SettingsKey = "nmConfig"

	nameKey         = "name"
	defaultFilesKey = "defaultFiles"
)

// ErrInvalidDefaultFiles is returned when the descriptor declares default
// files as anything but a sequence of names. It is a startup contract
// violation of the host project.
var ErrInvalidDefaultFiles = errors.New(SettingsKey + "." + defaultFilesKey + " must be a sequence of names")

// DefaultFileNames returns the files bootstrapped when the descriptor declares none.
func DefaultFileNames() []string {
	return []string{"base", "dev.example", "staging", "live"}
}

// Metadata describes the host project.
type Metadata struct {
	// Name is the project name as declared; spaces are kept.
	Name string
	// DefaultFiles lists the sources to bootstrap; nil means DefaultFileNames.
	DefaultFiles []string
	// Blocks holds top-level mappings of the descriptor keyed by name. The
	// one named after the project is merged over the file config.
	Blocks map[string]config.Tree
}

// ProjectName returns Name with every space removed.
func (m Metadata) ProjectName() string {
	return strings.ReplaceAll(m.Name, " ", "")
}

// DefaultFileNames returns the declared default files or the built-in list.
func (m Metadata) DefaultFileNames() []string {
	if m.DefaultFiles == nil {
		return DefaultFileNames()
	}

	return slices.Clone(m.DefaultFiles)
}

// Block returns the block named exactly name.
func (m Metadata) Block(name string) (config.Tree, bool) {
	block, ok := m.Blocks[name]

	return block, ok
}

// Load reads the descriptor from root with parser. A missing descriptor is an
// empty one. When the descriptor has no name, the last element of the module
// path in root/go.mod is used, then the base name of root.
func Load(root string, parser config.Parser) (Metadata, error) {
	data, err := os.ReadFile(filepath.Join(root, DescriptorFile)) // #nosec G304 -- fixed file under the project root
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Metadata{}, fmt.Errorf("reading %s: %w", DescriptorFile, err)
	}

	meta, err := decode(data, parser)
	if err != nil {
		return Metadata{}, err
	}

	if meta.Name == "" {
		meta.Name = moduleName(root)
	}

	if meta.Name == "" {
		meta.Name = filepath.Base(root)
	}

	return meta, nil
}

func decode(data []byte, parser config.Parser) (Metadata, error) {
	tree := config.Tree{}

	err := parser.Parse(data, &tree, "")
	if err != nil {
		return Metadata{}, fmt.Errorf("parsing %s: %w", DescriptorFile, err)
	}

	meta := Metadata{Blocks: blocks(tree)}

	name, err := lookup(data, parser, nameKey)
	if err != nil {
		return Metadata{}, err
	}

	meta.Name, _ = name.(string)

	if _, ok := tree[SettingsKey].(config.Tree); !ok {
		return meta, nil
	}

	raw, err := lookup(data, parser, SettingsKey+":"+defaultFilesKey)
	if err != nil {
		return Metadata{}, err
	}

	meta.DefaultFiles, err = decodeNames(raw)
	if err != nil {
		return Metadata{}, err
	}

	return meta, nil
}

// lookup returns the descriptor value at path, or nil when it is not declared.
func lookup(data []byte, parser config.Parser, path string) (any, error) {
	var value any

	err := parser.Parse(data, &value, path)
	if errors.Is(err, config.ErrPathNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", path, DescriptorFile, err)
	}

	return value, nil
}

// blocks returns every top-level mapping except the settings.
func blocks(tree config.Tree) map[string]config.Tree {
	var found map[string]config.Tree

	for key, value := range tree {
		block, ok := value.(config.Tree)
		if !ok || key == SettingsKey {
			continue
		}

		if found == nil {
			found = make(map[string]config.Tree)
		}

		found[key] = block
	}

	return found
}

// decodeNames returns nil for an undeclared list: null, or a zero scalar such
// as "", false or 0.
func decodeNames(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		value := reflect.ValueOf(raw)
		if value.Kind() != reflect.Map && value.IsZero() {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: got %T", ErrInvalidDefaultFiles, raw)
	}

	names := make([]string, 0, len(items))

	for i, item := range items {
		name, ok := item.(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: item %d is %v", ErrInvalidDefaultFiles, i, item)
		}

		names = append(names, name)
	}

	return names, nil
}

func moduleName(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod")) // #nosec G304 -- fixed file under the project root
	if err != nil {
		return ""
	}

	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return ""
	}

	return path.Base(modulePath)
}
