package nmconfig

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/0xalexb/nmconfig/config"
	"github.com/0xalexb/nmconfig/config/layout"
	"github.com/0xalexb/nmconfig/config/overlay"
	yamlparser "github.com/0xalexb/nmconfig/config/parser/yaml"
	"github.com/0xalexb/nmconfig/metadata"
)

// Keys injected into every resolved configuration.
const (
	RootDirKey = "rootDir"
	BaseDirKey = "basedir"
	VerboseKey = "verboseConfig"
)

// Loader resolves configurations for one project root. Its config directory
// is bootstrapped once, when the Loader is created.
type Loader struct {
	root   string
	dir    layout.Dir
	meta   metadata.Metadata
	parser config.Parser
	logger *slog.Logger
}

// New creates a Loader and bootstraps its config directory.
// It fails when the project descriptor breaks its contract (see
// metadata.ErrInvalidDefaultFiles) or the directory cannot be created.
func New(opts ...LoaderOption) (*Loader, error) {
	var settings loaderSettings

	for _, apply := range opts {
		apply(&settings)
	}

	loader := &Loader{
		root:   settings.root,
		parser: settings.parser,
		logger: settings.logger,
	}

	if loader.root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("finding project root: %w", err)
		}

		loader.root = wd
	}

	if loader.parser == nil {
		loader.parser = yamlparser.NewParser()
	}

	if loader.logger == nil {
		loader.logger = slog.Default()
	}

	if settings.meta != nil {
		loader.meta = *settings.meta
	} else {
		meta, err := metadata.Load(loader.root, loader.parser)
		if err != nil {
			return nil, fmt.Errorf("loading project metadata: %w", err)
		}

		loader.meta = meta
	}

	loader.dir = layout.NewDir(loader.root)

	err := loader.dir.Bootstrap(loader.meta.DefaultFileNames())
	if err != nil {
		return nil, fmt.Errorf("bootstrapping config dir: %w", err)
	}

	return loader, nil
}

// Root returns the project root.
func (l *Loader) Root() string {
	return l.root
}

// Metadata returns the project metadata in use.
func (l *Loader) Metadata() metadata.Metadata {
	return l.meta
}

// Resolve merges the config files selected by opts and returns the resolved
// configuration. Files are re-read on every call.
func (l *Loader) Resolve(opts ResolutionOptions) (*Config, error) {
	opts, err := l.complete(opts)
	if err != nil {
		return nil, err
	}

	files := config.NewFileSet(opts.BaseFiles, opts.Env)

	if opts.Ensure != "" {
		ensurer := layout.Ensurer{Dir: l.dir, Logger: l.logger}

		err := ensurer.Ensure(opts.Ensure, opts.Env)
		if err != nil {
			return nil, err
		}
	}

	merger := config.Merger{Open: l.dir.Open, Parser: l.parser}

	tree, err := merger.Merge(opts.Env, files)
	if err != nil {
		return nil, err
	}

	if block, ok := l.meta.Block(opts.ProjectName); ok {
		tree = config.MergeRecursive(tree, block)
	}

	tree[RootDirKey] = l.root
	tree[BaseDirKey] = l.root

	if verbose, _ := tree[VerboseKey].(bool); verbose {
		l.logResolved(tree, opts.Prefix)
	}

	k, err := overlay.New(tree, opts.Prefix, opts.Separator)
	if err != nil {
		return nil, err
	}

	return &Config{
		k:         k,
		env:       opts.Env,
		prefix:    opts.Prefix,
		separator: opts.Separator,
		root:      l.root,
		files:     files.Names(),
	}, nil
}

func (l *Loader) logResolved(tree config.Tree, prefix string) {
	dump, err := yamlparser.Marshal(tree)
	if err != nil {
		l.logger.Warn("cannot dump configuration object", slog.Any("error", err))

		return
	}

	l.logger.Info("loading configuration object",
		slog.String("config", string(dump)),
		slog.String("prefix", prefix),
		slog.String("version", Version),
	)
}

//nolint:gochecknoglobals // the process-wide loader bootstraps once, on first use.
var (
	defaultOnce   sync.Once
	defaultLoader *Loader
	errDefault    error
)

// Load resolves opts with a process-wide Loader rooted at the working
// directory. The first call creates that Loader and bootstraps the config
// directory; a bootstrap failure is returned by every call.
func Load(opts ResolutionOptions) (*Config, error) {
	defaultOnce.Do(func() {
		defaultLoader, errDefault = New()
	})

	if errDefault != nil {
		return nil, errDefault
	}

	return defaultLoader.Resolve(opts)
}

// Must returns cfg or panics with err.
func Must(cfg *Config, err error) *Config {
	if err != nil {
		panic(err)
	}

	return cfg
}
