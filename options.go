package nmconfig

import (
	"log/slog"

	"github.com/0xalexb/nmconfig/config"
	"github.com/0xalexb/nmconfig/metadata"

	"go.uber.org/fx"
)

// ResolutionOptions selects what a Resolve call merges. Every field is optional.
type ResolutionOptions struct {
	// BaseFiles are merged in order before the environment file. Default (nil):
	// [base]. A non-nil empty list merges the environment file only.
	BaseFiles []string
	// Separator joins the prefix and path segments of overlay variables. Default: "_".
	Separator string
	// ProjectName names the metadata block to merge and the <PROJECT>_ENV and
	// <PROJECT>_CONFIG variables. Default: the metadata name without spaces.
	ProjectName string
	// Prefix of overlay variables. Default: RECONFIG_PREFIX, then <PROJECT>_CONFIG.
	Prefix string
	// Ensure names a file that must exist before merging, e.g. "secrets.yml".
	Ensure string
	// Env forces the environment. Default: <PROJECT>_ENV, then NODE_ENV, then "dev".
	Env string
}

type loaderSettings struct {
	root   string
	meta   *metadata.Metadata
	parser config.Parser
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderSettings)

// WithRoot sets the project root holding the config directory.
// Defaults to the working directory.
func WithRoot(root string) LoaderOption {
	return func(s *loaderSettings) {
		s.root = root
	}
}

// WithMetadata supplies the project metadata instead of reading project.yml.
func WithMetadata(meta metadata.Metadata) LoaderOption {
	return func(s *loaderSettings) {
		s.meta = &meta
	}
}

// WithParser replaces the YAML parser used for config files and the descriptor.
func WithParser(parser config.Parser) LoaderOption {
	return func(s *loaderSettings) {
		s.parser = parser
	}
}

// WithLogger sets the logger for ensure failures and verbose dumps.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(s *loaderSettings) {
		s.logger = logger
	}
}

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithConfig adds the configuration module to the application, making
// *Config and config.Source available to other modules.
func WithConfig(resolution ResolutionOptions, loaderOpts ...LoaderOption) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, Module(resolution, loaderOpts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log format for the application: "json" or "text".
// If not set or unknown, defaults to "json".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}
