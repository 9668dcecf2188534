package nmconfig

import (
	"log/slog"

	"github.com/0xalexb/nmconfig/config"

	"go.uber.org/fx"
)

// Module creates an Fx module that resolves the configuration once and
// provides it as *Config and config.Source. The container must supply a
// *slog.Logger; NewApp does.
//
// Typed sections are then provided with config.Provider:
//
//	fx.Provide(config.Provider(new(ServerConfig), "server"))
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(resolution ResolutionOptions, loaderOpts ...LoaderOption) fx.Option {
	return fx.Module("nmconfig",
		fx.Provide(func(logger *slog.Logger) (*Config, error) {
			opts := append([]LoaderOption{WithLogger(logger)}, loaderOpts...)

			loader, err := New(opts...)
			if err != nil {
				return nil, err
			}

			return loader.Resolve(resolution)
		}),
		fx.Provide(
			fx.Annotate(
				func(cfg *Config) *Config { return cfg },
				fx.As(new(config.Source)),
			),
		),
	)
}
