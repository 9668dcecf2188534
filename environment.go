package nmconfig

import (
	"cmp"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/0xalexb/nmconfig/config/layout"
	"github.com/caarlos0/env/v11"
)

const (
	// DefaultEnv is the environment used when nothing else selects one.
	DefaultEnv = layout.DevEnv
	// DefaultSeparator separates the prefix and path segments of overlay variables.
	DefaultSeparator = "_"

	envVarSuffix    = "_ENV"
	prefixVarSuffix = "_CONFIG"
)

// projectVars are read with the "<PROJECT>_" prefix.
type projectVars struct {
	Env string `env:"ENV"`
}

type genericVars struct {
	Env    string `env:"NODE_ENV"`
	Prefix string `env:"RECONFIG_PREFIX"`
}

// complete runs every fallback chain over opts. Resolution order:
//   - project name: option, then metadata name with spaces removed
//   - environment: option, then <PROJECT>_ENV, then NODE_ENV, then DefaultEnv
//   - prefix: option, then RECONFIG_PREFIX, then <PROJECT>_CONFIG
//   - separator: option, then DefaultSeparator
//
// Base files are left as given; config.NewFileSet defaults a nil list.
//
// Empty environment variables count as unset.
func (l *Loader) complete(opts ResolutionOptions) (ResolutionOptions, error) {
	err := mergo.Merge(&opts, ResolutionOptions{
		Separator:   DefaultSeparator,
		ProjectName: l.meta.ProjectName(),
	})
	if err != nil {
		return ResolutionOptions{}, fmt.Errorf("applying option defaults: %w", err)
	}

	shellName := strings.ToUpper(opts.ProjectName)

	project, err := env.ParseAsWithOptions[projectVars](env.Options{Prefix: shellName + "_"})
	if err != nil {
		return ResolutionOptions{}, fmt.Errorf("reading %s%s: %w", shellName, envVarSuffix, err)
	}

	generic, err := env.ParseAs[genericVars]()
	if err != nil {
		return ResolutionOptions{}, fmt.Errorf("reading environment: %w", err)
	}

	opts.Env = cmp.Or(opts.Env, project.Env, generic.Env, DefaultEnv)
	opts.Prefix = cmp.Or(opts.Prefix, generic.Prefix, shellName+prefixVarSuffix)

	return opts, nil
}
