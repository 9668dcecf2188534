// Package nmconfig resolves layered YAML configuration for a project.
//
// Sources live in <root>/config. A resolution merges, in order, the base files
// (default: base.yml) and the file of the resolved environment (dev.yml,
// staging.yml, ...). Later files win; mappings merge recursively while
// sequences are replaced whole. The project block of project.yml is merged
// on top, then environment variables named <PREFIX>_<path> override single
// values at lookup.
//
//	cfg, err := nmconfig.Load(nmconfig.ResolutionOptions{Ensure: "secrets.yml"})
//	if err != nil {
//	    return err
//	}
//	host := cfg.String("db.host")
//
// The environment is the Env option, then <PROJECT>_ENV, then NODE_ENV, then
// "dev". The variable prefix is the Prefix option, then RECONFIG_PREFIX, then
// <PROJECT>_CONFIG.
package nmconfig
