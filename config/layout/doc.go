// Package layout manages the on-disk config directory of a project.
//
// Sources live in <root>/config as <name>.yml, with optional templates named
// <name>.example.yml. Bootstrap creates the directory and empty default
// sources; Ensure materialises a required source from its template.
//
// Ensurer wraps Ensure with the failure policy: fatal in the dev environment,
// logged and ignored everywhere else.
package layout
