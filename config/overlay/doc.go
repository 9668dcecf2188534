// Package overlay applies environment variable overrides on top of a merged
// config tree and exposes the result as a koanf instance.
//
// With prefix MYAPP_CONFIG and separator "_", the variable
// MYAPP_CONFIG_db_host overrides the path db.host. Segments are matched
// verbatim, so keys are case sensitive.
package overlay
