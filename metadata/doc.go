// Package metadata reads the descriptor of the project hosting the config
// directory.
//
// The descriptor is an optional project.yml at the project root:
//
//	name: my app
//	nmConfig:
//	  defaultFiles: [base, dev.example, staging, live]
//	myapp:
//	  feature: on
//
// name defaults to the module name in go.mod. nmConfig.defaultFiles lists the
// sources created at bootstrap; null, "", false and 0 mean the default list. Any other top-level mapping is a block; the
// block named after the project (spaces removed) is merged over the file
// config with the highest precedence.
package metadata
