// Package config loads and validates wavextract configuration.
//
// Configuration comes from an optional TOML file; every value has a
// default and any of them can be overridden by command-line flags.
package config
