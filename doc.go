// Package main provides the entry point for the ghost-account tool.
// It wires the identity and OAuth client stores to a gorm backed database
// and exposes maintenance commands (schema migration, long-lived API secret
// management and client resolution) through a cobra command line.
package main
