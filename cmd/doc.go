// Package cmd implements the netrun command-line interface.
//
// The package wires the cobra commands (root run flow plus verify) onto the
// internal packages: inventory and commands resolve the targets and command
// lists, creds resolves authentication before any connection is attempted,
// device opens scrapligo sessions, output routes responses to console or
// files, and run drives the sequential per-host loop.
//
// New contributors should start with rootCmd.go for the main flow, init.go
// for flag and environment wiring, and runfile.go for the optional YAML run
// manifest.
package cmd
