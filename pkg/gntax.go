// Package gntax holds application-level metadata shared by the CLI
// and the library packages.
package gntax

var (
	// Version is set by build flags.
	Version = "v0.1.0"
	// Build is set by build flags to the build timestamp.
	Build = "n/a"
)
