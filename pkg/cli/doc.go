// Package cli implements the mockd-openai command line: serve, validate
// and version.
package cli
