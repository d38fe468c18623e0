// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/biorefs"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/biorefs/app implements it; tests use Mock.
type Interface interface {
	// Loader returns a new reference loader.
	Loader() (biorefs.Loader, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, fasta, ...).
	OutputFormat() string

	// FastaWidth returns the residues per line for FASTA output.
	FastaWidth() int

	// Manifest returns the configured manifest path, if any.
	Manifest() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
