// Package constants provides shared constants used throughout the biorefs codebase.
// This includes file permissions, output defaults, and limits that should be
// consistent across the loader, the parsers, and the CLI.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Sequence formatting constants
const (
	// DefaultFastaWidth is the number of residues written per FASTA line
	DefaultFastaWidth = 60

	// GenBankQualifierIndent is the column at which GenBank feature qualifiers start
	GenBankQualifierIndent = 21

	// GenBankKeywordWidth is the width of the GenBank header keyword column
	GenBankKeywordWidth = 12

	// GFFColumns is the number of tab-separated columns in a GFF feature line
	GFFColumns = 9
)

// Limit constants define various limits and capacities
const (
	// MaxLineLength bounds a single line read from an annotation file (16 MiB)
	MaxLineLength = 16 * 1024 * 1024

	// TablePreviewLength is the number of residues shown in table output
	TablePreviewLength = 24
)

// Path constants
const (
	// ConfigFileName is the base name of the optional configuration file
	ConfigFileName = ".biorefs"

	// EnvPrefix is the prefix for environment variable configuration
	EnvPrefix = "BIOREFS"
)
