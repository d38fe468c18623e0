package save

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/agentstation/biorefs/pkg/constants"
	"github.com/agentstation/biorefs/pkg/errors"
)

// Format is an output encoding for saved records.
type Format int

// Format constants.
const (
	FormatFasta Format = iota
	FormatJSON
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatFasta, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatFasta:
		return "fasta"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fasta", ".fa", ".fna", ".fas":
		return FormatFasta, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, errors.NewValidationError("path", path, "cannot infer an output format from the extension")
}

// Options is the configuration for save.
type Options struct {
	path   string
	writer io.Writer
	format Format
	width  int
}

// Path returns the path for the save options.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the writer for the save options.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the format for the save options.
func (s *Options) Format() Format {
	return s.format
}

// Width returns the residues per FASTA line.
func (s *Options) Width() int {
	return s.width
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		format: FormatFasta,
		width:  constants.DefaultFastaWidth,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat for custom output format.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
	}
}

// WithPath for filesystem saves.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}

// WithWidth sets the residues per FASTA line.
func WithWidth(width int) Option {
	return func(s *Options) {
		if width > 0 {
			s.width = width
		}
	}
}
