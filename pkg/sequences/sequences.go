// Package sequences defines the record model shared by the parsers and the
// reconciler: a sequence record, its content, and its annotations.
package sequences

import "fmt"

// Format identifies the on-disk format of a reference file.
type Format int

// Formats recognized by the loader.
const (
	FormatUnknown Format = iota
	FormatFasta
	FormatGenBank
	FormatGFF
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatFasta:
		return "fasta"
	case FormatGenBank:
		return "genbank"
	case FormatGFF:
		return "gff"
	default:
		return "unknown"
	}
}

// IsAnnotated reports whether files of this format carry annotations.
func (f Format) IsAnnotated() bool {
	return f == FormatGenBank || f == FormatGFF
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ReferenceFile is a classified input path.
type ReferenceFile struct {
	Path   string `json:"path" yaml:"path"`
	Format Format `json:"format" yaml:"format"`
}

// String returns "path (format)".
func (r ReferenceFile) String() string {
	return fmt.Sprintf("%s (%s)", r.Path, r.Format)
}

// Content is either known residues or an unknown run of a declared length.
// The zero value is Unknown(0).
type Content struct {
	letters []byte
	length  int
	known   bool
}

// Known returns content backed by the given residues.
func Known(letters []byte) Content {
	return Content{letters: letters, length: len(letters), known: true}
}

// Unknown returns content of the given length without residues.
// Negative lengths are clamped to zero.
func Unknown(length int) Content {
	if length < 0 {
		length = 0
	}
	return Content{length: length}
}

// IsKnown reports whether residues are present.
func (c Content) IsKnown() bool {
	return c.known
}

// Len returns the residue count, known or declared.
func (c Content) Len() int {
	return c.length
}

// Letters returns the residues, or nil for unknown content.
func (c Content) Letters() []byte {
	return c.letters
}

// String returns the residues, or a placeholder for unknown content.
func (c Content) String() string {
	if !c.known {
		return fmt.Sprintf("<unknown:%d>", c.length)
	}
	return string(c.letters)
}

// Qualifier is one key/value pair of a feature.
type Qualifier struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Strand is the strand a feature lies on.
type Strand int8

// Strand values.
const (
	StrandNone    Strand = 0
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// String returns "+", "-" or ".".
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	default:
		return "."
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strand) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Feature is an annotated interval. Start and End are 1-based inclusive.
type Feature struct {
	Type       string      `json:"type" yaml:"type"`
	Location   string      `json:"location,omitempty" yaml:"location,omitempty"`
	Start      int         `json:"start" yaml:"start"`
	End        int         `json:"end" yaml:"end"`
	Strand     Strand      `json:"strand" yaml:"strand"`
	Qualifiers []Qualifier `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
}

// Qualifier returns the first value for key.
func (f Feature) Qualifier(key string) (string, bool) {
	for _, q := range f.Qualifiers {
		if q.Key == key {
			return q.Value, true
		}
	}
	return "", false
}

// Annotations are carried through reconciliation untouched.
type Annotations struct {
	Features []Feature   `json:"features,omitempty" yaml:"features,omitempty"`
	Meta     []Qualifier `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// IsEmpty reports whether there are no features and no metadata.
func (a Annotations) IsEmpty() bool {
	return len(a.Features) == 0 && len(a.Meta) == 0
}

// Get returns the first metadata value for key.
func (a Annotations) Get(key string) (string, bool) {
	for _, m := range a.Meta {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

// Set appends or replaces the metadata value for key.
func (a *Annotations) Set(key, value string) {
	for i := range a.Meta {
		if a.Meta[i].Key == key {
			a.Meta[i].Value = value
			return
		}
	}
	a.Meta = append(a.Meta, Qualifier{Key: key, Value: value})
}

// Record is one sequence with its annotations. ID is the join key between
// annotated and sequence-only records.
type Record struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Content     Content       `json:"-" yaml:"-"`
	Annotations Annotations   `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Source      ReferenceFile `json:"source" yaml:"source"`
}

// Len returns the content length.
func (r *Record) Len() int {
	return r.Content.Len()
}

// HasSequence reports whether the record's content is known.
func (r *Record) HasSequence() bool {
	return r.Content.IsKnown()
}

// Attach replaces unknown content with the given known content.
func (r *Record) Attach(c Content) {
	r.Content = c
}
