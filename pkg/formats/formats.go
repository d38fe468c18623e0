// Package formats classifies reference files by file-name extension.
//
// Matching is case-insensitive and anchored at the end of the name, so
// "chr1.FA" is FASTA while "chr1.fa.gz" is not recognized.
package formats

import (
	"strings"

	"github.com/agentstation/biorefs/internal/matcher"
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// Extensions recognized per format.
var (
	FastaExtensions   = []string{"fasta", "fa", "fna", "fas", "ffa", "fra"}
	GenBankExtensions = []string{"genbank", "gbk", "gb"}
	GFFExtensions     = []string{"gff", "gff3", "gff2"}
)

type rule struct {
	format  sequences.Format
	matcher matcher.Matcher
}

// rules are checked in order; the extension sets are disjoint.
var rules = []rule{
	{sequences.FormatFasta, suffix(FastaExtensions)},
	{sequences.FormatGenBank, suffix(GenBankExtensions)},
	{sequences.FormatGFF, suffix(GFFExtensions)},
}

func suffix(exts []string) matcher.Matcher {
	return matcher.MustNew(matcher.Regex, matcher.SuffixPattern(exts...), &matcher.Options{
		CaseInsensitive: true,
		AnchorEnd:       true,
	})
}

// Classify returns the format implied by path's extension, or FormatUnknown.
func Classify(path string) sequences.Format {
	for _, r := range rules {
		if r.matcher.Match(path) {
			return r.format
		}
	}
	return sequences.FormatUnknown
}

// ClassifyFile classifies path into a ReferenceFile, failing when the
// extension is not recognized.
func ClassifyFile(path string) (sequences.ReferenceFile, error) {
	f := Classify(path)
	if f == sequences.FormatUnknown {
		return sequences.ReferenceFile{}, &errors.UnrecognizedFormatError{Path: path}
	}
	return sequences.ReferenceFile{Path: path, Format: f}, nil
}

// Parse turns a format name such as "fasta", "gb" or "gff3" into a Format.
func Parse(name string) (sequences.Format, error) {
	n := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for _, r := range []struct {
		format sequences.Format
		exts   []string
	}{
		{sequences.FormatFasta, FastaExtensions},
		{sequences.FormatGenBank, GenBankExtensions},
		{sequences.FormatGFF, GFFExtensions},
	} {
		for _, ext := range r.exts {
			if n == ext {
				return r.format, nil
			}
		}
	}
	return sequences.FormatUnknown, errors.NewValidationError("format", name, "expected one of fasta, genbank, gff")
}
