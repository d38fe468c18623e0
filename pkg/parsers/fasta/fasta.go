// Package fasta reads and writes sequence-only FASTA files using biogo.
package fasta

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/agentstation/biorefs/internal/fileio"
	"github.com/agentstation/biorefs/pkg/constants"
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// ParserName is reported in parse failures.
const ParserName = "biogo-fasta"

// Parser reads FASTA files. The zero value is ready to use.
type Parser struct{}

// New returns a FASTA parser.
func New() *Parser {
	return &Parser{}
}

// Name implements parsers.Parser.
func (p *Parser) Name() string { return ParserName }

// Format implements parsers.Parser.
func (p *Parser) Format() sequences.Format { return sequences.FormatFasta }

// Parse implements parsers.Parser.
func (p *Parser) Parse(ctx context.Context, path string) ([]*sequences.Record, error) {
	var records []*sequences.Record
	err := fileio.With(ctx, path, func(data []byte) error {
		var err error
		records, err = Read(bytes.NewReader(data), path)
		return err
	})
	return records, err
}

// Read parses FASTA records from r. The first word of each header becomes
// the record ID and the remainder its description. file names the source in
// errors.
func Read(r io.Reader, file string) ([]*sequences.Record, error) {
	var records []*sequences.Record
	sc := seqio.NewScanner(biofasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if s.ID == "" {
			return nil, errors.NewParseError("fasta", file, fmt.Sprintf("record %d has an empty identifier", len(records)+1), nil)
		}
		records = append(records, &sequences.Record{
			ID:          s.ID,
			Name:        s.ID,
			Description: s.Desc,
			Content:     sequences.Known(lettersToBytes(s.Seq)),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, errors.WrapParse("fasta", file, err)
	}
	return records, nil
}

// Write writes records as FASTA, wrapping residues at width columns.
// Records with unknown content cannot be written. A non-positive width
// selects the default.
func Write(w io.Writer, records []*sequences.Record, width int) error {
	if width <= 0 {
		width = constants.DefaultFastaWidth
	}
	for _, rec := range records {
		if !rec.Content.IsKnown() {
			return errors.NewValidationError("content", rec.ID, "record "+rec.ID+" has no sequence to write")
		}
		s := linear.NewSeq(rec.ID, bytesToLetters(rec.Content.Letters()), alphabet.DNA)
		s.Desc = rec.Description
		if _, err := fmt.Fprintf(w, "%*a\n", width, s); err != nil {
			return errors.WrapIO("write", "", err)
		}
	}
	return nil
}

func lettersToBytes(l alphabet.Letters) []byte {
	b := make([]byte, len(l))
	for i, c := range l {
		b[i] = byte(c)
	}
	return b
}

func bytesToLetters(b []byte) alphabet.Letters {
	l := make(alphabet.Letters, len(b))
	for i, c := range b {
		l[i] = alphabet.Letter(c)
	}
	return l
}
