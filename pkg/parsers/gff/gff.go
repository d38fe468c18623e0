// Package gff reads GFF2 and GFF3 annotation files into sequence records.
//
// Features are grouped into one record per seqid, in the order seqids first
// appear. A trailing ##FASTA section supplies residues; otherwise a record's
// content is unknown, with its length taken from the ##sequence-region end or,
// failing that, the largest feature end.
package gff

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/biorefs/internal/fileio"
	"github.com/agentstation/biorefs/pkg/constants"
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/parsers/fasta"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// ParserName is reported in parse failures.
const ParserName = "gff"

// Parser reads GFF files. The zero value is ready to use.
type Parser struct{}

// New returns a GFF parser.
func New() *Parser {
	return &Parser{}
}

// Name implements parsers.Parser.
func (p *Parser) Name() string { return ParserName }

// Format implements parsers.Parser.
func (p *Parser) Format() sequences.Format { return sequences.FormatGFF }

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

type region struct {
	start, end int
}

type builder struct {
	file    string
	version string
	order   []string
	records map[string]*sequences.Record
	regions map[string]region
	maxEnd  map[string]int
}

func (b *builder) record(seqid string) *sequences.Record {
	if rec, ok := b.records[seqid]; ok {
		return rec
	}
	rec := &sequences.Record{ID: seqid, Name: seqid}
	b.records[seqid] = rec
	b.order = append(b.order, seqid)
	return rec
}

// Read parses GFF records from r. file names the source in errors.
func Read(r io.Reader, file string) ([]*sequences.Record, error) {
	b := &builder{
		file:    file,
		records: make(map[string]*sequences.Record),
		regions: make(map[string]region),
		maxEnd:  make(map[string]int),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), constants.MaxLineLength)

	row := 0
	var tail *bytes.Buffer
	for sc.Scan() {
		row++
		line := strings.TrimRight(sc.Text(), "\r")

		if tail != nil {
			tail.WriteString(line)
			tail.WriteByte('\n')
			continue
		}

		switch {
		case strings.TrimSpace(line) == "":
		case strings.HasPrefix(line, "##FASTA"):
			tail = &bytes.Buffer{}
		case strings.HasPrefix(line, ">"):
			// FASTA without the directive, as some GFF2 producers write
			tail = &bytes.Buffer{}
			tail.WriteString(line)
			tail.WriteByte('\n')
		case strings.HasPrefix(line, "##"):
			if err := b.directive(line, row); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "#"):
		default:
			if err := b.feature(line, row); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WrapParse("gff", file, err)
	}

	if tail != nil {
		if err := b.attach(tail); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

func (b *builder) errorf(row int, format string, args ...any) error {
	return &errors.ParseError{
		Format:  "gff",
		File:    b.file,
		Line:    row,
		Message: fmt.Sprintf(format, args...),
	}
}

func (b *builder) directive(line string, row int) error {
	fields := strings.Fields(strings.TrimPrefix(line, "##"))
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "gff-version":
		if len(fields) > 1 {
			b.version = fields[1]
		}
	case "sequence-region":
		if len(fields) != 4 {
			return b.errorf(row, "sequence-region directive needs seqid, start and end: %q", line)
		}
		start, err1 := strconv.Atoi(fields[2])
		end, err2 := strconv.Atoi(fields[3])
		if err1 != nil || err2 != nil || start > end {
			return b.errorf(row, "invalid sequence-region bounds %s..%s", fields[2], fields[3])
		}
		b.record(fields[1])
		b.regions[fields[1]] = region{start: start, end: end}
	}
	return nil
}

func (b *builder) feature(line string, row int) error {
	cols := strings.Split(line, "\t")
	if len(cols) < constants.GFFColumns-1 || len(cols) > constants.GFFColumns {
		return b.errorf(row, "expected %d tab-separated columns, found %d", constants.GFFColumns, len(cols))
	}

	seqid := cols[0]
	if seqid == "" || seqid == "." {
		return b.errorf(row, "feature has no seqid")
	}
	start, err := strconv.Atoi(cols[3])
	if err != nil {
		return b.errorf(row, "invalid start %q", cols[3])
	}
	end, err := strconv.Atoi(cols[4])
	if err != nil {
		return b.errorf(row, "invalid end %q", cols[4])
	}
	if start < 1 || start > end {
		return b.errorf(row, "invalid feature bounds %d..%d", start, end)
	}

	f := sequences.Feature{
		Type:     cols[2],
		Start:    start,
		End:      end,
		Location: fmt.Sprintf("%d..%d", start, end),
	}
	switch cols[6] {
	case "+":
		f.Strand = sequences.StrandForward
	case "-":
		f.Strand = sequences.StrandReverse
		f.Location = "complement(" + f.Location + ")"
	}

	if cols[1] != "." {
		f.Qualifiers = append(f.Qualifiers, sequences.Qualifier{Key: "source", Value: cols[1]})
	}
	if cols[5] != "." {
		f.Qualifiers = append(f.Qualifiers, sequences.Qualifier{Key: "score", Value: cols[5]})
	}
	if cols[7] != "." {
		f.Qualifiers = append(f.Qualifiers, sequences.Qualifier{Key: "phase", Value: cols[7]})
	}
	if len(cols) == constants.GFFColumns {
		attrs, err := parseAttributes(cols[8])
		if err != nil {
			return b.errorf(row, "%v", err)
		}
		f.Qualifiers = append(f.Qualifiers, attrs...)
	}

	rec := b.record(seqid)
	rec.Annotations.Features = append(rec.Annotations.Features, f)
	if end > b.maxEnd[seqid] {
		b.maxEnd[seqid] = end
	}
	return nil
}

// attach assigns residues from the ##FASTA section by seqid.
func (b *builder) attach(tail *bytes.Buffer) error {
	seqs, err := fasta.Read(tail, b.file)
	if err != nil {
		return err
	}
	for _, s := range seqs {
		rec := b.record(s.ID)
		if rec.Content.IsKnown() {
			return b.errorf(0, "sequence %s appears twice in the FASTA section", s.ID)
		}
		if reg, ok := b.regions[s.ID]; ok && reg.end != s.Len() {
			return b.errorf(0, "sequence %s has %d residues but its sequence-region ends at %d", s.ID, s.Len(), reg.end)
		}
		if rec.Description == "" {
			rec.Description = s.Description
		}
		rec.Content = s.Content
	}
	return nil
}

func (b *builder) finish() []*sequences.Record {
	records := make([]*sequences.Record, 0, len(b.order))
	for _, seqid := range b.order {
		rec := b.records[seqid]
		if b.version != "" {
			rec.Annotations.Set("gff_version", b.version)
		}
		reg, hasRegion := b.regions[seqid]
		if hasRegion {
			rec.Annotations.Set("sequence_region", fmt.Sprintf("%d..%d", reg.start, reg.end))
		}
		if !rec.Content.IsKnown() {
			length := b.maxEnd[seqid]
			if hasRegion {
				length = reg.end
			}
			rec.Content = sequences.Unknown(length)
		}
		records = append(records, rec)
	}
	return records
}

// parseAttributes reads the ninth column in either GFF3 (key=value;...) or
// GFF2 (key "value"; ...) style.
func parseAttributes(col string) ([]sequences.Qualifier, error) {
	col = strings.TrimSpace(col)
	if col == "" || col == "." {
		return nil, nil
	}

	var quals []sequences.Qualifier
	for _, part := range strings.Split(col, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if key, val, ok := strings.Cut(part, "="); ok {
			key = strings.TrimSpace(key)
			for _, v := range strings.Split(val, ",") {
				unescaped, err := url.PathUnescape(v)
				if err != nil {
					return nil, fmt.Errorf("invalid escape in attribute %s: %w", key, err)
				}
				quals = append(quals, sequences.Qualifier{Key: key, Value: unescaped})
			}
			continue
		}

		key, val, _ := strings.Cut(part, " ")
		quals = append(quals, sequences.Qualifier{
			Key:   key,
			Value: strings.Trim(strings.TrimSpace(val), `"`),
		})
	}
	return quals, nil
}
