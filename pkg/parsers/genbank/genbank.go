// Package genbank reads GenBank flat files into annotated sequence records.
//
// A record's ID is its VERSION accession.version, falling back to the first
// ACCESSION and then to the LOCUS name. Records without ORIGIN residues, such
// as CONTIG or annotation-only records, get unknown content of the length
// declared on the LOCUS line.
package genbank

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/biorefs/internal/fileio"
	"github.com/agentstation/biorefs/pkg/constants"
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// ParserName is reported in parse failures.
const ParserName = "genbank"

var (
	headerIndent    = strings.Repeat(" ", constants.GenBankKeywordWidth)
	qualifierIndent = strings.Repeat(" ", constants.GenBankQualifierIndent)
	featureIndent   = "     "

	datePattern     = regexp.MustCompile(`^\d{2}-[A-Za-z]{3}-\d{4}$`)
	intervalPattern = regexp.MustCompile(`^[<>]?(\d+)(?:(?:\.\.|\^|\.)[<>]?(\d+))?$`)
)

// Parser reads GenBank files. The zero value is ready to use.
type Parser struct{}

// New returns a GenBank parser.
func New() *Parser {
	return &Parser{}
}

// Name implements parsers.Parser.
func (p *Parser) Name() string { return ParserName }

// Format implements parsers.Parser.
func (p *Parser) Format() sequences.Format { return sequences.FormatGenBank }

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

// Read parses every record in r. Text before the first LOCUS line, such as a
// release header, is skipped.
func Read(r io.Reader, file string) ([]*sequences.Record, error) {
	rd := newReader(r, file)

	var records []*sequences.Record
	rd.next()
	for !rd.eof {
		if !strings.HasPrefix(rd.line, "LOCUS") {
			rd.next()
			continue
		}
		rec, err := rd.readRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rd.sc.Err(); err != nil {
		return nil, errors.WrapParse("genbank", file, err)
	}
	return records, nil
}

type reader struct {
	sc   *bufio.Scanner
	file string
	line string
	row  int
	eof  bool
}

func newReader(r io.Reader, file string) *reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), constants.MaxLineLength)
	return &reader{sc: sc, file: file}
}

// next advances to the next non-blank line.
func (r *reader) next() bool {
	for r.sc.Scan() {
		r.row++
		line := strings.TrimRight(r.sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.line = line
		return true
	}
	r.line = ""
	r.eof = true
	return false
}

func (r *reader) errorAt(row int, format string, args ...any) error {
	if err := r.sc.Err(); err != nil {
		return errors.WrapParse("genbank", r.file, err)
	}
	return &errors.ParseError{
		Format:  "genbank",
		File:    r.file,
		Line:    row,
		Message: fmt.Sprintf(format, args...),
	}
}

func (r *reader) errorf(format string, args ...any) error {
	return r.errorAt(r.row, format, args...)
}

// continuation joins val with the indented lines that follow it and leaves
// the reader on the first line that is not a continuation.
func (r *reader) continuation(val string) string {
	parts := []string{}
	if v := strings.TrimSpace(val); v != "" {
		parts = append(parts, v)
	}
	for r.next() && strings.HasPrefix(r.line, headerIndent) {
		parts = append(parts, strings.TrimSpace(r.line))
	}
	return strings.Join(parts, " ")
}

func (r *reader) readRecord() (*sequences.Record, error) {
	locusRow := r.row
	cols := strings.Fields(r.line)
	if len(cols) < 3 {
		return nil, r.errorf("malformed LOCUS line %q", r.line)
	}

	rec := &sequences.Record{Name: cols[1]}
	declared, err := strconv.Atoi(cols[2])
	if err != nil || declared < 0 {
		return nil, r.errorf("invalid sequence length %q on LOCUS line", cols[2])
	}
	parseLocusFields(&rec.Annotations, cols[3:])
	r.next()

	var (
		accession string
		version   string
		residues  bytes.Buffer
		inOrigin  bool
	)

	for {
		if r.eof {
			return nil, r.errorf("record %s is missing the // terminator", rec.Name)
		}

		switch {
		case strings.HasPrefix(r.line, "//"):
			r.next()
			return r.finish(rec, accession, version, declared, residues.Bytes(), locusRow)

		case inOrigin:
			for _, f := range strings.Fields(r.line) {
				if !isAllDigits(f) {
					residues.WriteString(f)
				}
			}
			r.next()

		case strings.HasPrefix(r.line, "ORIGIN"):
			inOrigin = true
			r.next()

		case strings.HasPrefix(r.line, "FEATURES"):
			r.next()
			features, err := r.readFeatures()
			if err != nil {
				return nil, err
			}
			rec.Annotations.Features = append(rec.Annotations.Features, features...)

		case strings.HasPrefix(r.line, " "):
			key, val := splitKeyword(r.line)
			if key != "ORGANISM" {
				r.continuation(val)
				continue
			}
			rec.Annotations.Set("organism", strings.TrimSpace(val))
			if taxonomy := r.continuation(""); taxonomy != "" {
				rec.Annotations.Set("taxonomy", strings.TrimSuffix(taxonomy, "."))
			}

		default:
			key, val := splitKeyword(r.line)
			val = r.continuation(val)
			switch key {
			case "DEFINITION":
				rec.Description = strings.TrimSuffix(val, ".")
			case "ACCESSION":
				if fields := strings.Fields(val); len(fields) > 0 {
					accession = fields[0]
				}
				rec.Annotations.Set("accession", val)
			case "VERSION":
				if fields := strings.Fields(val); len(fields) > 0 {
					version = fields[0]
				}
			case "KEYWORDS":
				if kw := strings.TrimSuffix(val, "."); kw != "" {
					rec.Annotations.Set("keywords", kw)
				}
			case "SOURCE":
				rec.Annotations.Set("source", val)
			case "DBLINK":
				rec.Annotations.Set("dblink", val)
			case "CONTIG":
				rec.Annotations.Set("contig", strings.ReplaceAll(val, " ", ""))
			}
		}
	}
}

func (r *reader) finish(rec *sequences.Record, accession, version string, declared int, residues []byte, locusRow int) (*sequences.Record, error) {
	switch {
	case version != "":
		rec.ID = version
	case accession != "":
		rec.ID = accession
	default:
		rec.ID = rec.Name
	}
	if rec.ID == "" {
		return nil, r.errorAt(locusRow, "record has no identifier")
	}

	if len(residues) == 0 {
		rec.Content = sequences.Unknown(declared)
		return rec, nil
	}
	if len(residues) != declared {
		return nil, r.errorAt(locusRow, "record %s declares length %d on LOCUS line but ORIGIN holds %d residues",
			rec.ID, declared, len(residues))
	}
	rec.Content = sequences.Known(bytes.ToUpper(residues))
	return rec, nil
}

// readFeatures reads the feature table and leaves the reader on the first
// line past it.
func (r *reader) readFeatures() ([]sequences.Feature, error) {
	var features []sequences.Feature
	for !r.eof && strings.HasPrefix(r.line, featureIndent) {
		if len(r.line) <= len(featureIndent) || r.line[len(featureIndent)] == ' ' {
			return nil, r.errorf("expected a feature key, got %q", strings.TrimSpace(r.line))
		}

		var key, loc string
		if len(r.line) > constants.GenBankQualifierIndent {
			key = strings.TrimSpace(r.line[len(featureIndent):constants.GenBankQualifierIndent])
			loc = strings.TrimSpace(r.line[constants.GenBankQualifierIndent:])
		} else {
			key = strings.TrimSpace(r.line)
		}

		for r.next() && strings.HasPrefix(r.line, qualifierIndent) {
			txt := strings.TrimSpace(r.line)
			if strings.HasPrefix(txt, "/") {
				break
			}
			loc += txt
		}

		var quals []sequences.Qualifier
		for !r.eof && strings.HasPrefix(r.line, qualifierIndent) {
			q := r.readQualifier()
			quals = append(quals, q)
		}

		f := sequences.Feature{Type: key, Location: loc, Qualifiers: quals}
		f.Start, f.End, f.Strand = parseLocation(loc)
		features = append(features, f)
	}
	return features, nil
}

// readQualifier reads one /name=value qualifier with its continuation lines.
func (r *reader) readQualifier() sequences.Qualifier {
	name := strings.TrimPrefix(strings.TrimSpace(r.line), "/")
	val := ""
	if i := strings.Index(name, "="); i >= 0 {
		name, val = name[:i], name[i+1:]
	}

	for r.next() && strings.HasPrefix(r.line, qualifierIndent) {
		txt := strings.TrimSpace(r.line)
		if strings.HasPrefix(txt, "/") && strings.Count(val, `"`)%2 == 0 {
			break
		}
		// sequence-valued qualifiers wrap without separators
		if name == "translation" || name == "transcription" || name == "peptide" {
			val += txt
		} else {
			val += " " + txt
		}
	}

	val = strings.TrimSpace(val)
	val = strings.TrimPrefix(val, `"`)
	val = strings.TrimSuffix(val, `"`)
	return sequences.Qualifier{Key: name, Value: val}
}

// parseLocation returns the outer bounds and strand of a feature location
// such as "complement(join(<1..20,30..>45))". Remote intervals are ignored.
func parseLocation(loc string) (start, end int, strand sequences.Strand) {
	strand = sequences.StrandForward
	if strings.HasPrefix(loc, "complement(") {
		strand = sequences.StrandReverse
	}

	tokens := strings.FieldsFunc(loc, func(c rune) bool {
		return c == '(' || c == ')' || c == ','
	})
	for _, tok := range tokens {
		m := intervalPattern.FindStringSubmatch(strings.TrimSpace(tok))
		if m == nil {
			continue
		}
		a, _ := strconv.Atoi(m[1])
		b := a
		if m[2] != "" {
			b, _ = strconv.Atoi(m[2])
		}
		if start == 0 || a < start {
			start = a
		}
		if b > end {
			end = b
		}
	}
	return start, end, strand
}

// parseLocusFields records the optional LOCUS columns that follow the length.
func parseLocusFields(a *sequences.Annotations, cols []string) {
	for _, tok := range cols {
		switch {
		case tok == "bp":
		case tok == "aa":
			a.Set("molecule_type", "protein")
		case tok == "linear" || tok == "circular":
			a.Set("topology", tok)
		case datePattern.MatchString(tok):
			a.Set("date", tok)
		default:
			if _, ok := a.Get("molecule_type"); !ok {
				a.Set("molecule_type", tok)
			} else {
				a.Set("data_file_division", tok)
			}
		}
	}
}

// splitKeyword splits a header line into its keyword and the rest.
func splitKeyword(line string) (string, string) {
	trimmed := strings.TrimLeft(line, " ")
	if strings.HasPrefix(trimmed, "BASE COUNT") {
		return "BASE COUNT", strings.TrimPrefix(trimmed, "BASE COUNT")
	}
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.TrimSpace(strings.TrimPrefix(trimmed, fields[0]))
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
