package genbank_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/parsers/genbank"
	"github.com/agentstation/biorefs/pkg/sequences"
)

const twoRecords = `GBSYN.SEQ          Synthetic release header

LOCUS       chr1                      10 bp    DNA     linear   UNA 01-JAN-2020
DEFINITION  Test chromosome one,
            second line.
ACCESSION   chr1
VERSION     chr1.1
KEYWORDS    .
SOURCE      synthetic construct
  ORGANISM  synthetic construct
            other sequences; artificial sequences.
REFERENCE   1  (bases 1 to 10)
  AUTHORS   Doe,J.
  TITLE     Direct Submission
FEATURES             Location/Qualifiers
     source          1..10
                     /organism="synthetic construct"
                     /mol_type="genomic DNA"
     gene            complement(<2..>8)
                     /gene="abcD"
                     /note="a long note that wraps
                     /onto a second line"
                     /pseudo
     CDS             join(1..3,6..10)
                     /translation="MKT
                     AA"
ORIGIN
        1 acgtacgtac
//
LOCUS       chr2                      20 bp    DNA     circular UNA 01-JAN-2020
DEFINITION  annotation only.
ACCESSION   chr2
FEATURES             Location/Qualifiers
     gene            5..15
                     /gene="x"
//
`

func TestRead(t *testing.T) {
	records, err := genbank.Read(strings.NewReader(twoRecords), "two.gb")
	require.NoError(t, err)
	require.Len(t, records, 2)

	t.Run("record with origin", func(t *testing.T) {
		rec := records[0]
		assert.Equal(t, "chr1.1", rec.ID)
		assert.Equal(t, "chr1", rec.Name)
		assert.Equal(t, "Test chromosome one, second line", rec.Description)
		require.True(t, rec.Content.IsKnown())
		assert.Equal(t, "ACGTACGTAC", rec.Content.String())

		meta := map[string]string{}
		for _, m := range rec.Annotations.Meta {
			meta[m.Key] = m.Value
		}
		assert.Equal(t, "DNA", meta["molecule_type"])
		assert.Equal(t, "linear", meta["topology"])
		assert.Equal(t, "UNA", meta["data_file_division"])
		assert.Equal(t, "01-JAN-2020", meta["date"])
		assert.Equal(t, "synthetic construct", meta["organism"])
		assert.Equal(t, "other sequences; artificial sequences", meta["taxonomy"])
		assert.NotContains(t, meta, "keywords")

		require.Len(t, rec.Annotations.Features, 3)

		source := rec.Annotations.Features[0]
		assert.Equal(t, "source", source.Type)
		assert.Equal(t, 1, source.Start)
		assert.Equal(t, 10, source.End)
		v, _ := source.Qualifier("mol_type")
		assert.Equal(t, "genomic DNA", v)

		gene := rec.Annotations.Features[1]
		assert.Equal(t, "complement(<2..>8)", gene.Location)
		assert.Equal(t, 2, gene.Start)
		assert.Equal(t, 8, gene.End)
		assert.Equal(t, sequences.StrandReverse, gene.Strand)
		note, _ := gene.Qualifier("note")
		assert.Equal(t, "a long note that wraps /onto a second line", note)
		_, ok := gene.Qualifier("pseudo")
		assert.True(t, ok)

		cds := rec.Annotations.Features[2]
		assert.Equal(t, 1, cds.Start)
		assert.Equal(t, 10, cds.End)
		assert.Equal(t, sequences.StrandForward, cds.Strand)
		tr, _ := cds.Qualifier("translation")
		assert.Equal(t, "MKTAA", tr)
	})

	t.Run("annotation-only record", func(t *testing.T) {
		rec := records[1]
		assert.Equal(t, "chr2", rec.ID)
		assert.Equal(t, "annotation only", rec.Description)
		assert.False(t, rec.Content.IsKnown())
		assert.Equal(t, 20, rec.Len())
		topology, _ := rec.Annotations.Get("topology")
		assert.Equal(t, "circular", topology)
		require.Len(t, rec.Annotations.Features, 1)
		assert.Equal(t, 5, rec.Annotations.Features[0].Start)
	})
}

func TestReadLocusNameFallback(t *testing.T) {
	input := "LOCUS       orphan                     4 bp    DNA     linear   UNA 01-JAN-2020\n" +
		"ORIGIN\n        1 acgt\n//\n"

	records, err := genbank.Read(strings.NewReader(input), "orphan.gb")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "orphan", records[0].ID)
	assert.Equal(t, "ACGT", records[0].Content.String())
}

func TestReadEmpty(t *testing.T) {
	records, err := genbank.Read(strings.NewReader("\n\n"), "empty.gb")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{
			name:    "malformed locus",
			input:   "LOCUS\n//\n",
			message: "malformed LOCUS line",
		},
		{
			name:    "invalid length",
			input:   "LOCUS       x   ten bp DNA\n//\n",
			message: "invalid sequence length",
		},
		{
			name:    "missing terminator",
			input:   "LOCUS       x   4 bp DNA\nORIGIN\n        1 acgt\n",
			message: "missing the // terminator",
		},
		{
			name:    "length mismatch",
			input:   "LOCUS       x   5 bp DNA\nORIGIN\n        1 acgt\n//\n",
			message: "declares length 5",
		},
		{
			name:    "stray qualifier",
			input:   "LOCUS       x   4 bp DNA\nFEATURES             Location/Qualifiers\n                     /gene=\"x\"\n//\n",
			message: "expected a feature key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := genbank.Read(strings.NewReader(tt.input), "bad.gb")
			var parseErr *errors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "genbank", parseErr.Format)
			assert.Equal(t, "bad.gb", parseErr.File)
			assert.Contains(t, parseErr.Message, tt.message)
		})
	}
}

func TestParser(t *testing.T) {
	p := genbank.New()
	assert.Equal(t, genbank.ParserName, p.Name())
	assert.Equal(t, sequences.FormatGenBank, p.Format())

	path := filepath.Join(t.TempDir(), "two.gbk")
	require.NoError(t, os.WriteFile(path, []byte(twoRecords), 0o644))

	records, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
