package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/sequences"
)

func testRecords() []*sequences.Record {
	return []*sequences.Record{
		{
			ID:          "chr1",
			Description: "chromosome one",
			Content:     sequences.Known([]byte("ACGTACGT")),
			Annotations: sequences.Annotations{Features: []sequences.Feature{{Type: "gene", Location: "1..8"}}},
			Source:      sequences.ReferenceFile{Path: "/data/a.gb", Format: sequences.FormatGenBank},
		},
		{
			ID:      "extra",
			Content: sequences.Known([]byte("GG")),
			Source:  sequences.ReferenceFile{Path: "/data/a.fasta", Format: sequences.FormatFasta},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "JSON", want: FormatJSON},
		{in: "fasta", want: FormatFasta},
		{in: "markdown", want: FormatMarkdown},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRecords(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatRecords(&buf, testRecords(), FormatTable, 0))
		out := buf.String()
		assert.Contains(t, out, "chr1")
		assert.Contains(t, out, "a.gb (genbank)")
		assert.NotContains(t, out, "ACGTACGT", "sequences only show in wide output")
	})

	t.Run("wide", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatRecords(&buf, testRecords(), FormatWide, 0))
		assert.Contains(t, buf.String(), "ACGTACGT")
		assert.Contains(t, buf.String(), "chromosome one")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatRecords(&buf, testRecords(), FormatMarkdown, 0))
		assert.Contains(t, buf.String(), "chr1")
		assert.Contains(t, buf.String(), "|")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatRecords(&buf, testRecords(), FormatJSON, 0))
		assert.Contains(t, buf.String(), `"sequence": "ACGTACGT"`)
	})

	t.Run("fasta", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatRecords(&buf, testRecords(), FormatFasta, 4))
		assert.Contains(t, buf.String(), ">chr1 chromosome one\nACGT\nACGT")
	})

	t.Run("fasta rejects unknown content", func(t *testing.T) {
		var buf bytes.Buffer
		records := []*sequences.Record{{ID: "x", Content: sequences.Unknown(3)}}
		assert.Error(t, FormatRecords(&buf, records, FormatFasta, 0))
	})
}

func TestFastaFormatterRejectsOtherData(t *testing.T) {
	var buf bytes.Buffer
	err := (&FastaFormatter{}).Format(&buf, Data{})
	assert.True(t, errors.IsValidationError(err))
}

func TestFormatFiles(t *testing.T) {
	files := []sequences.ReferenceFile{
		{Path: "a.fa", Format: sequences.FormatFasta},
		{Path: "b.gff", Format: sequences.FormatGFF},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatFiles(&buf, files, FormatFasta))
	assert.Contains(t, buf.String(), "b.gff")
	assert.Contains(t, buf.String(), "gff")

	buf.Reset()
	require.NoError(t, FormatFiles(&buf, files, FormatYAML))
	assert.Contains(t, buf.String(), "format: fasta")
}
