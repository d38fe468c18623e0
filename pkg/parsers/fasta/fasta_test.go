package fasta_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/parsers/fasta"
	"github.com/agentstation/biorefs/pkg/sequences"
)

func TestRead(t *testing.T) {
	input := ">chr1 first chromosome\nACGT\nAC\n>chr2\nGGGG\n"

	records, err := fasta.Read(strings.NewReader(input), "mem.fa")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "chr1", records[0].ID)
	assert.Equal(t, "first chromosome", records[0].Description)
	assert.True(t, records[0].Content.IsKnown())
	assert.Equal(t, "ACGTAC", string(records[0].Content.Letters()))

	assert.Equal(t, "chr2", records[1].ID)
	assert.Equal(t, 4, records[1].Len())
	assert.True(t, records[1].Annotations.IsEmpty())
}

func TestReadEmpty(t *testing.T) {
	records, err := fasta.Read(strings.NewReader(""), "empty.fa")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadWithoutHeader(t *testing.T) {
	// residues before any '>' line are malformed, not empty
	_, err := fasta.Read(strings.NewReader("ACGT\nACGT\n"), "bare.fa")
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "bare.fa", parseErr.File)
}

func TestParser(t *testing.T) {
	p := fasta.New()
	assert.Equal(t, fasta.ParserName, p.Name())
	assert.Equal(t, sequences.FormatFasta, p.Format())

	path := filepath.Join(t.TempDir(), "a.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">chr1\nACGT\n"), 0o644))

	records, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ACGT", records[0].Content.String())
}

func TestParserMissingFile(t *testing.T) {
	_, err := fasta.New().Parse(context.Background(), filepath.Join(t.TempDir(), "missing.fa"))
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestWrite(t *testing.T) {
	records := []*sequences.Record{
		{ID: "chr1", Description: "wrapped", Content: sequences.Known([]byte("ACGTACGTAC"))},
		{ID: "chr2", Content: sequences.Known([]byte("GG"))},
	}

	var buf bytes.Buffer
	require.NoError(t, fasta.Write(&buf, records, 4))

	// round trip through the reader
	back, err := fasta.Read(&buf, "round.fa")
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "chr1", back[0].ID)
	assert.Equal(t, "wrapped", back[0].Description)
	assert.Equal(t, "ACGTACGTAC", back[0].Content.String())
	assert.Equal(t, "GG", back[1].Content.String())
}

func TestWriteUnknownContent(t *testing.T) {
	var buf bytes.Buffer
	err := fasta.Write(&buf, []*sequences.Record{{ID: "chr1", Content: sequences.Unknown(5)}}, 60)
	assert.True(t, errors.IsValidationError(err))
}
