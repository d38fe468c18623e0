package sequences_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/biorefs/pkg/sequences"
)

func TestContent(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		c := sequences.Known([]byte("ACGT"))
		assert.True(t, c.IsKnown())
		assert.Equal(t, 4, c.Len())
		assert.Equal(t, []byte("ACGT"), c.Letters())
		assert.Equal(t, "ACGT", c.String())
	})

	t.Run("unknown", func(t *testing.T) {
		c := sequences.Unknown(10)
		assert.False(t, c.IsKnown())
		assert.Equal(t, 10, c.Len())
		assert.Nil(t, c.Letters())
		assert.Equal(t, "<unknown:10>", c.String())
	})

	t.Run("negative length clamps", func(t *testing.T) {
		assert.Equal(t, 0, sequences.Unknown(-3).Len())
	})

	t.Run("zero value is unknown", func(t *testing.T) {
		var c sequences.Content
		assert.False(t, c.IsKnown())
		assert.Equal(t, 0, c.Len())
	})

	t.Run("empty known", func(t *testing.T) {
		c := sequences.Known(nil)
		assert.True(t, c.IsKnown())
		assert.Equal(t, 0, c.Len())
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		format    sequences.Format
		name      string
		annotated bool
	}{
		{sequences.FormatFasta, "fasta", false},
		{sequences.FormatGenBank, "genbank", true},
		{sequences.FormatGFF, "gff", true},
		{sequences.FormatUnknown, "unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.format.String())
			assert.Equal(t, tt.annotated, tt.format.IsAnnotated())
			text, err := tt.format.MarshalText()
			assert.NoError(t, err)
			assert.Equal(t, tt.name, string(text))
		})
	}
}

func TestAnnotations(t *testing.T) {
	var a sequences.Annotations
	assert.True(t, a.IsEmpty())

	a.Set("organism", "E. coli")
	a.Set("topology", "linear")
	a.Set("topology", "circular")
	assert.False(t, a.IsEmpty())
	assert.Len(t, a.Meta, 2)

	v, ok := a.Get("topology")
	assert.True(t, ok)
	assert.Equal(t, "circular", v)

	_, ok = a.Get("missing")
	assert.False(t, ok)
}

func TestFeatureQualifier(t *testing.T) {
	f := sequences.Feature{
		Type:   "gene",
		Start:  1,
		End:    9,
		Strand: sequences.StrandReverse,
		Qualifiers: []sequences.Qualifier{
			{Key: "gene", Value: "thrL"},
			{Key: "note", Value: "first"},
			{Key: "note", Value: "second"},
		},
	}
	v, ok := f.Qualifier("note")
	assert.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, "-", f.Strand.String())
	assert.Equal(t, ".", sequences.StrandNone.String())
	assert.Equal(t, "+", sequences.StrandForward.String())
}

func TestRecordAttach(t *testing.T) {
	r := &sequences.Record{ID: "chr1", Content: sequences.Unknown(4)}
	assert.False(t, r.HasSequence())

	r.Attach(sequences.Known([]byte("ACGT")))
	assert.True(t, r.HasSequence())
	assert.Equal(t, 4, r.Len())
}

func TestReferenceFileString(t *testing.T) {
	rf := sequences.ReferenceFile{Path: "a.gb", Format: sequences.FormatGenBank}
	assert.Equal(t, "a.gb (genbank)", rf.String())
}
