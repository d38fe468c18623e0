package classify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/biorefs/internal/appcontext"
	"github.com/agentstation/biorefs/pkg/errors"
)

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr errors.Kind
	}{
		{
			name: "mixed formats",
			args: []string{"a.fna", "b.genbank", "c.GFF"},
			want: []string{`"format": "fasta"`, `"format": "genbank"`, `"format": "gff"`},
		},
		{
			name:    "format filter",
			args:    []string{"--format", "gb", "a.fna", "b.genbank", "c.GFF"},
			want:    []string{`"format": "genbank"`, "b.genbank"},
			notWant: []string{"a.fna", "c.GFF"},
		},
		{
			name:    "unknown format filter",
			args:    []string{"--format", "bam", "a.fna"},
			wantErr: errors.KindInvalidArgument,
		},
		{
			name:    "filter still validates every path",
			args:    []string{"--format", "fasta", "a.fa", "b.bam"},
			wantErr: errors.KindUnrecognizedFormat,
		},
		{
			name:    "unknown extension",
			args:    []string{"a.fa", "b.bam"},
			wantErr: errors.KindUnrecognizedFormat,
		},
		{
			name:    "duplicate path",
			args:    []string{"a.fa", "a.fa"},
			wantErr: errors.KindDuplicatePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := NewCommand(&appcontext.Mock{Format: "json"})
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr != errors.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out.String(), w)
			}
		})
	}
}
