package load

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/biorefs/internal/appcontext"
	"github.com/agentstation/biorefs/pkg/errors"
)

func execute(t *testing.T, app AppContext, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoadCommand(t *testing.T) {
	dir := t.TempDir()
	fa := filepath.Join(dir, "seqs.fa")
	require.NoError(t, os.WriteFile(fa, []byte(">s1\nACGTACGT\n"), 0o644))

	t.Run("configured width", func(t *testing.T) {
		out, err := execute(t, &appcontext.Mock{Format: "fasta", Width: 4}, fa)
		require.NoError(t, err)
		assert.Contains(t, out, ">s1\nACGT\nACGT")
	})

	t.Run("width flag wins", func(t *testing.T) {
		out, err := execute(t, &appcontext.Mock{Format: "fasta", Width: 4}, "--width", "8", fa)
		require.NoError(t, err)
		assert.Contains(t, out, ">s1\nACGTACGT")
	})

	t.Run("manifest from config", func(t *testing.T) {
		manifest := filepath.Join(dir, "refs.yaml")
		require.NoError(t, os.WriteFile(manifest, []byte("paths: [seqs.fa]\n"), 0o644))

		out, err := execute(t, &appcontext.Mock{Format: "json", ManifestPath: manifest})
		require.NoError(t, err)
		assert.Contains(t, out, `"id": "s1"`)
	})

	t.Run("save", func(t *testing.T) {
		saved := filepath.Join(dir, "out", "refs.yaml")
		_, err := execute(t, &appcontext.Mock{Format: "json"}, "--save", saved, fa)
		require.NoError(t, err)

		data, err := os.ReadFile(saved)
		require.NoError(t, err)
		assert.Contains(t, string(data), "sequence: ACGTACGT")
	})

	t.Run("save with unknown extension", func(t *testing.T) {
		_, err := execute(t, &appcontext.Mock{Format: "json"}, "--save", filepath.Join(dir, "out.txt"), fa)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("no input", func(t *testing.T) {
		_, err := execute(t, &appcontext.Mock{Format: "json"})
		assert.True(t, errors.IsEmptyResult(err))
	})
}
