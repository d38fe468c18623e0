package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/logging"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(&Config{FastaWidth: 60, LogFormat: "json", LogOutput: "stderr"}),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return app
}

// run executes the root command and returns stdout and stderr.
func run(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestApp_WithNilConfig(t *testing.T) {
	_, err := New("1.0.0", "", "", "", WithConfig(nil))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestApp_Loader(t *testing.T) {
	app := newTestApp(t)

	l1, err := app.Loader()
	require.NoError(t, err)
	l2, err := app.Loader()
	require.NoError(t, err)
	assert.NotSame(t, l1, l2)
}

func TestVersionCommand(t *testing.T) {
	app := newTestApp(t)

	// cmd.Printf writes to the configured output writer
	stdout, _, err := run(t, app, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "biorefs 1.0.0")
	assert.Contains(t, stdout, "abc123")
}

func TestLoadCommand(t *testing.T) {
	dir := t.TempDir()
	gb := filepath.Join(dir, "a.gb")
	fa := filepath.Join(dir, "a.fasta")
	require.NoError(t, os.WriteFile(gb, []byte(`LOCUS       chr1                       8 bp    DNA     linear   UNA 01-JAN-2020
ACCESSION   chr1
FEATURES             Location/Qualifiers
     gene            1..8
//
`), 0o644))
	require.NoError(t, os.WriteFile(fa, []byte(">chr1\nACGTACGT\n>extra\nGG\n"), 0o644))

	t.Run("fasta output", func(t *testing.T) {
		app := newTestApp(t)
		stdout, _, err := run(t, app, "load", "-o", "fasta", "--width", "4", gb, fa)
		require.NoError(t, err)
		assert.Contains(t, stdout, ">chr1\nACGT\nACGT\n")
		assert.Contains(t, stdout, ">extra\nGG")
	})

	t.Run("json output", func(t *testing.T) {
		app := newTestApp(t)
		stdout, _, err := run(t, app, "load", "-o", "json", gb, fa)
		require.NoError(t, err)
		assert.Contains(t, stdout, `"id": "chr1"`)
		assert.Contains(t, stdout, `"sequence": "ACGTACGT"`)
	})

	t.Run("manifest", func(t *testing.T) {
		manifest := filepath.Join(dir, "refs.yaml")
		require.NoError(t, os.WriteFile(manifest, []byte("paths:\n  - a.gb\n  - a.fasta\n"), 0o644))

		app := newTestApp(t)
		stdout, _, err := run(t, app, "load", "--manifest", manifest, "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, stdout, "id: chr1")
		assert.Contains(t, stdout, "id: extra")
	})

	t.Run("duplicate path", func(t *testing.T) {
		app := newTestApp(t)
		_, _, err := run(t, app, "load", "-o", "json", fa, fa)
		require.Error(t, err)
		assert.True(t, errors.IsDuplicatePath(err))
	})

	t.Run("invalid output format", func(t *testing.T) {
		app := newTestApp(t)
		_, _, err := run(t, app, "load", "-o", "xml", fa)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestClassifyCommand(t *testing.T) {
	app := newTestApp(t)

	stdout, _, err := run(t, app, "classify", "-o", "json", "x.fa", "y.GBK")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"format": "fasta"`)
	assert.Contains(t, stdout, `"format": "genbank"`)

	_, _, err = run(t, app, "classify", "notes.txt")
	require.Error(t, err)
	assert.Equal(t, errors.KindUnrecognizedFormat, errors.KindOf(err))
}
