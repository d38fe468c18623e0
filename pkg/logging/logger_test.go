package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/biorefs/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(originalLevel)
	})

	buf := &bytes.Buffer{}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")
	logging.Err(assert.AnError).Msg("with error")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, assert.AnError.Error())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)
	logger.Info().Msg("json test")

	assert.Contains(t, buf.String(), "json test")
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestWithCreatesChildContext(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	var buf bytes.Buffer
	logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))

	child := logging.With().Str("component", "loader").Logger()
	child.Info().Msg("with context")

	assert.Contains(t, buf.String(), `"component":"loader"`)
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithPath(ctx, "refs/chr1.gb")
	ctx = logging.WithFormat(ctx, "genbank")
	ctx = logging.WithRecord(ctx, "chr1")
	ctx = logging.WithOperation(ctx, "reconcile")

	logging.FromContext(ctx).Info().Msg("attached sequence")

	testLogger.AssertContains(t, `"path":"refs/chr1.gb"`)
	testLogger.AssertContains(t, `"format":"genbank"`)
	testLogger.AssertContains(t, `"record_id":"chr1"`)
	testLogger.AssertContains(t, `"operation":"reconcile"`)
	testLogger.AssertContains(t, "attached sequence")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
}

func TestWithFieldTypes(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	ctx = logging.WithField(ctx, "records", 3)
	ctx = logging.WithField(ctx, "gzipped", true)
	ctx = logging.WithField(ctx, "paths", []string{"a.fa", "b.gb"})
	ctx = logging.WithField(ctx, "cause", assert.AnError)

	logging.FromContext(ctx).Info().Msg("fields")

	testLogger.AssertContains(t, `"records":3`)
	testLogger.AssertContains(t, `"gzipped":true`)
	testLogger.AssertContains(t, `"paths":["a.fa","b.gb"]`)
	testLogger.AssertContains(t, `"cause":"`+assert.AnError.Error()+`"`)
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Error().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertContains(t, "message 2")
	tl.AssertNotContains(t, "message 3")
	assert.Equal(t, 2, tl.Count())

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
	assert.Empty(t, tl.Lines())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Info().Str("path", "a.fasta").Msg("captured")
	tl.AssertContains(t, "captured")
	tl.AssertContains(t, "a.fasta")
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNopLogger()
	logger.Info().Msg("discarded")
	assert.NotNil(t, logger)
}
