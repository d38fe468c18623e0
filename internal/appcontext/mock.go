package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/biorefs"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding field.
// If a field is unset, the method returns a default value.
type Mock struct {
	LoaderFunc   func() (biorefs.Loader, error)
	LoggerFunc   func() *zerolog.Logger
	Format       string
	Width        int
	ManifestPath string
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// Loader returns a loader using the mock function or a default loader.
func (m *Mock) Loader() (biorefs.Loader, error) {
	if m.LoaderFunc != nil {
		return m.LoaderFunc()
	}
	return biorefs.New()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string { return m.Format }

// FastaWidth returns Width.
func (m *Mock) FastaWidth() int { return m.Width }

// Manifest returns ManifestPath.
func (m *Mock) Manifest() string { return m.ManifestPath }

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
