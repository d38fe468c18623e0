// Package app provides the application context and dependency management
// for the biorefs CLI.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/biorefs"
	"github.com/agentstation/biorefs/internal/appcontext"
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/logging"
)

// App represents the biorefs application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// loaderOptions are applied to every Loader the app creates
	loaderOptions []biorefs.Option
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// FastaWidth returns the residues per line for FASTA output.
func (a *App) FastaWidth() int {
	return a.config.FastaWidth
}

// Manifest returns the configured manifest path.
func (a *App) Manifest() string {
	return a.config.Manifest
}

// Loader creates a reference loader. Each call returns a fresh Loader so
// hooks registered by one command never leak into another.
func (a *App) Loader() (biorefs.Loader, error) {
	l, err := biorefs.New(a.loaderOptions...)
	if err != nil {
		return nil, err
	}
	l.OnFileParsed(a.logParsedFile)
	return l, nil
}

// Shutdown releases application resources.
func (a *App) Shutdown(ctx context.Context) error {
	logging.FromContext(ctx).Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLoaderOptions adds options applied to every Loader.
func WithLoaderOptions(opts ...biorefs.Option) Option {
	return func(a *App) error {
		a.loaderOptions = append(a.loaderOptions, opts...)
		return nil
	}
}
