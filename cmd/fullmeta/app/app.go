// Package app provides the application context and dependency management
// for the fullmeta CLI. It centralizes configuration, logging, and client
// construction so that commands only depend on the application interface.
package app

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/fullmeta"
	"github.com/agentstation/fullmeta/cmd/application"
	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/logging"
)

// App represents the fullmeta application with all its dependencies.
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

	// Filesystem every client reads and writes
	fs afero.Fs
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// Option configures an App.
type Option func(*App) error

// WithFS configures the filesystem used by clients, for tests.
func WithFS(fs afero.Fs) Option {
	return func(a *App) error {
		if fs == nil {
			return errors.NewValidationError("fs", nil, "filesystem cannot be nil")
		}
		a.fs = fs
		return nil
	}
}

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config cannot be nil")
		}
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
		return nil
	}
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment and the
// default config file; functional options are applied afterwards.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
	}

	config, err := LoadConfig("")
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
	return a.config.Format
}

// Client creates a fullmeta client from the configuration. opts are
// applied after the configured options.
func (a *App) Client(opts ...fullmeta.Option) (fullmeta.Client, error) {
	client, err := fullmeta.New(append(a.clientOptions(), opts...)...)
	if err != nil {
		if errors.IsConfigError(err) || errors.IsValidationError(err) {
			return nil, err
		}
		return nil, errors.WrapResource("create", "client", "", err)
	}
	return client, nil
}

// clientOptions translates the configuration into client options.
func (a *App) clientOptions() []fullmeta.Option {
	opts := []fullmeta.Option{
		fullmeta.WithFS(a.fs),
		fullmeta.WithLogger(a.logger),
	}
	if a.config.ChangedDir != "" {
		opts = append(opts, fullmeta.WithChangedDir(a.config.ChangedDir))
	}
	if a.config.FullDir != "" {
		opts = append(opts, fullmeta.WithFullDir(a.config.FullDir))
	}
	if a.config.MetadataConfig != "" {
		opts = append(opts, fullmeta.WithMetadataConfigPath(a.config.MetadataConfig))
	}
	if a.config.Namespace != "" {
		opts = append(opts, fullmeta.WithNamespace(a.config.Namespace))
	}
	if a.config.Manifest != "" {
		opts = append(opts, fullmeta.WithManifest(a.config.Manifest))
	}
	if a.config.LabelsFile != "" {
		opts = append(opts, fullmeta.WithLabelsFile(a.config.LabelsFile))
	}
	return opts
}

// applyLogger makes the app logger the package default so that library
// code logging without a context logger honors the CLI flags.
func (a *App) applyLogger() {
	logging.SetDefault(*a.logger)
}
