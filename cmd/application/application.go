// Package application provides the application interface for fullmeta commands.
//
// Commands accept an Application rather than the concrete app type, so they
// can be tested with a Mock:
//
//	mock := &application.Mock{
//	    ClientFunc: func(opts ...fullmeta.Option) (fullmeta.Client, error) {
//	        return fullmeta.New(append(opts, fullmeta.WithFS(afero.NewMemMapFs()))...)
//	    },
//	}
//	cmd := sync.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/fullmeta"
)

// Application provides the application interface that commands need.
// The App struct from cmd/fullmeta/app implements this interface.
type Application interface {
	// Client returns a fullmeta client configured from flags, environment
	// and config file. opts are applied last and override that configuration.
	Client(opts ...fullmeta.Option) (fullmeta.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
