package fullmeta

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/fullmeta/pkg/config"
	"github.com/agentstation/fullmeta/pkg/constants"
	"github.com/agentstation/fullmeta/pkg/errors"
)

// Option is a function that configures a Client.
type Option func(*options) error

type options struct {
	fs                 afero.Fs
	changedDir         string
	fullDir            string
	namespace          string
	metadataConfigPath string
	metadata           *config.Config
	manifest           string
	labelsFile         string // relative to fullDir unless absolute
	logger             *zerolog.Logger
}

func defaults() *options {
	return &options{
		fs:                 afero.NewOsFs(),
		changedDir:         constants.DefaultChangedDir,
		fullDir:            constants.DefaultFullDir,
		namespace:          constants.MetadataNamespace,
		metadataConfigPath: constants.DefaultMetadataConfig,
		manifest:           constants.DefaultManifest,
		labelsFile:         constants.DefaultLabelsFile,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// labelsPath resolves a labels file against the full metadata directory.
func (o *options) labelsPath(file string) string {
	if file == "" {
		file = o.labelsFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(o.fullDir, file)
}

// WithFS configures the filesystem every file is read from and written to.
func WithFS(fs afero.Fs) Option {
	return func(o *options) error {
		if fs == nil {
			return errors.NewValidationError("fs", nil, "filesystem cannot be nil")
		}
		o.fs = fs
		return nil
	}
}

// WithChangedDir configures the root of the changed metadata tree.
func WithChangedDir(dir string) Option {
	return func(o *options) error {
		o.changedDir = dir
		return nil
	}
}

// WithFullDir configures the root of the full metadata tree.
func WithFullDir(dir string) Option {
	return func(o *options) error {
		o.fullDir = dir
		return nil
	}
}

// WithNamespace configures the XML namespace every full file is bound to.
func WithNamespace(uri string) Option {
	return func(o *options) error {
		o.namespace = uri
		return nil
	}
}

// WithMetadataConfigPath configures the metadata type configuration file.
// It replaces a configuration set earlier with WithMetadataConfig.
func WithMetadataConfigPath(path string) Option {
	return func(o *options) error {
		o.metadataConfigPath = path
		o.metadata = nil
		return nil
	}
}

// WithMetadataConfig configures the metadata types directly; the
// configuration file is then not read.
func WithMetadataConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.NewValidationError("metadata", nil, "metadata configuration cannot be nil")
		}
		o.metadata = cfg
		return nil
	}
}

// WithManifest configures the destructive changes manifest.
func WithManifest(path string) Option {
	return func(o *options) error {
		o.manifest = path
		return nil
	}
}

// WithLabelsFile configures the full labels file. Relative paths are
// resolved against the full metadata directory.
func WithLabelsFile(path string) Option {
	return func(o *options) error {
		o.labelsFile = path
		return nil
	}
}

// WithLogger configures the logger used when the context carries none.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
