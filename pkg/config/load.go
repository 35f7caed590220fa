package config

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/agentstation/fullmeta/pkg/errors"
)

// Load reads, decodes and validates the configuration at path. Every
// failure is a ConfigError.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewConfigError("metadata config", "could not find "+path, err)
		}
		return nil, errors.NewConfigError("metadata config", "could not read "+path, errors.WrapIO("read", path, err))
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.NewConfigError("metadata config", "could not parse "+path, errors.WrapParse(format(path), path, err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes JSON or YAML configuration data without validating it.
// Unknown keys inside a type are rejected.
func Parse(data []byte) (*Config, error) {
	types := map[string]TypeConfig{}
	if err := yaml.UnmarshalWithOptions(data, &types, yaml.Strict()); err != nil {
		return nil, err
	}
	return &Config{Types: types}, nil
}

// Marshal encodes the configuration as YAML, each type preceded by a
// comment naming its glob.
func Marshal(c *Config) ([]byte, error) {
	comments := yaml.CommentMap{}
	for _, name := range c.Names() {
		comments["$."+name] = []*yaml.Comment{
			yaml.HeadComment(" " + name + " files matching " + c.Types[name].FileGlob),
		}
	}

	return yaml.MarshalWithOptions(c.Types,
		yaml.Indent(2),
		yaml.IndentSequence(false),
		yaml.WithComment(comments),
	)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
