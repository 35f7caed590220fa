package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/fullmeta/internal/config"
	"github.com/agentstation/fullmeta/pkg/constants"
	"github.com/agentstation/fullmeta/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Reconciliation settings
	ChangedDir     string
	FullDir        string
	MetadataConfig string
	Namespace      string
	Manifest       string
	LabelsFile     string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (FULLMETA_*)
// 3. .env and .env.local files
// 4. Config file (.fullmeta.yaml in the working or home directory)
// 5. Defaults
//
// An explicit configFile that cannot be read is an error; a missing
// default config file is not.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", "could not read "+configFile, err)
		}
	}

	return &Config{
		ConfigFile: v.ConfigFileUsed(),
		Format:     config.GetString(v, "format"),
		NoColor:    config.GetBool(v, "no_color"),

		ChangedDir:     config.GetString(v, "changed_dir"),
		FullDir:        config.GetString(v, "full_dir"),
		MetadataConfig: config.GetString(v, "metadata_config"),
		Namespace:      config.GetString(v, "namespace"),
		Manifest:       config.GetString(v, "manifest"),
		LabelsFile:     config.GetString(v, "labels_file"),

		LogLevel:  config.GetString(v, "log_level"),
		LogFormat: config.StringOr(v, "log_format", "auto"),
		LogOutput: config.StringOr(v, "log_output", "stderr"),
	}, nil
}

// setDefaults registers the built-in value of every setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("changed_dir", constants.DefaultChangedDir)
	v.SetDefault("full_dir", constants.DefaultFullDir)
	v.SetDefault("metadata_config", constants.DefaultMetadataConfig)
	v.SetDefault("namespace", constants.MetadataNamespace)
	v.SetDefault("manifest", constants.DefaultManifest)
	v.SetDefault("labels_file", constants.DefaultLabelsFile)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overwritten, and
// .env takes precedence over .env.local because it is loaded first.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
