package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fullmeta/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		require.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.False(t, cfg.AddCaller)
		assert.Equal(t, "stderr", cfg.Output)
	})

	t.Run("NewLoggerFromConfig writes json to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sync.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
			Fields: map[string]any{"component": "sync"},
		})
		logger.Info().Msg("merged file")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.Contains(t, output, "merged file")
		assert.Contains(t, output, `"component":"sync"`)
		assert.Contains(t, output, `"level":"info"`)
	})

	t.Run("Configure filters below the configured level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "warn.log")

		logging.Configure(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: path,
		})

		logging.Debug().Msg("debug message")
		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")
		logging.Error().Msg("error message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("ConfigureFromEnv reads FULLMETA_LOG variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "env.log")
		t.Setenv("FULLMETA_LOG_LEVEL", "error")
		t.Setenv("FULLMETA_LOG_FORMAT", "json")
		t.Setenv("FULLMETA_LOG_OUTPUT", path)
		t.Setenv("FULLMETA_LOG_FIELDS", "pipeline=nightly, stage = merge")

		logging.ConfigureFromEnv()
		logging.Warn().Msg("hidden")
		logging.Error().Msg("shown")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "shown")
		assert.Contains(t, output, `"pipeline":"nightly"`)
		assert.Contains(t, output, `"stage":"merge"`)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logging.NewLoggerFromConfig(&logging.Config{Level: "chatty", Output: "discard"})
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("warning alias", func(t *testing.T) {
		logging.NewLoggerFromConfig(&logging.Config{Level: "warning", Output: "discard"})
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})
}
