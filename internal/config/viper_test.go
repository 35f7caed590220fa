package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestEnvName(t *testing.T) {
	assert.Equal(t, "FULLMETA_CHANGED_DIR", EnvName("changed_dir"))
	assert.Equal(t, "FULLMETA_LOG_LEVEL", EnvName("log-level"))
}

func TestGetString(t *testing.T) {
	t.Run("viper value wins", func(t *testing.T) {
		t.Setenv("FULLMETA_FULL_DIR", "from-env")
		v := viper.New()
		v.Set("full_dir", "from-viper")
		assert.Equal(t, "from-viper", GetString(v, "full_dir"))
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("FULLMETA_FULL_DIR", "from-env")
		assert.Equal(t, "from-env", GetString(viper.New(), "full_dir"))
	})

	t.Run("default", func(t *testing.T) {
		assert.Equal(t, "full-metadata", StringOr(viper.New(), "unset_key", "full-metadata"))
	})
}

func TestGetBool(t *testing.T) {
	t.Setenv("FULLMETA_DRY_RUN", "true")
	assert.True(t, GetBool(viper.New(), "dry_run"))

	v := viper.New()
	v.Set("dry_run", false)
	assert.False(t, GetBool(v, "dry_run"))

	t.Setenv("FULLMETA_REFORMAT", "nope")
	assert.False(t, GetBool(viper.New(), "reformat"))
}
