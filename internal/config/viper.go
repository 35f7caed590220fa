// Package config reads application settings from Viper with a direct
// environment fallback.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/fullmeta/pkg/constants"
)

// EnvName returns the environment variable consulted for key, e.g.
// "changed_dir" becomes FULLMETA_CHANGED_DIR.
func EnvName(key string) string {
	key = strings.NewReplacer(".", "_", "-", "_").Replace(key)
	return constants.EnvPrefix + "_" + strings.ToUpper(key)
}

// GetString is a helper to get string values from v.
// It checks both the prefixed OS environment variable and v.
func GetString(v *viper.Viper, key string) string {
	viperValue := v.GetString(key)
	if viperValue != "" {
		return viperValue
	}
	return os.Getenv(EnvName(key))
}

// GetBool returns the boolean value for key from v or the environment.
// Unparsable environment values read as false.
func GetBool(v *viper.Viper, key string) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	b, err := strconv.ParseBool(os.Getenv(EnvName(key)))
	return err == nil && b
}

// StringOr returns GetString or def when the value is empty.
func StringOr(v *viper.Viper, key, def string) string {
	if value := GetString(v, key); value != "" {
		return value
	}
	return def
}
