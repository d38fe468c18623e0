// Package config provides helpers over the process-wide viper configuration.
package config

import (
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GetInt returns the integer value for key, falling back to an OS
// environment variable of the same name, then to def.
func GetInt(key string, def int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// GetStringDefault returns GetString(key), or def when it is empty.
func GetStringDefault(key, def string) string {
	if v := GetString(key); v != "" {
		return v
	}
	return def
}
