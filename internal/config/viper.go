// Package config provides Viper-backed configuration helpers for the
// qbank CLI. Library code never reads ambient configuration; these
// helpers exist so commands can resolve defaults before calling into the
// core with explicit arguments.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	// KeyDefaultStrategy selects the merge strategy used when the
	// --strategy flag is not given.
	KeyDefaultStrategy = "merge.strategy"

	// KeyDefaultRenumber enables the renumbering pass by default.
	KeyDefaultRenumber = "merge.renumber"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// DefaultStrategy returns the configured default merge strategy name,
// falling back to skip-duplicates.
func DefaultStrategy() string {
	if s := GetString(KeyDefaultStrategy); s != "" {
		return s
	}
	return "skip-duplicates"
}

// DefaultRenumber returns whether merges renumber by default.
func DefaultRenumber() bool {
	return viper.GetBool(KeyDefaultRenumber)
}
