package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Artifacts defaults
	v.SetDefault("artifacts.dir", "sandbox_artifacts")

	// Pool defaults: built-in pools only unless a file is configured
	v.SetDefault("pools.file", "")

	// Engine defaults
	v.SetDefault("engine.max_passes", 10) // nesting deeper than this is pathological input

	// Randomness defaults: unseeded in production
	v.SetDefault("random.seed", 0)

	// Database defaults
	v.SetDefault("database.path", "freshprobe.db")

	// Logging defaults
	v.SetDefault("log.json", false)
}
