// Package config loads and persists freshprobe configuration.
//
// Configuration is read by Viper from freshprobe.toml (working directory or
// ~/.freshprobe/), overridable through FRESHPROBE_* environment variables.
package config

import "github.com/freshprobe/freshprobe/errors"

// Config represents the core freshprobe configuration
type Config struct {
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Pools     PoolsConfig     `mapstructure:"pools"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Random    RandomConfig    `mapstructure:"random"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
}

// ArtifactsConfig configures where sandbox artifacts live
type ArtifactsConfig struct {
	Dir string `mapstructure:"dir"` // base directory substituted for {{artifacts}}
}

// PoolsConfig configures entity pool sources
type PoolsConfig struct {
	File string `mapstructure:"file"` // optional YAML file with named pools; empty = built-ins only
}

// EngineConfig configures template resolution limits
type EngineConfig struct {
	MaxPasses int `mapstructure:"max_passes"` // evaluation passes before giving up on nested calls (default: 10)
}

// RandomConfig configures the random source for variable binding
type RandomConfig struct {
	Seed int64 `mapstructure:"seed"` // 0 = unseeded (fresh randomness per session)
}

// DatabaseConfig configures SQLite defaults for sqlite_* functions
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // fallback db path when a call omits one
}

// LogConfig configures log output
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Engine.MaxPasses <= 0 {
		return errors.Newf("engine.max_passes must be > 0, got %d", c.Engine.MaxPasses)
	}
	if c.Random.Seed < 0 {
		return errors.Newf("random.seed must be >= 0, got %d", c.Random.Seed)
	}
	return nil
}
