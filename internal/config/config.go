// Package config loads the demo binary's YAML configuration: a
// spf13/viper reader unmarshalling into a mapstructure-tagged struct.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the knobs the buffer pool and its backing storage
// manager need. The BPM itself takes no CLI flags or environment
// variables at its own layer — these fields exist for the process
// that wires one up.
type Config struct {
	Storage struct {
		Workdir string `mapstructure:"workdir"`
		Base    string `mapstructure:"base"`
	} `mapstructure:"storage"`
	BufferPool struct {
		PoolSize int `mapstructure:"pool_size"`
	} `mapstructure:"buffer_pool"`
	Log struct {
		Debug bool `mapstructure:"debug"`
	} `mapstructure:"log"`
}

// Default returns a Config usable without any file on disk.
func Default() *Config {
	var c Config
	c.Storage.Workdir = "./data"
	c.Storage.Base = "pages"
	c.BufferPool.PoolSize = 64
	return &c
}

// Load reads path (YAML) into a Config, falling back to Default()
// values for any field the file leaves unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("storage.workdir", cfg.Storage.Workdir)
	v.SetDefault("storage.base", cfg.Storage.Base)
	v.SetDefault("buffer_pool.pool_size", cfg.BufferPool.PoolSize)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
