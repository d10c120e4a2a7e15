// Package config loads tool configuration from a .tempo file or TEMPO_*
// environment variables.
package config

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved tool configuration.
type Config struct {
	// Server is the base URL of the planning service.
	Server string
	// CachePath is the snapshot cache directory.
	CachePath string
}

// Load reads the .tempo config (yaml implicit) from TEMPO_CONFIG_PATH or the
// working directory, with TEMPO_* env vars taking precedence.
func Load() (*Config, error) {
	viper.SetDefault("server", "http://localhost:8080")
	viper.SetDefault("cache", "~/.tempo.db")
	viper.SetConfigName(".tempo")
	viper.SetEnvPrefix("TEMPO")
	viper.AutomaticEnv()

	if override := os.Getenv("TEMPO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cachePath, err := homedir.Expand(viper.GetString("cache"))
	if err != nil {
		return nil, fmt.Errorf("config: expand cache path: %w", err)
	}

	return &Config{
		Server:    viper.GetString("server"),
		CachePath: cachePath,
	}, nil
}
