// Package config loads client configuration. Settings come from, in order of
// precedence: environment variables (DEVHIVE_*), an optional YAML file at
// ~/.devhive/config.yaml, and built-in defaults. The backend address is a
// process-level setting; it is never overridden per request.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds user preferences for the devhive client.
type Config struct {
	APIURL  string `mapstructure:"api_url"` // backend base address
	Theme   string `mapstructure:"theme"`   // "light", "dark" or "auto"
	Verbose bool   `mapstructure:"verbose"` // debug-level logging
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL: "http://localhost:5000",
		Theme:  "auto",
	}
}

// Dir returns the directory the config file is read from.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".devhive"), nil
}

// Load reads configuration from the environment and the optional config
// file. A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("verbose", def.Verbose)

	v.SetEnvPrefix("DEVHIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir, err := Dir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return def, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
