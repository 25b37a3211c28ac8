package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// searchPaths are tried in order when no config path is given.
var searchPaths = []string{"./kashi.yaml", "./config.yaml"}

// Load reads the file named by CONFIG_PATH, or the first of ./kashi.yaml and
// ./config.yaml that exists, then applies the environment on top.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom reads configuration from path and the environment. Priority is
// ENV > file > env-default tags. An empty path searches the working
// directory and falls back to ENV only; a non-empty path must exist.
// The file format follows the extension (yaml, json, toml, env).
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = firstExisting(searchPaths)
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		} else if !errors.Is(err, fs.ErrNotExist) {
			// Unreadable candidates are reported by ReadConfig.
			return p
		}
	}
	return ""
}

// normalize canonicalises free-form values before validation.
func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Metrics.Path = strings.TrimSpace(c.Metrics.Path)
}
