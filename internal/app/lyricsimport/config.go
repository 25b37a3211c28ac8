package lyricsimport

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds batch import settings.
type Config struct {
	InputDir string `yaml:"input_dir" env:"LYRICS_IMPORT_DIR"     env-default:"./lyrics"`
	DryRun   bool   `yaml:"dry_run"   env:"LYRICS_IMPORT_DRY_RUN"`
	FailFast bool   `yaml:"fail_fast" env:"LYRICS_IMPORT_FAIL_FAST"`
}

// LoadConfig reads config from a YAML file or, with an empty path, from the environment.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("lyrics-import config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("lyrics-import config: %w", err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("lyrics-import config: read env: %w", err)
	}
	return &cfg, nil
}
