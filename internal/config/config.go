// Package config loads the optional checkzip configuration file.
//
// The file is TOML. Every key is optional and unknown keys are rejected:
//
//	extensions   = [".zip", ".jar"]
//	exclude      = ["node_modules", "backup/old"]
//	workers      = 8
//	headers_only = false
//	log          = "logs/"
//
// Command-line flags override file values, which override Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dendrascience/checkzip/scan"
)

// Config holds the settings of a check run that can come from a file.
type Config struct {
	Extensions  []string `toml:"extensions"`
	Exclude     []string `toml:"exclude"`
	Workers     int      `toml:"workers"` // 0 means one per CPU
	HeadersOnly bool     `toml:"headers_only"`
	Log         string   `toml:"log"` // empty means no log file
}

// file mirrors Config with pointers so absent keys can be told apart from
// zero values.
type file struct {
	Extensions  *[]string `toml:"extensions"`
	Exclude     *[]string `toml:"exclude"`
	Workers     *int      `toml:"workers"`
	HeadersOnly *bool     `toml:"headers_only"`
	Log         *string   `toml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Extensions: slices.Clone(scan.DefaultExtensions),
	}
}

// Load reads path and applies its keys over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var raw file
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for _, e := range strict.Errors {
				row, _ := e.Position()
				keys = append(keys, fmt.Sprintf("%s (line %d)", strings.Join(e.Key(), "."), row))
			}
			return cfg, fmt.Errorf("parse config %s: unknown keys %s: %w", path, strings.Join(keys, ", "), err)
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if raw.Extensions != nil {
		cfg.Extensions = *raw.Extensions
	}
	if raw.Exclude != nil {
		cfg.Exclude = *raw.Exclude
	}
	if raw.Workers != nil {
		cfg.Workers = *raw.Workers
	}
	if raw.HeadersOnly != nil {
		cfg.HeadersOnly = *raw.HeadersOnly
	}
	if raw.Log != nil {
		cfg.Log = *raw.Log
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be used for a run.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}
	for _, e := range c.Extensions {
		if strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(e), ".")) == "" {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, e)
		}
	}
	return nil
}
