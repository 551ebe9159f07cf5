// Package config loads the i18n.toml project configuration that tells the
// checker where the fluent assets live and which language is authoritative
// for validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// FileName is the conventional configuration file name, looked up in the
// root of the project being checked.
const FileName = "i18n.toml"

// Config is the parsed i18n.toml.
type Config struct {
	// FallbackLanguage is the language whose resources are authoritative
	// for validation. Required.
	FallbackLanguage string `toml:"fallback_language"`
	// Fluent configures the fluent localization system. Required: a
	// project without a [fluent] section has nothing to check.
	Fluent *Fluent `toml:"fluent"`

	// tag is the parsed FallbackLanguage.
	tag language.Tag
	// dir is the directory the config file was loaded from.
	dir string
}

// Fluent is the `[fluent]` section.
type Fluent struct {
	// AssetsDir is the localization asset root, relative to the config
	// file. Defaults to "i18n".
	AssetsDir string `toml:"assets_dir"`
	// Domain names the project's resource domain. When empty the driver
	// derives it from the project directory name.
	Domain string `toml:"domain"`
}

// Load reads and validates an i18n.toml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.FallbackLanguage == "" {
		return nil, fmt.Errorf("%s: fallback_language is required", path)
	}
	cfg.tag, err = language.Parse(cfg.FallbackLanguage)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid fallback_language %q: %w", path, cfg.FallbackLanguage, err)
	}

	if cfg.Fluent == nil {
		return nil, fmt.Errorf("%s: missing [fluent] section", path)
	}
	if cfg.Fluent.AssetsDir == "" {
		cfg.Fluent.AssetsDir = "i18n"
	}

	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

// FallbackTag returns the parsed fallback language tag.
func (c *Config) FallbackTag() language.Tag {
	return c.tag
}

// AssetsPath returns the absolute asset directory, resolved against the
// config file's location.
func (c *Config) AssetsPath() string {
	if filepath.IsAbs(c.Fluent.AssetsDir) {
		return c.Fluent.AssetsDir
	}
	return filepath.Join(c.dir, c.Fluent.AssetsDir)
}
