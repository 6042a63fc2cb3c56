// Package config loads the optional trieviz configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/trieviz/config.toml
// (~/.config/trieviz/config.toml when XDG_CONFIG_HOME is unset). Every
// field is optional; command-line flags override file values.
//
//	keywords_file = "words.txt"
//	formats = ["dot", "svg"]
//	order = "preorder"
//	mark_keywords = true
//
//	[cache]
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[serve]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/export"
	"github.com/matzehuels/trieviz/pkg/keywords"
	"github.com/matzehuels/trieviz/pkg/render"
)

const appName = "trieviz"

// Config is the decoded configuration file.
type Config struct {
	// Keywords are used when no keywords are given on the command line.
	Keywords []string `toml:"keywords,omitempty"`

	// KeywordsFile is read instead of Keywords when set. Relative paths are
	// resolved against the config file's directory.
	KeywordsFile string `toml:"keywords_file,omitempty"`

	Formats      []string `toml:"formats,omitempty"`
	Order        string   `toml:"order,omitempty"`
	MarkKeywords bool     `toml:"mark_keywords,omitempty"`
	Normalize    string   `toml:"normalize,omitempty"`

	Cache   CacheConfig   `toml:"cache"`
	Serve   ServeConfig   `toml:"serve"`
	Convert ConvertConfig `toml:"convert"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled,omitempty"`
	Dir      string `toml:"dir,omitempty"`

	// RedisAddr switches the cache to Redis when set.
	RedisAddr     string   `toml:"redis_addr,omitempty"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db,omitempty"`
	Prefix        string   `toml:"prefix,omitempty"`
	TTL           Duration `toml:"ttl,omitempty"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr            string   `toml:"addr,omitempty"`
	ReadTimeout     Duration `toml:"read_timeout,omitempty"`
	WriteTimeout    Duration `toml:"write_timeout,omitempty"`
	ShutdownTimeout Duration `toml:"shutdown_timeout,omitempty"`
}

// ConvertConfig configures external document conversion.
type ConvertConfig struct {
	// PandocHeader is inserted into the head of converted HTML documents.
	PandocHeader string   `toml:"pandoc_header,omitempty"`
	PandocArgs   []string `toml:"pandoc_args,omitempty"`
}

// Duration is a time.Duration written as a string like "30s" in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Serve: ServeConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Cache: CacheConfig{
			Prefix: "trieviz:",
		},
		Convert: ConvertConfig{
			PandocHeader: "header.html",
		},
	}
}

// Path returns the default config file path using the XDG standard.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path over the defaults. An empty path
// means the default location, where a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if cfg.KeywordsFile != "" && !filepath.IsAbs(cfg.KeywordsFile) {
		cfg.KeywordsFile = filepath.Join(filepath.Dir(path), cfg.KeywordsFile)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := export.ParseOrder(c.Order); err != nil {
		return err
	}
	if _, err := keywords.ParseForm(c.Normalize); err != nil {
		return err
	}
	for _, f := range c.Formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// LoadKeywords returns the configured keyword list, reading KeywordsFile
// when set. It returns nil when neither is configured.
func (c *Config) LoadKeywords() ([]string, error) {
	if c.KeywordsFile != "" {
		return keywords.Load(c.KeywordsFile)
	}
	return c.Keywords, nil
}
