package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/richclip/go-md2rich/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidTarget  = errors.New("invalid target")
	ErrInvalidFormat  = errors.New("invalid format")
)

// Config holds file-based configuration. Flags override anything set here.
type Config struct {
	Target  string        `yaml:"target"` // universal, gdocs, word, gmail, slack
	Format  string        `yaml:"format"` // html, word, rtf, text
	Output  OutputConfig  `yaml:"output"`
	Options OptionsConfig `yaml:"options"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = same directory as source
}

// OptionsConfig mirrors the pipeline option toggles.
type OptionsConfig struct {
	Breaks        bool `yaml:"breaks"`
	Linkify       bool `yaml:"linkify"`
	Typographer   bool `yaml:"typographer"`
	IncludeStyles bool `yaml:"includeStyles"`
	HighlightCode bool `yaml:"highlightCode"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Target: "universal",
		Format: "html",
		Options: OptionsConfig{
			Linkify:       true,
			IncludeStyles: true,
			HighlightCode: true,
		},
	}
}

// LoadConfig reads and strictly parses a YAML config file.
// Returns an error if the file is missing (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum-like fields.
func (c *Config) Validate() error {
	switch c.Target {
	case "", "universal", "gdocs", "word", "gmail", "slack":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTarget, c.Target)
	}
	switch c.Format {
	case "", "html", "word", "rtf", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	return nil
}
