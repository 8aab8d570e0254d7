// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for configurations that fail validation.
var ErrInvalidConfig = errors.New("platform: invalid config")

// Config describes the requested environment. Platforms honor the fields
// that apply to them.
type Config struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	Resizable bool   `yaml:"resizable" toml:"resizable"`
	VSync     bool   `yaml:"vsync" toml:"vsync"`

	// MaxFrames stops the loop after that many frames. Zero means no limit.
	MaxFrames int `yaml:"max_frames" toml:"max_frames"`

	// LogLevel is a slog level name such as "debug" or "warn".
	// Empty leaves logging untouched.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Title:  "sim",
		Width:  800,
		Height: 600,
		VSync:  true,
	}
}

// Validate checks dimensions, frame budget and log level.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("%w: max_frames %d", ErrInvalidConfig, c.MaxFrames)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel. An empty level is Info.
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return l, nil
}

// ParseConfig decodes YAML over the defaults and validates the result.
// Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("platform: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseTOMLConfig is ParseConfig for TOML input.
func ParseTOMLConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("platform: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a configuration file. Files ending in .toml are parsed
// as TOML, everything else as YAML.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("platform: load config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOMLConfig(data)
	}
	return ParseConfig(data)
}

// Encode returns c as YAML.
func (c Config) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}

// EncodeTOML returns c as TOML.
func (c Config) EncodeTOML() ([]byte, error) {
	return toml.Marshal(c)
}
