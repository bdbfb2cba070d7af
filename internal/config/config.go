// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads gdtsgen settings from defaults, gdtsgen.toml,
// GDTSGEN_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/albertocavalcante/gdtsgen/generator"
	"github.com/albertocavalcante/gdtsgen/internal/dump"
	"github.com/albertocavalcante/gdtsgen/internal/split"
)

const (
	// FileName is the project configuration file searched for upward from
	// the working directory.
	FileName = "gdtsgen.toml"

	// EnvPrefix prefixes environment overrides (GDTSGEN_OUTPUT_DIR, ...).
	EnvPrefix = "GDTSGEN"
)

// Keys shared by defaults, flags and the TOML file.
const (
	KeyInput       = "input"
	KeyInputFormat = "input_format"
	KeyOutputDir   = "output_dir"
	KeyTarget      = "target"
	KeyPrefix      = "prefix"
	KeyExtension   = "extension"
	KeyModule      = "module"
	KeyMaxBytes    = "max_bytes"
	KeyMaxLines    = "max_lines"
	KeyClasses     = "classes"
	KeyResolveDeps = "resolve_deps"
	KeyOptions     = "options"
	KeyLogJSON     = "log.json"
	KeyLogLevel    = "log.level"
)

// Config is the resolved configuration of one invocation.
type Config struct {
	Input       string    `mapstructure:"input"`
	InputFormat string    `mapstructure:"input_format"`
	OutputDir   string    `mapstructure:"output_dir"`
	Target      string    `mapstructure:"target"`
	Prefix      string    `mapstructure:"prefix"`
	Extension   string    `mapstructure:"extension"`
	Module      string    `mapstructure:"module"`
	MaxBytes    int       `mapstructure:"max_bytes"`
	MaxLines    int       `mapstructure:"max_lines"`
	Classes     []string  `mapstructure:"classes"`
	ResolveDeps bool      `mapstructure:"resolve_deps"`
	Log         LogConfig `mapstructure:"log"`

	// Options are passed to the target unchanged ([options] table, --opt).
	Options map[string]string `mapstructure:"options"`
}

// LogConfig selects the logger output.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInput, "")
	v.SetDefault(KeyInputFormat, "auto")
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyTarget, "dts")
	v.SetDefault(KeyPrefix, "godot")
	v.SetDefault(KeyExtension, "d.ts")
	v.SetDefault(KeyModule, "godot")
	v.SetDefault(KeyMaxBytes, split.DefaultMaxBytes)
	v.SetDefault(KeyMaxLines, split.DefaultMaxLines)
	v.SetDefault(KeyClasses, []string{})
	v.SetDefault(KeyResolveDeps, false)
	v.SetDefault(KeyOptions, map[string]string{})
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyLogLevel, "info")
}

// NewViper returns a viper instance reading files from fs, with defaults and
// environment binding in place.
func NewViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// FindProjectConfig walks up from dir looking for FileName and returns the
// first match, or "" if none is found.
func FindProjectConfig(fs afero.Fs, dir string) string {
	if dir == "" {
		return ""
	}
	dir = filepath.Clean(dir)
	for {
		path := filepath.Join(dir, FileName)
		if ok, _ := afero.Exists(fs, path); ok {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// ReadFile merges the TOML file at path into v. With an empty path the
// nearest FileName above dir is used, and having none is not an error.
// It returns the file that was read, if any.
func ReadFile(v *viper.Viper, fs afero.Fs, path, dir string) (string, error) {
	if path == "" {
		path = FindProjectConfig(fs, dir)
		if path == "" {
			return "", nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", errors.Wrapf(err, "read config file %s", path)
	}
	return path, nil
}

// Unmarshal decodes and validates the settings held by v.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Target == "" {
		return errors.New("target cannot be empty")
	}
	if _, err := dump.ParseFormat(c.InputFormat); err != nil {
		return errors.Wrap(err, "input_format")
	}
	if c.Prefix == "" {
		return errors.New("prefix cannot be empty")
	}
	if strings.ContainsAny(c.Prefix, `/\`) {
		return errors.WithHint(errors.Newf("prefix %q must not contain a path separator", c.Prefix),
			"use output_dir for the directory")
	}
	if c.Extension == "" {
		return errors.New("extension cannot be empty")
	}
	if c.Module == "" {
		return errors.New("module cannot be empty")
	}
	if c.MaxBytes <= 0 {
		return errors.Newf("max_bytes must be > 0, got %d", c.MaxBytes)
	}
	if c.MaxLines <= 0 {
		return errors.Newf("max_lines must be > 0, got %d", c.MaxLines)
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return errors.Wrapf(err, "log.level")
		}
	}
	return nil
}

// Generator converts the settings into a generator configuration writing
// to fs.
func (c *Config) Generator(fs afero.Fs) generator.Config {
	return generator.Config{
		Fs:          fs,
		OutputDir:   c.OutputDir,
		Prefix:      c.Prefix,
		Extension:   c.Extension,
		Module:      c.Module,
		MaxBytes:    c.MaxBytes,
		MaxLines:    c.MaxLines,
		Classes:     c.Classes,
		ResolveDeps: c.ResolveDeps,
		Source:      c.Input,
		Options:     c.Options,
	}
}
