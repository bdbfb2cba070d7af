// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "github.com/spf13/afero"

// Config contains generator configuration.
type Config struct {
	// Fs is where output files are written. Nil means the OS filesystem.
	Fs afero.Fs

	// OutputDir is the output directory. Empty means the working directory.
	OutputDir string

	// Prefix starts every output file name.
	Prefix string

	// Extension follows ".gen." in every output file name.
	Extension string

	// Module is the declared module name.
	Module string

	// MaxBytes and MaxLines bound one output file (0 = default).
	MaxBytes int
	MaxLines int

	// Classes filters to specific class names (empty = all).
	Classes []string

	// ResolveDeps includes superclasses and referenced classes when filtering.
	ResolveDeps bool

	// Source describes where the snapshot came from (for logs).
	Source string

	// Options contains target-specific options.
	Options map[string]string
}

// Option returns a target-specific option with default.
func (c Config) Option(key, defaultValue string) string {
	if v, ok := c.Options[key]; ok {
		return v
	}
	return defaultValue
}

// Filesystem returns Fs, or the OS filesystem when Fs is nil.
func (c Config) Filesystem() afero.Fs {
	if c.Fs == nil {
		return afero.NewOsFs()
	}
	return c.Fs
}
