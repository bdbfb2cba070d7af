// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package dump loads a reflection snapshot exported by the host editor.
package dump

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/gdtsgen/internal/model"
)

// Stdin is the Path that selects Options.Stdin.
const Stdin = "-"

// Format is the encoding of a snapshot.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// ParseFormat resolves a format name. The empty name and "auto" return nil,
// meaning detection from the extension.
func ParseFormat(name string) (*Format, error) {
	var f Format
	switch strings.ToLower(name) {
	case "", "auto":
		return nil, nil
	case "json":
		f = FormatJSON
	case "yaml", "yml":
		f = FormatYAML
	default:
		return nil, errors.WithHint(errors.Newf("unknown snapshot format %q", name),
			"use json, yaml or auto")
	}
	return &f, nil
}

// FormatOf picks the format from a file extension. Unknown extensions and
// stdin are JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Options configures how to load a snapshot.
type Options struct {
	// Path is the snapshot file. Stdin reads from the Stdin reader.
	Path string

	// Fs is the filesystem Path is read from. Nil means the OS filesystem.
	Fs afero.Fs

	// Stdin is read when Path is Stdin. Nil means os.Stdin.
	Stdin io.Reader

	// Format overrides detection from the extension. Stdin is JSON unless
	// Format says otherwise.
	Format *Format
}

// Result contains the loaded snapshot and metadata.
type Result struct {
	// Snapshot is the parsed reflection data.
	Snapshot *model.Snapshot

	// Source describes where the snapshot was loaded from.
	Source string
}

// Provider exposes the snapshot to generators.
func (r *Result) Provider() model.Provider {
	return model.Static(r.Snapshot)
}

// Load reads and parses the snapshot named by opts.
func Load(ctx context.Context, opts Options) (*Result, error) {
	if opts.Path == "" {
		return nil, errors.WithHint(errors.New("no snapshot path"),
			"pass --input or set input in gdtsgen.toml")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := FormatOf(opts.Path)
	if opts.Format != nil {
		format = *opts.Format
	}

	var (
		data   []byte
		err    error
		source string
	)
	if opts.Path == Stdin {
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		data, err = io.ReadAll(r)
		source = "stdin"
	} else {
		fs := opts.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		data, err = afero.ReadFile(fs, opts.Path)
		source = fmt.Sprintf("file://%s", opts.Path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read snapshot %s", opts.Path)
	}

	s, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parse snapshot %s", opts.Path)
	}
	return &Result{Snapshot: s, Source: source}, nil
}

// Parse decodes a snapshot in the given format.
func Parse(data []byte, format Format) (*model.Snapshot, error) {
	var s model.Snapshot
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(err, "yaml")
		}
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, withPosition(data, err)
		}
	}
	return &s, nil
}

// withPosition adds line:column to JSON errors that carry a byte offset.
func withPosition(data []byte, err error) error {
	var offset int64
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syn):
		offset = syn.Offset
	case errors.As(err, &typ):
		offset = typ.Offset
	default:
		return errors.Wrap(err, "json")
	}
	line, col := position(data, offset)
	return errors.Wrapf(err, "json at line %d, column %d", line, col)
}

func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1)
	return line, col
}
