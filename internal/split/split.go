// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package split owns the numbered output files of a generation run.
//
// A Splitter keeps exactly one file open. Callers ask for the current module
// scope before each unit of output; once the open file grows past the byte or
// line budget the Splitter closes it and opens the next numbered file.
package split

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/albertocavalcante/gdtsgen/internal/logger"
	"github.com/albertocavalcante/gdtsgen/internal/scope"
)

const (
	// DefaultMaxBytes is the default per-file character budget.
	DefaultMaxBytes = 1024 * 900

	// DefaultMaxLines is the default per-file line budget.
	DefaultMaxLines = 12000

	// HeaderMarker is the first line of every generated file.
	HeaderMarker = "// AUTO-GENERATED"

	// HeaderNoDefaultLib stops the compiler from pulling in lib.d.ts.
	HeaderNoDefaultLib = `/// <reference no-default-lib="true"/>`
)

// Options configures file naming and rollover.
type Options struct {
	// Dir is the output directory. Empty means the working directory.
	Dir string

	// Prefix starts every file name (e.g., "godot").
	Prefix string

	// Ext is the extension after ".gen." (e.g., "d.ts").
	Ext string

	// Module is the declared module name.
	Module string

	// MaxBytes bounds the characters and MaxLines the lines of one file.
	// Zero selects the default.
	MaxBytes int
	MaxLines int
}

func (o Options) withDefaults() Options {
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.MaxLines <= 0 {
		o.MaxLines = DefaultMaxLines
	}
	return o
}

// Splitter writes numbered files on fs.
type Splitter struct {
	fs   afero.Fs
	opts Options
	log  *zap.SugaredLogger

	index  int
	file   afero.File
	sink   *scope.File
	top    *scope.Module
	opened []string
}

// New returns a Splitter. No file is opened until Writer is called.
func New(fs afero.Fs, opts Options, log *zap.SugaredLogger) *Splitter {
	if log == nil {
		log = logger.Logger
	}
	return &Splitter{fs: fs, opts: opts.withDefaults(), log: log}
}

// Path returns the path of file index.
func (s *Splitter) Path(index int) string {
	name := fmt.Sprintf("%s%d.gen.%s", s.opts.Prefix, index, s.opts.Ext)
	if s.opts.Dir == "" {
		return name
	}
	return filepath.Join(s.opts.Dir, name)
}

// Writer returns the module scope to emit the next unit into, opening a new
// file first if none is open or the open one is over budget. The returned
// scope is finished by the Splitter.
func (s *Splitter) Writer() (*scope.Module, error) {
	if s.top == nil || s.over() {
		if err := s.rollover(); err != nil {
			return nil, err
		}
	}
	return s.top, nil
}

func (s *Splitter) over() bool {
	return s.top.Size() > s.opts.MaxBytes || s.top.Lineno() > s.opts.MaxLines
}

func (s *Splitter) rollover() error {
	if err := s.Close(); err != nil {
		return err
	}

	index := s.index
	path := s.Path(index)
	s.index++

	if s.opts.Dir != "" {
		if err := s.fs.MkdirAll(s.opts.Dir, 0o755); err != nil {
			return errors.Wrapf(err, "create output directory %s", s.opts.Dir)
		}
	}
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	s.log.Infow("new writer", logger.FieldFile, path, logger.FieldIndex, index)

	s.file = f
	s.sink = scope.NewFile(f)
	s.sink.Line(HeaderMarker)
	s.sink.Line(HeaderNoDefaultLib)
	s.top = scope.NewModule(s.sink, s.opts.Module)
	s.opened = append(s.opened, path)
	return nil
}

// Close finishes the module scope and closes the open file, if any.
func (s *Splitter) Close() error {
	if s.file == nil {
		return nil
	}
	path := s.file.Name()
	ferr := s.sink.Finish()
	cerr := s.file.Close()
	s.file, s.sink, s.top = nil, nil, nil
	if ferr != nil {
		return errors.Wrapf(ferr, "write %s", path)
	}
	if cerr != nil {
		return errors.Wrapf(cerr, "close %s", path)
	}
	return nil
}

// Abort closes the open file without finishing its scopes. Lines already
// written to the file, such as the headers, are flushed; open scopes are
// dropped.
func (s *Splitter) Abort() error {
	if s.file == nil {
		return nil
	}
	path := s.file.Name()
	ferr := s.sink.Flush()
	cerr := s.file.Close()
	s.file, s.sink, s.top = nil, nil, nil
	if ferr != nil {
		return errors.Wrapf(ferr, "write %s", path)
	}
	return errors.Wrapf(cerr, "close %s", path)
}

// Files lists the paths opened by this run in order.
func (s *Splitter) Files() []string { return s.opened }

// Cleanup deletes files left by an earlier run, starting at the first index
// this run did not use and stopping at the first index with no file. It returns the deleted paths.
func (s *Splitter) Cleanup() ([]string, error) {
	var deleted []string
	for i := s.index; ; i++ {
		path := s.Path(i)
		ok, err := afero.Exists(s.fs, path)
		if err != nil {
			return deleted, errors.Wrapf(err, "stat %s", path)
		}
		if !ok {
			return deleted, nil
		}
		s.log.Warnw("delete file", logger.FieldFile, path)
		if err := s.fs.Remove(path); err != nil {
			return deleted, errors.Wrapf(err, "delete %s", path)
		}
		deleted = append(deleted, path)
	}
}
