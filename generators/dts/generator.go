// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package dts

import (
	"context"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/albertocavalcante/gdtsgen/generator"
	"github.com/albertocavalcante/gdtsgen/internal/logger"
	"github.com/albertocavalcante/gdtsgen/internal/model"
)

// Target options read from generator.Config.Options.
const (
	// OptEditorOnlyMarker toggles the `// EDITOR-ONLY` comment (default true).
	OptEditorOnlyMarker = "editor-only-marker"
)

var knownOptions = []string{OptEditorOnlyMarker}

// DTSGenerator implements [generator.Generator] for TypeScript declarations.
type DTSGenerator struct{}

// NewGenerator creates a new declaration generator.
func NewGenerator() *DTSGenerator {
	return &DTSGenerator{}
}

// Metadata returns information about this generator.
func (g *DTSGenerator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "dts",
		Version:        "1.0.0",
		Description:    "Generate TypeScript module declarations from a Godot reflection snapshot",
		FileExtensions: []string{".d.ts"},
		URL:            "https://github.com/albertocavalcante/gdtsgen",
	}
}

// Generate writes declaration files for p and removes stale ones.
func (g *DTSGenerator) Generate(ctx context.Context, p model.Provider, cfg generator.Config) (*generator.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Convert generator.Config to internal Config
	internalCfg := DefaultConfig()
	internalCfg.Split.Dir = cfg.OutputDir
	if cfg.Prefix != "" {
		internalCfg.Split.Prefix = cfg.Prefix
	}
	if cfg.Extension != "" {
		internalCfg.Split.Ext = cfg.Extension
	}
	if cfg.Module != "" {
		internalCfg.Split.Module = cfg.Module
	}
	if cfg.MaxBytes > 0 {
		internalCfg.Split.MaxBytes = cfg.MaxBytes
	}
	if cfg.MaxLines > 0 {
		internalCfg.Split.MaxLines = cfg.MaxLines
	}
	internalCfg.Classes = cfg.Classes
	internalCfg.ResolveDeps = cfg.ResolveDeps

	log := logger.Named("dts")
	if cfg.Source != "" {
		log = log.With(logger.FieldSource, cfg.Source)
	}

	for key := range cfg.Options {
		if !slices.Contains(knownOptions, key) {
			log.Warnw("ignoring unknown option", "option", key)
		}
	}
	marker, err := strconv.ParseBool(cfg.Option(OptEditorOnlyMarker, "true"))
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "option %s", OptEditorOnlyMarker),
			"use true or false")
	}
	internalCfg.EditorOnlyMarker = marker

	gen, err := New(p, internalCfg, cfg.Filesystem(), log)
	if err != nil {
		return nil, err
	}
	res, err := gen.Emit()
	if err != nil {
		return nil, err
	}

	out := generator.NewOutput()
	for _, f := range res.Files {
		out.Add(f)
	}
	for _, f := range res.Deleted {
		out.Remove(f)
	}
	return out, nil
}
