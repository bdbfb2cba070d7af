// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the interface for declaration generators.
package generator

import (
	"context"

	"github.com/albertocavalcante/gdtsgen/internal/model"
)

// Generator is the interface that all declaration generators must implement.
type Generator interface {
	// Metadata returns information about this generator.
	Metadata() Metadata

	// Generate writes output files for the classes and singletons exposed by p.
	Generate(ctx context.Context, p model.Provider, cfg Config) (*Output, error)
}

// Metadata describes a generator.
type Metadata struct {
	// Name is the short identifier used to select the target (e.g., "dts").
	Name string

	// Version is the generator version (semver).
	Version string

	// Description is a human-readable description.
	Description string

	// FileExtensions lists typical output extensions (e.g., [".d.ts"]).
	FileExtensions []string

	// URL is the homepage/documentation URL (optional).
	URL string
}
