// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

// Output reports what a generation run did on disk.
type Output struct {
	// Files lists the written paths in rollover order.
	Files []string

	// Deleted lists stale paths removed after the run.
	Deleted []string
}

// NewOutput creates a new Output.
func NewOutput() *Output {
	return &Output{}
}

// Add records a written file.
func (o *Output) Add(path string) {
	o.Files = append(o.Files, path)
}

// Remove records a deleted stale file.
func (o *Output) Remove(path string) {
	o.Deleted = append(o.Deleted, path)
}
