// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command gdtsgen generates TypeScript declarations from a Godot reflection
// snapshot.
//
// Usage:
//
//	gdtsgen [flags]
//	gdtsgen watch [flags]
//	gdtsgen targets
//	gdtsgen version
//
// Flags:
//
//	-i, --input        Reflection snapshot (.json, .yaml, or - for stdin)
//	--input-format     Snapshot format: auto, json or yaml (default: auto)
//	-o, --output       Output directory (default: working directory)
//	-t, --target       Generator target (default: dts)
//	-c, --classes      Comma-separated classes to generate (default: all)
//	--resolve-deps     Include superclasses and referenced classes
//	--prefix           Output file prefix (default: godot)
//	--ext              Output file extension (default: d.ts)
//	--module           Declared module name (default: godot)
//	--max-bytes        Per-file character budget
//	--max-lines        Per-file line budget
//	--opt key=value    Target option (repeatable)
//	--config           Path to gdtsgen.toml
//	--dry-run          Print to stdout without writing files
//	--json-log         JSON log output
//	--verbose          Debug logging
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newApp()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
