// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build e2e

// Package e2e provides end-to-end typecheck verification tests.
// These tests verify that generated declarations are accepted by tsc.
//
// Run with: go test -tags e2e ./e2e/... -v
package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Tool installation instructions
var installInstructions = map[string]string{
	"tsc": "tsc is required. Install: npm install -g typescript",
}

// requireTool fails the test if the tool is not available.
func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		instruction := installInstructions[name]
		if instruction == "" {
			instruction = fmt.Sprintf("Install %s and ensure it's in PATH", name)
		}
		t.Fatalf("%s not found in PATH.\n%s", name, instruction)
	}
}

// stubLib stands in for the host's runtime declarations. The generated files
// opt out of lib.d.ts, so tsc needs the global interfaces it always checks
// for, plus the container types the type mapper emits.
const stubLib = `interface Array<T> {}
interface Boolean {}
interface CallableFunction {}
interface Function {}
interface IArguments {}
interface NewableFunction {}
interface Number {}
interface Object {}
interface RegExp {}
interface String {}
declare class GodotDictionary {}
declare class GodotArray {}
`

// typecheckSnapshot has no singleton sharing a name with a class; a value
// declaration and a class of the same name are a duplicate identifier.
const typecheckSnapshot = `{
  "classes": [
    {"name": "Object", "methods": [{"name": "get_class", "return_": {"name": "", "type": 4}}]},
    {"name": "RefCounted", "super": "Object"},
    {
      "name": "Node",
      "super": "Object",
      "constants": [
        {"name": "PROCESS_MODE_INHERIT", "value": 0},
        {"name": "PROCESS_MODE_ALWAYS", "value": 3},
        {"name": "NOTIFICATION_READY", "value": 13}
      ],
      "enums": [{"name": "ProcessMode", "literals": ["PROCESS_MODE_INHERIT", "PROCESS_MODE_ALWAYS"]}],
      "methods": [
        {"name": "add_child", "args_": [{"name": "node", "type": 24, "class_name": "Node"}, {"name": "force", "type": 1}]},
        {"name": "get_children", "return_": {"name": "", "type": 28}},
        {"name": "get_meta", "args_": [{"name": "name", "type": 21}], "return_": {"name": "", "type": 0}},
        {"name": "set_meta_dict", "args_": [{"name": "d", "type": 27}]}
      ],
      "signals": [{"name": "ready"}]
    },
    {
      "name": "FileAccess",
      "super": "RefCounted",
      "methods": [
        {"name": "open", "is_static": true, "args_": [{"name": "path", "type": 4}, {"name": "flags", "type": 2}], "return_": {"name": "", "type": 24, "class_name": "FileAccess"}},
        {"name": "get_float", "return_": {"name": "", "type": 3}}
      ]
    },
    {"name": "_OS", "super": "Object", "methods": [{"name": "get_name", "return_": {"name": "", "type": 4}}]}
  ],
  "singletons": [
    {"name": "OS", "class_name": "_OS"},
    {"name": "Ghost", "class_name": "GhostServer"}
  ]
}`

// TestDeclarationsTypecheck verifies that single and split output passes tsc.
func TestDeclarationsTypecheck(t *testing.T) {
	requireTool(t, "tsc")

	tests := []struct {
		name      string
		flags     []string
		wantFiles int
	}{
		{name: "single file", wantFiles: 1},
		{name: "split", flags: []string{"--max-lines", "4"}, wantFiles: 3},
		{name: "quoted module", flags: []string{"--module", "godot-jsb"}, wantFiles: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			tmpDir := t.TempDir()
			input := filepath.Join(tmpDir, "api.json")
			outDir := filepath.Join(tmpDir, "typings")
			if err := os.WriteFile(input, []byte(typecheckSnapshot), 0o644); err != nil {
				t.Fatalf("write snapshot: %v", err)
			}

			args := append([]string{"--input", input, "--output", outDir}, tt.flags...)
			gen := exec.CommandContext(ctx, binary, args...)
			gen.Dir = tmpDir
			var genErr bytes.Buffer
			gen.Stderr = &genErr
			if err := gen.Run(); err != nil {
				t.Fatalf("gdtsgen failed: %v\n%s", err, genErr.String())
			}

			files, err := filepath.Glob(filepath.Join(outDir, "godot*.gen.d.ts"))
			if err != nil {
				t.Fatalf("glob: %v", err)
			}
			if len(files) < tt.wantFiles {
				t.Fatalf("got %d files, want at least %d", len(files), tt.wantFiles)
			}

			lib := filepath.Join(tmpDir, "stub.d.ts")
			if err := os.WriteFile(lib, []byte(stubLib), 0o644); err != nil {
				t.Fatalf("write stub: %v", err)
			}

			tscArgs := append([]string{"--noEmit", "--noLib", "--strict", lib}, files...)
			tsc := exec.CommandContext(ctx, "tsc", tscArgs...)
			tsc.Dir = tmpDir
			var out bytes.Buffer
			tsc.Stdout = &out
			tsc.Stderr = &out
			if err := tsc.Run(); err != nil {
				for _, f := range files {
					data, _ := os.ReadFile(f)
					t.Logf("%s:\n%s", filepath.Base(f), data)
				}
				t.Fatalf("tsc failed: %v\n%s", err, strings.TrimSpace(out.String()))
			}
		})
	}
}
