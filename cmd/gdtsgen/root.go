// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/albertocavalcante/gdtsgen/generator"
	"github.com/albertocavalcante/gdtsgen/internal/config"
	"github.com/albertocavalcante/gdtsgen/internal/dump"
	"github.com/albertocavalcante/gdtsgen/internal/logger"
	"github.com/albertocavalcante/gdtsgen/internal/split"
)

// app carries the process environment so commands can run against an
// in-memory filesystem in tests.
type app struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getwd  func() (string, error)

	v          *viper.Viper
	configPath string
	dryRun     bool
	verbose    bool
}

func newApp() *app {
	fs := afero.NewOsFs()
	return &app{
		fs:     fs,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		getwd:  os.Getwd,
		v:      config.NewViper(fs),
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gdtsgen",
		Short: "Generate TypeScript declarations from a Godot reflection snapshot",
		Long: `Generate TypeScript module declarations from a Godot reflection snapshot.

The snapshot lists classes, enums, constants, methods, signals and
singletons. Output is split across numbered files (godot0.gen.d.ts,
godot1.gen.d.ts, ...) and stale files from a larger earlier run are removed.

Settings come from defaults, gdtsgen.toml (searched upward from the working
directory), GDTSGEN_* environment variables and flags, in that order.

Examples:
  # Generate into the working directory
  gdtsgen -i api.json

  # Generate into a directory with a custom module name
  gdtsgen -i api.yaml -o typings/ --module godot-jsb

  # Generate a few classes and everything they reference
  gdtsgen -i api.json -c Node2D,Sprite2D --resolve-deps

  # Read the snapshot from stdin and print the result
  godot --headless --dump-api | gdtsgen -i - --dry-run

  # Drop the editor-only singleton marker
  gdtsgen -i api.json --opt editor-only-marker=false`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			_, err = a.generate(cmd.Context(), cfg)
			return err
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringP("input", "i", "", "Reflection snapshot (.json, .yaml, or - for stdin)")
	flags.String("input-format", "auto", "Snapshot format: auto, json or yaml")
	flags.StringP("output", "o", "", "Output directory (default: working directory)")
	flags.StringP("target", "t", "dts", "Generator target")
	flags.StringSliceP("classes", "c", nil, "Comma-separated classes to generate (default: all)")
	flags.Bool("resolve-deps", false, "Include superclasses and referenced classes")
	flags.String("prefix", "godot", "Output file prefix")
	flags.String("ext", "d.ts", "Output file extension")
	flags.String("module", "godot", "Declared module name")
	flags.Int("max-bytes", split.DefaultMaxBytes, "Per-file character budget")
	flags.Int("max-lines", split.DefaultMaxLines, "Per-file line budget")
	flags.StringToString("opt", nil, "Target option key=value (repeatable)")
	flags.Bool("json-log", false, "JSON log output")
	flags.StringVar(&a.configPath, "config", "", "Path to gdtsgen.toml")
	flags.BoolVar(&a.dryRun, "dry-run", false, "Print to stdout without writing files")
	flags.BoolVar(&a.verbose, "verbose", false, "Debug logging")

	bindings := map[string]string{
		config.KeyInput:       "input",
		config.KeyInputFormat: "input-format",
		config.KeyOutputDir:   "output",
		config.KeyTarget:      "target",
		config.KeyClasses:     "classes",
		config.KeyResolveDeps: "resolve-deps",
		config.KeyPrefix:      "prefix",
		config.KeyExtension:   "ext",
		config.KeyModule:      "module",
		config.KeyMaxBytes:    "max-bytes",
		config.KeyMaxLines:    "max-lines",
		config.KeyLogJSON:     "json-log",
		config.KeyOptions:     "opt",
	}
	for key, name := range bindings {
		// Lookup cannot fail for the flags registered above.
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(newWatchCmd(a), newTargetsCmd(), newVersionCmd())
	return cmd
}

// loadConfig merges the project file into the flag and environment layers,
// validates the result and installs the logger.
func (a *app) loadConfig() (*config.Config, error) {
	dir, err := a.getwd()
	if err != nil {
		return nil, errors.Wrap(err, "working directory")
	}
	path, err := config.ReadFile(a.v, a.fs, a.configPath, dir)
	if err != nil {
		return nil, err
	}
	if a.verbose {
		a.v.Set(config.KeyLogLevel, "debug")
	}

	cfg, err := config.Unmarshal(a.v)
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return nil, errors.Wrap(err, "initialize logger")
	}
	if path != "" {
		logger.Logger.Debugw("loaded config", logger.FieldFile, path)
	}
	return cfg, nil
}

// generate runs one generation pass and reports what it wrote.
func (a *app) generate(ctx context.Context, cfg *config.Config) (*generator.Output, error) {
	gen, err := generator.Lookup(cfg.Target)
	if err != nil {
		return nil, err
	}

	format, err := dump.ParseFormat(cfg.InputFormat)
	if err != nil {
		return nil, err
	}
	res, err := dump.Load(ctx, dump.Options{Path: cfg.Input, Fs: a.fs, Stdin: a.stdin, Format: format})
	if err != nil {
		return nil, err
	}
	logger.Logger.Debugw("loaded snapshot",
		logger.FieldSource, res.Source,
		logger.FieldTarget, cfg.Target,
		logger.FieldCount, len(res.Snapshot.Classes),
	)

	out := a.fs
	if a.dryRun {
		out = afero.NewMemMapFs()
	}

	gcfg := cfg.Generator(out)
	gcfg.Source = res.Source
	result, err := gen.Generate(ctx, res.Provider(), gcfg)
	if err != nil {
		return nil, errors.Wrapf(err, "generate %s", cfg.Target)
	}

	if a.dryRun {
		return result, a.print(out, result)
	}
	return result, nil
}

// print copies the generated files to stdout.
func (a *app) print(fs afero.Fs, result *generator.Output) error {
	for i, path := range result.Files {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}
		if len(result.Files) > 1 {
			if i > 0 {
				fmt.Fprintln(a.stdout)
			}
			fmt.Fprintf(a.stdout, "==> %s <==\n", path)
		}
		if _, err := a.stdout.Write(data); err != nil {
			return errors.Wrap(err, "write stdout")
		}
	}
	return nil
}

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List available generator targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, g := range generator.All() {
				meta := g.Metadata()
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-8s %s\n", meta.Name, meta.Version, meta.Description)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gdtsgen %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
