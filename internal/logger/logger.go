// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package logger holds the process-wide structured logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names.
const (
	FieldFile      = "file"
	FieldIndex     = "index"
	FieldCount     = "count"
	FieldDeleted   = "deleted"
	FieldClass     = "class"
	FieldSingleton = "singleton"
	FieldTarget    = "target"
	FieldSource    = "source"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Logger is the global logger. It discards everything until Initialize.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize installs the global logger. Logs go to stderr so generated
// output on stdout stays clean. An unknown level falls back to info.
func Initialize(jsonOutput bool, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zapcore.InfoLevel
	}

	var zl *zap.Logger
	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		zl, err = cfg.Build()
		if err != nil {
			return err
		}
	} else {
		zl = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			lvl,
		))
	}

	Logger = zl.Sugar()
	return nil
}

// consoleEncoderConfig is a quiet human format: level, message, fields.
func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// Named returns a child of the global logger tagged with a component name.
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
