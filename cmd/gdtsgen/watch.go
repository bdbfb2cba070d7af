// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/albertocavalcante/gdtsgen/internal/config"
	"github.com/albertocavalcante/gdtsgen/internal/dump"
	"github.com/albertocavalcante/gdtsgen/internal/logger"
)

const defaultDebounce = 300 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the snapshot changes",
		Long: `Generate once, then regenerate every time the snapshot file is written.

The parent directory is watched so editors that replace the file on save
are picked up. Rapid successive writes are coalesced. A failed run is
logged and watching continues. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			return a.watch(cmd.Context(), cfg, debounce, nil)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period before regenerating")
	return cmd
}

// watch regenerates on every change to cfg.Input until ctx is done. ran, if
// set, is called after each run with its error.
func (a *app) watch(ctx context.Context, cfg *config.Config, debounce time.Duration, ran func(error)) error {
	if cfg.Input == "" || cfg.Input == dump.Stdin {
		return errors.WithHint(errors.New("watch needs a snapshot file"),
			"pass --input with a path to a .json or .yaml export")
	}
	target, err := filepath.Abs(cfg.Input)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", cfg.Input)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	dir := filepath.Dir(target)
	if err := w.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	log := logger.Named("watch").With(logger.FieldFile, target)

	run := func() {
		out, err := a.generate(ctx, cfg)
		if err != nil {
			log.Errorw("generation failed", logger.FieldError, err)
		} else {
			log.Infow("regenerated", logger.FieldCount, len(out.Files))
		}
		if ran != nil {
			ran(err)
		}
	}

	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Infow("watch stopped")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debugw("snapshot changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			run()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watcher error", logger.FieldError, err)
		}
	}
}
