// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package dts writes TypeScript module declarations for a reflection snapshot.
package dts

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/albertocavalcante/gdtsgen/generator"
	"github.com/albertocavalcante/gdtsgen/internal/logger"
	"github.com/albertocavalcante/gdtsgen/internal/model"
	"github.com/albertocavalcante/gdtsgen/internal/scope"
	"github.com/albertocavalcante/gdtsgen/internal/split"
)

var (
	// ErrMissingConstant reports an enum literal with no same-named constant
	// on its class.
	ErrMissingConstant = errors.New("enum literal has no matching constant")

	// ErrAlreadyEmitted is returned when Emit is called more than once.
	ErrAlreadyEmitted = errors.New("generator already emitted")
)

// Config controls declaration generation.
type Config struct {
	// Split names the output files and bounds their size.
	Split split.Options

	// Classes limits generation to specific class names.
	// If empty, all classes are generated. Singletons are never filtered.
	Classes []string

	// ResolveDeps automatically includes superclasses and classes named by
	// method signatures of the filtered classes.
	ResolveDeps bool

	// EditorOnlyMarker writes `// EDITOR-ONLY` above editor-only singletons.
	EditorOnlyMarker bool
}

// DefaultConfig returns the defaults the host editor uses.
func DefaultConfig() Config {
	return Config{
		Split: split.Options{
			Prefix:   "godot",
			Ext:      "d.ts",
			Module:   "godot",
			MaxBytes: split.DefaultMaxBytes,
			MaxLines: split.DefaultMaxLines,
		},
		EditorOnlyMarker: true,
	}
}

// Result reports a finished run.
type Result struct {
	Files   []string
	Deleted []string
}

type state int

const (
	stateConstructed state = iota
	stateSingletons
	stateClasses
	stateClosing
	stateCleanup
	stateDone
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateConstructed:
		return "constructed"
	case stateSingletons:
		return "emitting-singletons"
	case stateClasses:
		return "emitting-classes"
	case stateClosing:
		return "closing"
	case stateCleanup:
		return "cleaning-up"
	case stateDone:
		return "done"
	default:
		return "failed"
	}
}

// CodeGen runs one generation pass.
type CodeGen struct {
	config   Config
	log      *zap.SugaredLogger
	splitter *split.Splitter

	classes    *orderedMap[*model.ClassInfo]
	singletons *orderedMap[*model.SingletonInfo]

	// Class filter (nil = all classes)
	classFilter map[string]bool

	state state
}

// New queries p once and prepares a run writing to fs.
func New(p model.Provider, cfg Config, fs afero.Fs, log *zap.SugaredLogger) (*CodeGen, error) {
	if p == nil {
		return nil, errors.New("nil reflection provider")
	}
	if log == nil {
		log = logger.Logger
	}

	classes, err := p.Classes()
	if err != nil {
		return nil, errors.Wrap(err, "list classes")
	}
	singletons, err := p.Singletons()
	if err != nil {
		return nil, errors.Wrap(err, "list singletons")
	}

	g := &CodeGen{
		config:     cfg,
		log:        log,
		splitter:   split.New(fs, cfg.Split, log),
		classes:    newOrderedMap[*model.ClassInfo](),
		singletons: newOrderedMap[*model.SingletonInfo](),
	}
	for _, c := range classes {
		if c != nil {
			g.classes.set(c.Name, c)
		}
	}
	for _, s := range singletons {
		if s != nil {
			g.singletons.set(s.Name, s)
		}
	}
	g.classFilter = g.buildFilter()
	return g, nil
}

func (g *CodeGen) buildFilter() map[string]bool {
	filter := generator.FilterSet(g.config.Classes)
	if filter == nil {
		return nil
	}
	for name := range filter {
		if _, ok := g.classes.get(name); !ok {
			g.log.Warnw("class filter names an unknown class", logger.FieldClass, name)
		}
	}
	if g.config.ResolveDeps {
		all := make([]*model.ClassInfo, 0, g.classes.len())
		for _, name := range g.classes.keys() {
			c, _ := g.classes.get(name)
			all = append(all, c)
		}
		filter = generator.ResolveDeps(all, filter)
	}
	return filter
}

// included reports whether the named class is emitted by this run.
func (g *CodeGen) included(name string) bool {
	if _, ok := g.classes.get(name); !ok {
		return false
	}
	return g.classFilter == nil || g.classFilter[name]
}

// Emit writes every declaration, closes the last file and deletes stale files
// from earlier runs. A CodeGen emits once.
func (g *CodeGen) Emit() (*Result, error) {
	if g.state != stateConstructed {
		return nil, errors.Wrapf(ErrAlreadyEmitted, "state %s", g.state)
	}
	start := time.Now()

	if err := g.run(); err != nil {
		failedIn := g.state
		g.state = stateFailed
		if aerr := g.splitter.Abort(); aerr != nil {
			g.log.Warnw("abort output", logger.FieldError, aerr)
		}
		return nil, errors.Wrapf(err, "emit (%s)", failedIn)
	}

	g.state = stateCleanup
	deleted, err := g.splitter.Cleanup()
	if err != nil {
		g.state = stateFailed
		return nil, errors.Wrap(err, "clean up stale files")
	}
	g.state = stateDone

	res := &Result{Files: g.splitter.Files(), Deleted: deleted}
	g.log.Infow("generation complete",
		logger.FieldCount, len(res.Files),
		logger.FieldDeleted, len(res.Deleted),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (g *CodeGen) run() error {
	g.state = stateSingletons
	if err := g.emitSingletons(); err != nil {
		return err
	}
	g.state = stateClasses
	if err := g.emitClasses(); err != nil {
		return err
	}
	g.state = stateClosing
	return g.splitter.Close()
}

func (g *CodeGen) emitSingletons() error {
	// Opens file 0 even when there are no singletons.
	if _, err := g.splitter.Writer(); err != nil {
		return err
	}

	for _, name := range g.singletons.keys() {
		s, _ := g.singletons.get(name)
		w, err := g.splitter.Writer()
		if err != nil {
			return err
		}

		cls, ok := g.classes.get(s.ClassName)
		if !ok {
			g.log.Warnw("singleton without class info",
				logger.FieldSingleton, s.Name,
				logger.FieldClass, s.ClassName,
			)
			scope.Comment(w, fmt.Sprintf("ERROR: singleton %s without class info %s", s.Name, s.ClassName))
			continue
		}

		if s.EditorOnly && g.config.EditorOnlyMarker {
			scope.Comment(w, "EDITOR-ONLY")
		}
		decl := scope.NewSingleton(w, s.Name)
		for _, m := range cls.Methods {
			decl.Method(m)
		}
		if err := decl.Finish(); err != nil {
			return err
		}
	}
	return nil
}

func (g *CodeGen) emitClasses() error {
	for _, name := range g.classes.keys() {
		if !g.included(name) {
			continue
		}
		cls, _ := g.classes.get(name)
		w, err := g.splitter.Writer()
		if err != nil {
			return err
		}
		if err := g.emitClass(w, cls); err != nil {
			return err
		}
	}
	return nil
}

func (g *CodeGen) emitClass(w scope.Writer, cls *model.ClassInfo) error {
	claimed := make(map[string]bool)

	ns := scope.NewNamespace(w, cls.Name)
	for _, e := range cls.Enums {
		enum := ns.Enum(e.Name)
		for _, literal := range e.Literals {
			k, ok := cls.Constant(literal)
			if !ok {
				err := errors.Wrapf(ErrMissingConstant, "%s.%s.%s", cls.Name, e.Name, literal)
				return errors.WithHint(err, "the reflection snapshot is inconsistent; export it again from the editor")
			}
			enum.Element(literal, k.Value)
			claimed[literal] = true
		}
		if err := enum.Finish(); err != nil {
			return err
		}
	}
	if err := ns.Finish(); err != nil {
		return err
	}

	super := ""
	if g.included(cls.Super) {
		super = cls.Super
	}
	decl := scope.NewClass(w, cls.Name, super)
	for _, k := range cls.Constants {
		if !claimed[k.Name] {
			decl.Constant(k)
		}
	}
	for _, m := range cls.Methods {
		decl.Method(m)
	}
	for _, s := range cls.Signals {
		decl.Signal(s)
	}
	return decl.Finish()
}
