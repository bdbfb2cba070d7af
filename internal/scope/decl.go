// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package scope

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/gdtsgen/internal/model"
	"github.com/albertocavalcante/gdtsgen/internal/typemap"
)

// Module is a `declare module` block.
type Module struct {
	block
	name string
}

// NewModule opens a module scope on p. Plain names are emitted unquoted.
func NewModule(p Writer, name string) *Module {
	m := &Module{block: block{parent: p}, name: name}
	attach(p, m)
	return m
}

func (m *Module) Finish() error {
	if typemap.IsPlainIdentifier(m.name) {
		return m.emit("declare module "+m.name, false)
	}
	return m.emit(fmt.Sprintf("declare module %q", m.name), false)
}

// Namespace is a `namespace` block. An empty namespace emits nothing.
type Namespace struct {
	block
	name string
}

// NewNamespace opens a namespace scope on p.
func NewNamespace(p Writer, name string) *Namespace {
	ns := &Namespace{block: block{parent: p}, name: name}
	attach(p, ns)
	return ns
}

func (ns *Namespace) Finish() error {
	return ns.emit("namespace "+ns.name, true)
}

// Enum opens an enum scope inside the namespace.
func (ns *Namespace) Enum(name string) *Enum {
	return NewEnum(ns, name)
}

// Enum is an `enum` block. An enum without elements emits nothing.
type Enum struct {
	block
	name string
}

// NewEnum opens an enum scope on p.
func NewEnum(p Writer, name string) *Enum {
	e := &Enum{block: block{parent: p}, name: name}
	attach(p, e)
	return e
}

// Element adds one enum member.
func (e *Enum) Element(name string, value int64) {
	e.Line(fmt.Sprintf("%s = %d,", name, value))
}

func (e *Enum) Finish() error {
	return e.emit("enum "+e.name, true)
}

type classKind int

const (
	kindClass classKind = iota
	kindSingleton
)

// Class is a `class` block, or the value declaration of a singleton.
// Classes are emitted even when empty.
type Class struct {
	block
	kind  classKind
	name  string
	super string
}

// NewClass opens a class scope on p. An empty super omits the extends clause.
func NewClass(p Writer, name, super string) *Class {
	c := &Class{block: block{parent: p}, kind: kindClass, name: name, super: super}
	attach(p, c)
	return c
}

// NewSingleton opens a singleton value declaration on p.
func NewSingleton(p Writer, name string) *Class {
	c := &Class{block: block{parent: p}, kind: kindSingleton, name: name}
	attach(p, c)
	return c
}

func (c *Class) head() string {
	switch {
	case c.kind == kindSingleton:
		return "const " + c.name + " :"
	case c.super == "":
		return "class " + c.name
	default:
		return "class " + c.name + " extends " + c.super
	}
}

func (c *Class) Finish() error {
	return c.emit(c.head(), false)
}

// Constant declares a static readonly member.
func (c *Class) Constant(k model.ConstantInfo) {
	c.Line(fmt.Sprintf("static readonly %s = %d", k.Name, k.Value))
}

// Method declares a method signature.
func (c *Class) Method(m model.MethodInfo) {
	c.Line(MethodSignature(m))
}

// Signal writes a placeholder comment; signals have no declaration form.
func (c *Class) Signal(s model.SignalInfo) {
	Comment(c, "SIGNAL: "+s.Name)
}

// MethodSignature renders `[static ]name(arg: T, ...): R`.
func MethodSignature(m model.MethodInfo) string {
	args := make([]string, len(m.Args))
	for i, a := range m.Args {
		args[i] = a.Name + ": " + typemap.TypeName(a)
	}
	ret := "void"
	if m.Return != nil {
		ret = typemap.TypeName(*m.Return)
	}
	sig := fmt.Sprintf("%s(%s): %s", m.Name, strings.Join(args, ", "), ret)
	if m.IsStatic {
		return "static " + sig
	}
	return sig
}
