// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the data structures exported by the host engine's
// reflection API.
//
// The host publishes its class database (classes, methods, constants, enums,
// signals) and its singleton table. Field names follow the host export so a
// dump produced by the editor can be decoded without translation.
//
// All values are read-only snapshots: they are read once per generation run
// and never mutated.
package model

// Snapshot is one complete read of the reflection API.
type Snapshot struct {
	// Classes lists every registered class in registration order.
	Classes []*ClassInfo `json:"classes" yaml:"classes"`

	// Singletons lists engine singletons in registration order.
	Singletons []*SingletonInfo `json:"singletons" yaml:"singletons"`

	// GlobalConstants is exported by the host but not emitted.
	GlobalConstants []ConstantInfo `json:"global_constants,omitempty" yaml:"global_constants,omitempty"`
}

// ClassInfo describes a single host class.
type ClassInfo struct {
	// Name is the class name (e.g., "Node", "FileAccess").
	Name string `json:"name" yaml:"name"`

	// Super is the name of the parent class. It may name a class that is not
	// part of the snapshot.
	Super string `json:"super,omitempty" yaml:"super,omitempty"`

	// Constants lists integer constants, including the ones backing enums.
	Constants []ConstantInfo `json:"constants,omitempty" yaml:"constants,omitempty"`

	// Enums lists enums declared on this class.
	Enums []EnumInfo `json:"enums,omitempty" yaml:"enums,omitempty"`

	// Methods lists bound methods in declaration order.
	Methods []MethodInfo `json:"methods,omitempty" yaml:"methods,omitempty"`

	// Signals lists signals in declaration order.
	Signals []SignalInfo `json:"signals,omitempty" yaml:"signals,omitempty"`

	// Fields and Properties are exported by the host but not emitted.
	Fields     []PropertyInfo   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Properties []PropertySetGet `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Constant returns the constant with the given name.
func (c *ClassInfo) Constant(name string) (ConstantInfo, bool) {
	for _, k := range c.Constants {
		if k.Name == name {
			return k, true
		}
	}
	return ConstantInfo{}, false
}

// ConstantInfo is a named integer constant.
type ConstantInfo struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// EnumInfo is a named group of constants.
type EnumInfo struct {
	Name string `json:"name" yaml:"name"`

	// Literals are constant names; each one resolves to a ConstantInfo of
	// the owning class.
	Literals []string `json:"literals" yaml:"literals"`

	IsBitfield bool `json:"is_bitfield,omitempty" yaml:"is_bitfield,omitempty"`
}

// MethodInfo describes a bound method.
type MethodInfo struct {
	Name     string `json:"name" yaml:"name"`
	IsStatic bool   `json:"is_static,omitempty" yaml:"is_static,omitempty"`
	IsConst  bool   `json:"is_const,omitempty" yaml:"is_const,omitempty"`
	IsVararg bool   `json:"is_vararg,omitempty" yaml:"is_vararg,omitempty"`

	// Args lists argument descriptors in order.
	Args []PropertyInfo `json:"args_,omitempty" yaml:"args_,omitempty"`

	// Return is nil for methods without a return value.
	Return *PropertyInfo `json:"return_,omitempty" yaml:"return_,omitempty"`
}

// PropertyInfo describes a typed slot: an argument, a return value or a field.
type PropertyInfo struct {
	Name string `json:"name" yaml:"name"`
	Type Type   `json:"type" yaml:"type"`

	// ClassName is set when the slot holds an object of a known class.
	ClassName string `json:"class_name,omitempty" yaml:"class_name,omitempty"`
}

// PropertySetGet is a property exposed through a setter/getter pair.
type PropertySetGet struct {
	Name   string `json:"name" yaml:"name"`
	Type   Type   `json:"type" yaml:"type"`
	Setter string `json:"setter,omitempty" yaml:"setter,omitempty"`
	Getter string `json:"getter,omitempty" yaml:"getter,omitempty"`
}

// SignalInfo describes a signal. Only the name is used.
type SignalInfo struct {
	Name string `json:"name" yaml:"name"`
}

// SingletonInfo describes an engine singleton.
type SingletonInfo struct {
	Name        string `json:"name" yaml:"name"`
	ClassName   string `json:"class_name" yaml:"class_name"`
	UserCreated bool   `json:"user_created,omitempty" yaml:"user_created,omitempty"`
	EditorOnly  bool   `json:"editor_only,omitempty" yaml:"editor_only,omitempty"`
}

// Provider is the reflection collaborator consumed by generators.
type Provider interface {
	Classes() ([]*ClassInfo, error)
	Singletons() ([]*SingletonInfo, error)
}

// Static returns a Provider serving a fixed snapshot.
func Static(s *Snapshot) Provider {
	return staticProvider{s: s}
}

type staticProvider struct {
	s *Snapshot
}

func (p staticProvider) Classes() ([]*ClassInfo, error) {
	if p.s == nil {
		return nil, nil
	}
	return p.s.Classes, nil
}

func (p staticProvider) Singletons() ([]*SingletonInfo, error) {
	if p.s == nil {
		return nil, nil
	}
	return p.s.Singletons, nil
}
