// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package typemap translates host variant type tags into TypeScript type names.
package typemap

import (
	"fmt"
	"regexp"

	"github.com/albertocavalcante/gdtsgen/internal/model"
)

// Declaration-language names for mapped primitives.
const (
	Undefined  = "undefined"
	Boolean    = "boolean"
	Int64      = "number /*i64*/"
	Float64    = "number /*f64*/"
	String     = "string"
	Dictionary = "GodotDictionary"
	Array      = "GodotArray"
)

// primitives is the fixed tag table. Tags missing here render through Fallback.
var primitives = map[model.Type]string{
	model.TypeNil:        Undefined,
	model.TypeBool:       Boolean,
	model.TypeInt:        Int64,
	model.TypeFloat:      Float64,
	model.TypeString:     String,
	model.TypeDictionary: Dictionary,
	model.TypeArray:      Array,
}

// Primitive returns the mapped name for tag.
func Primitive(tag model.Type) (string, bool) {
	name, ok := primitives[tag]
	return name, ok
}

// Fallback is the permissive placeholder for an unmapped tag. The tag number
// stays visible in the output.
func Fallback(tag model.Type) string {
	return fmt.Sprintf("any /*unhandled: %d*/", int(tag))
}

// TypeName renders the declared type of an argument or return slot.
// A class name wins over the primitive tag.
func TypeName(p model.PropertyInfo) string {
	if p.ClassName != "" {
		return p.ClassName
	}
	if name, ok := Primitive(p.Type); ok {
		return name
	}
	return Fallback(p.Type)
}

var plainIdent = regexp.MustCompile(`^[a-zA-Z]+$`)

// IsPlainIdentifier reports whether name can be used unquoted as a module name.
func IsPlainIdentifier(name string) bool {
	return plainIdent.MatchString(name)
}
