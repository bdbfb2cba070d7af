// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package typemap

import (
	"testing"

	"github.com/albertocavalcante/gdtsgen/internal/model"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		name string
		prop model.PropertyInfo
		want string
	}{
		{name: "nil", prop: model.PropertyInfo{Type: model.TypeNil}, want: "undefined"},
		{name: "bool", prop: model.PropertyInfo{Type: model.TypeBool}, want: "boolean"},
		{name: "int", prop: model.PropertyInfo{Type: model.TypeInt}, want: "number /*i64*/"},
		{name: "float", prop: model.PropertyInfo{Type: model.TypeFloat}, want: "number /*f64*/"},
		{name: "string", prop: model.PropertyInfo{Type: model.TypeString}, want: "string"},
		{name: "dictionary", prop: model.PropertyInfo{Type: model.TypeDictionary}, want: "GodotDictionary"},
		{name: "array", prop: model.PropertyInfo{Type: model.TypeArray}, want: "GodotArray"},
		{name: "class wins", prop: model.PropertyInfo{Type: model.TypeObject, ClassName: "Node"}, want: "Node"},
		{name: "class wins over primitive", prop: model.PropertyInfo{Type: model.TypeInt, ClassName: "Resource"}, want: "Resource"},
		{name: "unmapped vector", prop: model.PropertyInfo{Type: model.TypeVector2}, want: "any /*unhandled: 5*/"},
		{name: "unmapped object", prop: model.PropertyInfo{Type: model.TypeObject}, want: "any /*unhandled: 24*/"},
		{name: "unknown tag", prop: model.PropertyInfo{Type: model.Type(250)}, want: "any /*unhandled: 250*/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeName(tt.prop); got != tt.want {
				t.Errorf("TypeName(%+v) = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

func TestPrimitive(t *testing.T) {
	for _, tag := range []model.Type{model.TypeNil, model.TypeBool, model.TypeInt, model.TypeFloat, model.TypeString, model.TypeDictionary, model.TypeArray} {
		if _, ok := Primitive(tag); !ok {
			t.Errorf("Primitive(%v) missing", tag)
		}
	}
	if name, ok := Primitive(model.TypeColor); ok {
		t.Errorf("Primitive(COLOR) = %q, want missing", name)
	}
}

func TestIsPlainIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "godot", want: true},
		{name: "Godot", want: true},
		{name: "godot-jsb", want: false},
		{name: "godot2", want: false},
		{name: "@scope/pkg", want: false},
		{name: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlainIdentifier(tt.name); got != tt.want {
				t.Errorf("IsPlainIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
