// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Type is a host variant type tag. Values follow the host's numbering.
type Type int

// Host variant type tags.
const (
	TypeNil Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeVector2
	TypeVector2i
	TypeRect2
	TypeRect2i
	TypeVector3
	TypeVector3i
	TypeTransform2D
	TypeVector4
	TypeVector4i
	TypePlane
	TypeQuaternion
	TypeAABB
	TypeBasis
	TypeTransform3D
	TypeProjection
	TypeColor
	TypeStringName
	TypeNodePath
	TypeRID
	TypeObject
	TypeCallable
	TypeSignal
	TypeDictionary
	TypeArray
	TypePackedByteArray
	TypePackedInt32Array
	TypePackedInt64Array
	TypePackedFloat32Array
	TypePackedFloat64Array
	TypePackedStringArray
	TypePackedVector2Array
	TypePackedVector3Array
	TypePackedColorArray
	TypePackedVector4Array
)

var typeNames = [...]string{
	TypeNil:                "NIL",
	TypeBool:               "BOOL",
	TypeInt:                "INT",
	TypeFloat:              "FLOAT",
	TypeString:             "STRING",
	TypeVector2:            "VECTOR2",
	TypeVector2i:           "VECTOR2I",
	TypeRect2:              "RECT2",
	TypeRect2i:             "RECT2I",
	TypeVector3:            "VECTOR3",
	TypeVector3i:           "VECTOR3I",
	TypeTransform2D:        "TRANSFORM2D",
	TypeVector4:            "VECTOR4",
	TypeVector4i:           "VECTOR4I",
	TypePlane:              "PLANE",
	TypeQuaternion:         "QUATERNION",
	TypeAABB:               "AABB",
	TypeBasis:              "BASIS",
	TypeTransform3D:        "TRANSFORM3D",
	TypeProjection:         "PROJECTION",
	TypeColor:              "COLOR",
	TypeStringName:         "STRING_NAME",
	TypeNodePath:           "NODE_PATH",
	TypeRID:                "RID",
	TypeObject:             "OBJECT",
	TypeCallable:           "CALLABLE",
	TypeSignal:             "SIGNAL",
	TypeDictionary:         "DICTIONARY",
	TypeArray:              "ARRAY",
	TypePackedByteArray:    "PACKED_BYTE_ARRAY",
	TypePackedInt32Array:   "PACKED_INT32_ARRAY",
	TypePackedInt64Array:   "PACKED_INT64_ARRAY",
	TypePackedFloat32Array: "PACKED_FLOAT32_ARRAY",
	TypePackedFloat64Array: "PACKED_FLOAT64_ARRAY",
	TypePackedStringArray:  "PACKED_STRING_ARRAY",
	TypePackedVector2Array: "PACKED_VECTOR2_ARRAY",
	TypePackedVector3Array: "PACKED_VECTOR3_ARRAY",
	TypePackedColorArray:   "PACKED_COLOR_ARRAY",
	TypePackedVector4Array: "PACKED_VECTOR4_ARRAY",
}

// String returns the host's name for the tag, or the number for unknown tags.
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return strconv.Itoa(int(t))
}

// ParseType accepts either a tag number ("2") or a host name ("INT", "int").
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Type(n), nil
	}
	upper := strings.ToUpper(s)
	for i, name := range typeNames {
		if name == upper {
			return Type(i), nil
		}
	}
	return 0, errors.Newf("unknown variant type %q", s)
}

// UnmarshalJSON accepts a tag number or a tag name.
func (t *Type) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Type(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "unmarshal variant type")
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML accepts a tag number or a tag name.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: variant type must be a scalar", node.Line)
	}
	parsed, err := ParseType(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*t = parsed
	return nil
}
