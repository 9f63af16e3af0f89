// Package jsontype classifies arbitrary Go values by the JSON shape they would take.
//
// The predicates overlap for a few representations (a json.Number is also a string
// kind, a struct may implement encoding.TextMarshaler), so callers that need a single
// answer should use Classify, which checks null, boolean, number, string, array and
// object in that order and returns the first match.
package jsontype

import (
	"encoding"
	"encoding/json"
	"reflect"
)

type Type int

const (
	TypeUnknown Type = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}
	return "unknown"
}

type undefined struct{}

// Undefined stands for an absent value. It is null-like and encodes as null.
var Undefined any = undefined{}

func (undefined) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Sequence is implemented by indexable values that are not slices or arrays.
type Sequence interface {
	Len() int
	At(i int) any
}

// Classify returns the first matching shape in priority order.
func Classify(x any) Type {
	switch {
	case IsNullLike(x):
		return TypeNull
	case IsBooleanLike(x):
		return TypeBoolean
	case IsNumberLike(x):
		return TypeNumber
	case IsStringLike(x):
		return TypeString
	case IsArrayLike(x):
		return TypeArray
	case IsObjectLike(x):
		return TypeObject
	}
	return TypeUnknown
}

// IsNullLike reports whether x encodes as JSON null: nil, a nil pointer, map, slice
// or interface, or Undefined.
func IsNullLike(x any) bool {
	if x == nil {
		return true
	}
	if _, ok := x.(undefined); ok {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func IsBooleanLike(x any) bool {
	return x != nil && reflect.ValueOf(x).Kind() == reflect.Bool
}

// IsNumberLike includes NaN and infinities.
func IsNumberLike(x any) bool {
	if x == nil {
		return false
	}
	if _, ok := x.(json.Number); ok {
		return true
	}
	switch reflect.ValueOf(x).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsStringLike is true for string kinds and for values that marshal themselves as
// text (time.Time, uuid.UUID, net.IP).
func IsStringLike(x any) bool {
	if x == nil || IsNumberLike(x) {
		return false
	}
	if reflect.ValueOf(x).Kind() == reflect.String {
		return true
	}
	return isText(x)
}

func IsArrayLike(x any) bool {
	if IsNullLike(x) || isText(x) {
		return false
	}
	switch x.(type) {
	case Object:
		return false
	case Sequence:
		return true
	}
	switch reflect.ValueOf(x).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// IsObjectLike is true for Object, string-keyed maps and structs.
func IsObjectLike(x any) bool {
	if IsNullLike(x) || isText(x) {
		return false
	}
	switch x.(type) {
	case Object:
		return true
	case Sequence:
		return false
	}
	v := reflect.ValueOf(x)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		return v.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}

func isText(x any) bool {
	if IsNullLike(x) {
		return false
	}
	_, ok := x.(encoding.TextMarshaler)
	return ok
}
