package schema

import (
	"reflect"

	"github.com/siegeai/schemalike/jsontype"
)

// IsSchema reports whether x is a usable schema. Values of this package's types must
// have been built by a constructor. Decoded JSON (map[string]any or jsontype.Object)
// is recognized structurally: an object with a string "type", the empty object, or a
// single-key object holding "not", "allOf", "anyOf", "oneOf" or a non-empty "enum".
func IsSchema(x any) bool {
	if s, ok := x.(Schema); ok {
		return valid(s)
	}

	var ms []jsontype.Member
	switch m := x.(type) {
	case map[string]any:
		ms = jsontype.Entries(m)
	case jsontype.Object:
		ms = m
	default:
		return false
	}

	for _, m := range ms {
		if m.Key == "type" {
			if _, ok := m.Value.(string); ok {
				return true
			}
		}
	}
	if len(ms) == 0 {
		return true
	}
	if len(ms) != 1 {
		return false
	}
	switch v := ms[0].Value; ms[0].Key {
	case "not":
		return IsSchema(v)
	case "allOf", "anyOf", "oneOf":
		return isSchemaArr(v)
	case "enum":
		es := jsontype.Elements(v)
		return len(es) > 0 && isPrimitiveArr(es)
	}
	return false
}

func valid(s Schema) bool {
	if s == nil {
		return false
	}
	if v := reflect.ValueOf(s); v.Kind() == reflect.Pointer && v.IsNil() {
		return false
	}
	return s.Kind() != KindInvalid
}

// IsMemberTag reports whether x is a tag produced by Req or Opt.
func IsMemberTag(x any) bool {
	t, ok := x.(*MemberTag)
	return ok && t != nil && t.tagged && valid(t.Schema)
}

func isSchemaArr(x any) bool {
	if !jsontype.IsArrayLike(x) {
		return false
	}
	for _, e := range jsontype.Elements(x) {
		if !IsSchema(e) {
			return false
		}
	}
	return true
}

func isPrimitive(x any) bool {
	switch jsontype.Classify(x) {
	case jsontype.TypeNull, jsontype.TypeBoolean, jsontype.TypeNumber, jsontype.TypeString:
		return true
	}
	return false
}

func isPrimitiveArr(xs []any) bool {
	for _, x := range xs {
		if !isPrimitive(x) {
			return false
		}
	}
	return true
}

// flatten expands array-like arguments by one level.
func flatten(args []any) []any {
	res := make([]any, 0, len(args))
	for _, a := range args {
		if rv := reflect.ValueOf(a); rv.Kind() == reflect.Slice && rv.IsNil() {
			// a nil slice holds no items
			continue
		}
		if jsontype.IsArrayLike(a) {
			res = append(res, jsontype.Elements(a)...)
		} else {
			res = append(res, a)
		}
	}
	return res
}
