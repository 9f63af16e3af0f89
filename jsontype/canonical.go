package jsontype

import (
	"bytes"
	"reflect"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
)

// Canonical converts x into the values encoding/json produces when decoding with
// UseNumber: map[string]any, []any, json.Number, string, bool and nil. Objects lose
// their member order. Values with their own MarshalJSON are taken at their word.
func Canonical(x any) (any, error) {
	if _, ok := x.(json.Marshaler); ok && !IsNullLike(x) {
		return canonicalLeaf(x)
	}
	switch Classify(x) {
	case TypeNull:
		return nil, nil
	case TypeBoolean:
		return reflect.ValueOf(x).Bool(), nil
	case TypeNumber, TypeString:
		return canonicalLeaf(x)
	case TypeArray:
		es := Elements(x)
		out := make([]any, len(es))
		for i, e := range es {
			c, err := Canonical(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case TypeObject:
		ms := Entries(x)
		out := make(map[string]any, len(ms))
		for _, m := range ms {
			c, err := Canonical(m.Value)
			if err != nil {
				return nil, err
			}
			out[m.Key] = c
		}
		return out, nil
	}
	return nil, errors.Newf("jsontype: %T has no JSON shape", x)
}

func canonicalLeaf(x any) (any, error) {
	b, err := json.Marshal(x)
	if err != nil {
		return nil, err
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
