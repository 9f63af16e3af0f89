package infer

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/valyala/fastjson"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

// ParseSampleBodyBytes infers a schema from a JSON document. Object keys keep their
// document order and numbers keep their literal text.
func ParseSampleBodyBytes(b []byte) (schema.Schema, error) {
	v, err := DecodeSampleBodyBytes(b)
	if err != nil {
		return nil, err
	}
	return SthLike(v)
}

// DecodeSampleBodyBytes parses a JSON document into jsontype.Object, []any,
// json.Number, string, bool and nil values.
func DecodeSampleBodyBytes(b []byte) (any, error) {
	v, err := fastjson.ParseBytes(b)
	if err != nil {
		return nil, errors.Wrap(err, "parse sample body")
	}
	return ParseSampleBodyFastJson(v)
}

func ParseSampleBodyFastJson(v *fastjson.Value) (any, error) {
	return parseFastJsonValue(v)
}

func parseFastJsonValue(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return nil, err
		}
		return parseFastJsonObject(o)
	case fastjson.TypeArray:
		a, err := v.Array()
		if err != nil {
			return nil, err
		}
		return parseFastJsonArray(a)
	case fastjson.TypeString:
		s, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return string(s), nil
	case fastjson.TypeNumber:
		return json.Number(v.MarshalTo(nil)), nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeNull:
		return nil, nil
	}

	panic("should be unreachable")
}

func parseFastJsonObject(o *fastjson.Object) (jsontype.Object, error) {
	ms := make(jsontype.Object, 0, o.Len())

	var visitErr error
	o.Visit(func(key []byte, v *fastjson.Value) {
		if visitErr != nil {
			return
		}
		child, childErr := parseFastJsonValue(v)
		if childErr != nil {
			visitErr = childErr
			return
		}

		// a repeated key replaces the earlier value, as encoding/json does
		for i := range ms {
			if ms[i].Key == string(key) {
				ms[i].Value = child
				return
			}
		}
		ms = append(ms, jsontype.Member{Key: string(key), Value: child})
	})

	if visitErr != nil {
		return nil, visitErr
	}

	return ms, nil
}

func parseFastJsonArray(vs []*fastjson.Value) ([]any, error) {
	es := make([]any, len(vs))
	for i, v := range vs {
		e, err := parseFastJsonValue(v)
		if err != nil {
			return nil, err
		}
		es[i] = e
	}
	return es, nil
}
