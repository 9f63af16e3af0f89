package schema

import (
	"github.com/siegeai/schemalike/jsontype"
)

func put(o jsontype.Object, key string, v any) jsontype.Object {
	return append(o, jsontype.Member{Key: key, Value: v})
}

func putInt(o jsontype.Object, key string, v *int) jsontype.Object {
	if v == nil {
		return o
	}
	return put(o, key, *v)
}

func putFloat(o jsontype.Object, key string, v *float64) jsontype.Object {
	if v == nil {
		return o
	}
	return put(o, key, *v)
}

func (s *AnySchema) MarshalJSON() ([]byte, error) {
	return jsontype.Object{}.MarshalJSON()
}

func (s *NullSchema) MarshalJSON() ([]byte, error) {
	return jsontype.Object{{Key: "type", Value: "null"}}.MarshalJSON()
}

func (s *BooleanSchema) MarshalJSON() ([]byte, error) {
	return jsontype.Object{{Key: "type", Value: "boolean"}}.MarshalJSON()
}

func (s *StringSchema) MarshalJSON() ([]byte, error) {
	o := jsontype.Object{{Key: "type", Value: "string"}}
	o = putInt(o, "minLength", s.MinLength)
	o = putInt(o, "maxLength", s.MaxLength)
	return o.MarshalJSON()
}

func (s *FormatSchema) MarshalJSON() ([]byte, error) {
	return jsontype.Object{
		{Key: "type", Value: "string"},
		{Key: "format", Value: s.Format},
	}.MarshalJSON()
}

func (s *NumericSchema) MarshalJSON() ([]byte, error) {
	t := "number"
	if s.kind == KindInteger {
		t = "integer"
	}
	o := jsontype.Object{{Key: "type", Value: t}}
	o = putFloat(o, "minimum", s.Minimum)
	o = putFloat(o, "exclusiveMinimum", s.ExclusiveMinimum)
	o = putFloat(o, "maximum", s.Maximum)
	o = putFloat(o, "exclusiveMaximum", s.ExclusiveMaximum)
	o = putFloat(o, "multipleOf", s.MultipleOf)
	return o.MarshalJSON()
}

func (s *RecordSchema) MarshalJSON() ([]byte, error) {
	props := make(jsontype.Object, len(s.Properties))
	for i, p := range s.Properties {
		props[i] = jsontype.Member{Key: p.Name, Value: p.Schema}
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	return jsontype.Object{
		{Key: "type", Value: "object"},
		{Key: "properties", Value: props},
		{Key: "required", Value: required},
		{Key: "additionalProperties", Value: false},
	}.MarshalJSON()
}

func (s *DictSchema) MarshalJSON() ([]byte, error) {
	o := jsontype.Object{
		{Key: "type", Value: "object"},
		{Key: "additionalProperties", Value: s.Values},
	}
	o = putInt(o, "minItems", s.MinItems)
	o = putInt(o, "maxItems", s.MaxItems)
	return o.MarshalJSON()
}

func (s *ListSchema) MarshalJSON() ([]byte, error) {
	o := jsontype.Object{{Key: "type", Value: "array"}}
	if s.Items != nil {
		o = put(o, "items", s.Items)
	}
	o = putInt(o, "minItems", s.MinItems)
	o = putInt(o, "maxItems", s.MaxItems)
	if s.UniqueItems {
		o = put(o, "uniqueItems", true)
	}
	return o.MarshalJSON()
}

func (s *TupleSchema) MarshalJSON() ([]byte, error) {
	items := s.Items
	if items == nil {
		items = []Schema{}
	}
	return jsontype.Object{
		{Key: "type", Value: "array"},
		{Key: "items", Value: items},
		{Key: "minItems", Value: s.MinItems},
		{Key: "maxItems", Value: s.MaxItems},
		{Key: "additionalItems", Value: false},
	}.MarshalJSON()
}

func (s *EnumSchema) MarshalJSON() ([]byte, error) {
	return jsontype.Object{{Key: "enum", Value: s.Values}}.MarshalJSON()
}

func (s *CombinatorSchema) MarshalJSON() ([]byte, error) {
	ss := s.Schemas
	if ss == nil {
		ss = []Schema{}
	}
	return jsontype.Object{{Key: s.kind.String(), Value: ss}}.MarshalJSON()
}

func (s *NotSchema) MarshalJSON() ([]byte, error) {
	return jsontype.Object{{Key: "not", Value: s.Schema}}.MarshalJSON()
}
