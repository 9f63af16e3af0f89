package apispec

import (
	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/siegeai/schemalike/schema"
)

// ToOpenAPI projects s onto an OpenAPI 3.0 schema object.
//
// OpenAPI 3.0 has neither a null type nor tuples: null becomes a nullable enum of
// null, a tuple becomes an array whose items are anyOf the member schemas with its
// exact length bounds, and alternatives including null collapse into nullable.
func ToOpenAPI(s schema.Schema) *openapi3.Schema {
	switch v := s.(type) {
	case *schema.AnySchema:
		return &openapi3.Schema{Nullable: true}
	case *schema.NullSchema:
		return &openapi3.Schema{Nullable: true, Enum: []any{nil}}
	case *schema.BooleanSchema:
		return openapi3.NewBoolSchema()
	case *schema.StringSchema:
		if negative(v.MaxLength) {
			return unsatisfiable()
		}
		o := openapi3.NewStringSchema()
		o.MinLength = minCount(v.MinLength)
		o.MaxLength = maxCount(v.MaxLength)
		return o
	case *schema.FormatSchema:
		return openapi3.NewStringSchema().WithFormat(v.Format)
	case *schema.NumericSchema:
		return number(v)
	case *schema.RecordSchema:
		o := openapi3.NewObjectSchema()
		for _, p := range v.Properties {
			o.Properties[p.Name] = ToOpenAPI(p.Schema).NewRef()
		}
		o.Required = append([]string(nil), v.Required...)
		closed := false
		o.AdditionalProperties = openapi3.AdditionalProperties{Has: &closed}
		return o
	case *schema.DictSchema:
		if negative(v.MaxItems) {
			return unsatisfiable()
		}
		o := openapi3.NewObjectSchema()
		o.AdditionalProperties = openapi3.AdditionalProperties{Schema: ToOpenAPI(v.Values).NewRef()}
		o.MinProps = minCount(v.MinItems)
		o.MaxProps = maxCount(v.MaxItems)
		return o
	case *schema.ListSchema:
		if negative(v.MaxItems) {
			return unsatisfiable()
		}
		items := &openapi3.Schema{}
		if v.Items != nil {
			items = ToOpenAPI(v.Items)
		}
		o := openapi3.NewArraySchema().WithItems(items)
		o.MinItems = minCount(v.MinItems)
		o.MaxItems = maxCount(v.MaxItems)
		o.UniqueItems = v.UniqueItems
		return o
	case *schema.TupleSchema:
		return tuple(v)
	case *schema.EnumSchema:
		o := &openapi3.Schema{Enum: make([]any, len(v.Values))}
		for i, e := range v.Values {
			o.Enum[i] = plain(e)
			if e == nil {
				o.Nullable = true
			}
		}
		return o
	case *schema.CombinatorSchema:
		return combinator(v)
	case *schema.NotSchema:
		return &openapi3.Schema{Not: ToOpenAPI(v.Schema).NewRef()}
	}
	return &openapi3.Schema{}
}

func number(v *schema.NumericSchema) *openapi3.Schema {
	o := openapi3.NewFloat64Schema()
	if v.Kind() == schema.KindInteger {
		o = openapi3.NewIntegerSchema()
	}
	o.Format = ""
	switch {
	case v.Minimum != nil:
		o.Min = float64Ptr(*v.Minimum)
	case v.ExclusiveMinimum != nil:
		o.Min = float64Ptr(*v.ExclusiveMinimum)
		o.ExclusiveMin = true
	}
	switch {
	case v.Maximum != nil:
		o.Max = float64Ptr(*v.Maximum)
	case v.ExclusiveMaximum != nil:
		o.Max = float64Ptr(*v.ExclusiveMaximum)
		o.ExclusiveMax = true
	}
	if v.MultipleOf != nil {
		o.MultipleOf = float64Ptr(*v.MultipleOf)
	}
	return o
}

func tuple(v *schema.TupleSchema) *openapi3.Schema {
	members := distinct(v.Items)
	var items *openapi3.Schema
	switch len(members) {
	case 0:
		items = &openapi3.Schema{}
	case 1:
		items = members[0].Value
	default:
		items = &openapi3.Schema{AnyOf: members}
	}

	o := openapi3.NewArraySchema().WithItems(items)
	o.MinItems = minCount(&v.MinItems)
	o.MaxItems = maxCount(&v.MaxItems)
	return o
}

func combinator(v *schema.CombinatorSchema) *openapi3.Schema {
	if v.Kind() == schema.KindAllOf {
		return &openapi3.Schema{AllOf: refs(v.Schemas)}
	}

	var nullable bool
	rest := make([]schema.Schema, 0, len(v.Schemas))
	for _, s := range v.Schemas {
		if s.Kind() == schema.KindNull {
			nullable = true
			continue
		}
		rest = append(rest, s)
	}

	if nullable && len(rest) == 1 {
		o := ToOpenAPI(rest[0])
		o.Nullable = true
		return o
	}

	o := &openapi3.Schema{Nullable: nullable}
	if v.Kind() == schema.KindOneOf {
		o.OneOf = refs(rest)
	} else {
		o.AnyOf = refs(rest)
	}
	return o
}

func refs(ss []schema.Schema) openapi3.SchemaRefs {
	rs := make(openapi3.SchemaRefs, len(ss))
	for i, s := range ss {
		rs[i] = ToOpenAPI(s).NewRef()
	}
	return rs
}

// distinct projects ss, dropping members whose projection is already present.
func distinct(ss []schema.Schema) openapi3.SchemaRefs {
	seen := make(map[string]struct{}, len(ss))
	rs := make(openapi3.SchemaRefs, 0, len(ss))
	for _, s := range ss {
		o := ToOpenAPI(s)
		b, err := json.Marshal(o)
		if err == nil {
			if _, dup := seen[string(b)]; dup {
				continue
			}
			seen[string(b)] = struct{}{}
		}
		rs = append(rs, o.NewRef())
	}
	return rs
}

// unsatisfiable matches no value. It stands in for a negative maximum count, which
// OpenAPI's unsigned keywords cannot carry. The negated schema must not be empty:
// kin-openapi skips validation for schemas whose parts are all empty.
func unsatisfiable() *openapi3.Schema {
	return &openapi3.Schema{Not: ToOpenAPI(schema.Any).NewRef()}
}

func negative(v *int) bool {
	return v != nil && *v < 0
}

// minCount clamps a lower count bound at 0.
func minCount(v *int) uint64 {
	if v == nil || *v < 0 {
		return 0
	}
	return uint64(*v)
}

func maxCount(v *int) *uint64 {
	if v == nil {
		return nil
	}
	u := uint64(max(*v, 0))
	return &u
}

func float64Ptr(v float64) *float64 {
	return &v
}
