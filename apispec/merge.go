package apispec

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

// Merge widens a and b into a schema that accepts what either accepts. It is used to
// fold the schemas of many observed samples into one.
func Merge(a, b schema.Schema) (schema.Schema, error) {
	if a == nil && b == nil {
		return nil, nil
	}
	if b == nil {
		return a, nil
	}
	if a == nil {
		return b, nil
	}
	if equal(a, b) {
		return a, nil
	}

	switch {
	case a.Kind() == schema.KindRecord && b.Kind() == schema.KindRecord:
		return mergeRecords(a.(*schema.RecordSchema), b.(*schema.RecordSchema))
	case a.Kind() == schema.KindTuple && b.Kind() == schema.KindTuple:
		return mergeTuples(a.(*schema.TupleSchema), b.(*schema.TupleSchema))
	case a.Kind() == schema.KindList && b.Kind() == schema.KindList:
		items, err := Merge(a.(*schema.ListSchema).Items, b.(*schema.ListSchema).Items)
		if err != nil {
			return nil, err
		}
		return schema.List(items)
	case a.Kind() == schema.KindDict && b.Kind() == schema.KindDict:
		values, err := Merge(a.(*schema.DictSchema).Values, b.(*schema.DictSchema).Values)
		if err != nil {
			return nil, err
		}
		return schema.Dict(values)
	case numeric(a) && numeric(b):
		if a.Kind() == schema.KindInteger && b.Kind() == schema.KindInteger {
			return schema.Int(), nil
		}
		return schema.Float(), nil
	case stringy(a) && stringy(b):
		return schema.Str(), nil
	case a.Kind() == b.Kind() && (a.Kind() == schema.KindBoolean || a.Kind() == schema.KindNull || a.Kind() == schema.KindAny):
		return a, nil
	}

	return mergeUnions(alternatives(a), alternatives(b))
}

func mergeRecords(a, b *schema.RecordSchema) (schema.Schema, error) {
	required := func(r *schema.RecordSchema, name string) bool {
		for _, n := range r.Required {
			if n == name {
				return true
			}
		}
		return false
	}

	members := make(jsontype.Object, 0, len(a.Properties)+len(b.Properties))
	for _, p := range a.Properties {
		s := p.Schema
		req := required(a, p.Name)
		if other, ok := b.Property(p.Name); ok {
			merged, err := Merge(s, other)
			if err != nil {
				return nil, err
			}
			s = merged
			req = req && required(b, p.Name)
		} else {
			req = false
		}
		tag, err := tagged(s, req)
		if err != nil {
			return nil, err
		}
		members = append(members, jsontype.Member{Key: p.Name, Value: tag})
	}
	for _, p := range b.Properties {
		if _, ok := a.Property(p.Name); ok {
			continue
		}
		tag, err := schema.Opt(p.Schema)
		if err != nil {
			return nil, err
		}
		members = append(members, jsontype.Member{Key: p.Name, Value: tag})
	}
	return schema.Record(members)
}

// mergeTuples merges position by position when both tuples have the same shape and
// falls back to a list of every merged item otherwise.
func mergeTuples(a, b *schema.TupleSchema) (schema.Schema, error) {
	if a.MinItems == b.MinItems && a.MaxItems == b.MaxItems && a.MinItems == a.MaxItems {
		members := make([]any, len(a.Items))
		for i := range a.Items {
			s, err := Merge(a.Items[i], b.Items[i])
			if err != nil {
				return nil, err
			}
			if members[i], err = schema.Req(s); err != nil {
				return nil, err
			}
		}
		return schema.Tuple(members...)
	}

	var items schema.Schema
	for _, s := range append(append([]schema.Schema(nil), a.Items...), b.Items...) {
		var err error
		if items, err = Merge(items, s); err != nil {
			return nil, err
		}
	}
	return schema.List(items)
}

// mergeUnions folds each alternative of b into the first compatible alternative of a,
// appending it when there is none.
func mergeUnions(as, bs []schema.Schema) (schema.Schema, error) {
	out := append([]schema.Schema(nil), as...)
	for _, s := range bs {
		folded := false
		for i, m := range out {
			if !compatible(m, s) {
				continue
			}
			merged, err := Merge(m, s)
			if err != nil {
				return nil, err
			}
			out[i] = merged
			folded = true
			break
		}
		if !folded {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return schema.AnyOf(out)
}

func alternatives(s schema.Schema) []schema.Schema {
	if c, ok := s.(*schema.CombinatorSchema); ok && c.Kind() == schema.KindAnyOf {
		return c.Schemas
	}
	return []schema.Schema{s}
}

func compatible(a, b schema.Schema) bool {
	switch {
	case equal(a, b):
		return true
	case numeric(a) && numeric(b), stringy(a) && stringy(b):
		return true
	}
	switch a.Kind() {
	case schema.KindRecord, schema.KindTuple, schema.KindList, schema.KindDict, schema.KindBoolean, schema.KindNull:
		return a.Kind() == b.Kind()
	}
	return false
}

func numeric(s schema.Schema) bool {
	return s.Kind() == schema.KindInteger || s.Kind() == schema.KindNumber
}

func stringy(s schema.Schema) bool {
	return s.Kind() == schema.KindString || s.Kind() == schema.KindFormat
}

func tagged(s schema.Schema, required bool) (*schema.MemberTag, error) {
	if required {
		return schema.Req(s)
	}
	return schema.Opt(s)
}

func equal(a, b schema.Schema) bool {
	if a == b {
		return true
	}
	x, err := json.Marshal(a)
	if err != nil {
		return false
	}
	y, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(x, y)
}
