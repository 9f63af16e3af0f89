package schema

import (
	"encoding"
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/opts"
)

func parseOpts(os []string) []opts.Opt {
	return opts.Parse(strings.Join(os, ","))
}

func asSchema(x any) (Schema, bool) {
	s, ok := x.(Schema)
	if !ok || !valid(s) {
		return nil, false
	}
	return s, true
}

// Str builds a string schema. Length bounds come from a range bound to len (or
// length) and are rounded inwards to whole numbers.
func Str(os ...string) *StringSchema {
	s := &StringSchema{header: header{KindString}}
	if r, ok := opts.FindRange(parseOpts(os), "len", "length"); ok {
		s.MinLength, s.MaxLength = intBounds(r)
	}
	return s
}

// Int builds an integer schema from a range bound to x and a multiple bound to n.
// Bounds are kept verbatim.
func Int(os ...string) *NumericSchema {
	return numeric(KindInteger, os)
}

// Float is Int for "number".
func Float(os ...string) *NumericSchema {
	return numeric(KindNumber, os)
}

func numeric(k Kind, os []string) *NumericSchema {
	s := &NumericSchema{header: header{k}}
	ps := parseOpts(os)
	if r, ok := opts.FindRange(ps, "x"); ok {
		if r.Min != nil {
			v := *r.Min
			if r.ExclusiveMin {
				s.ExclusiveMinimum = &v
			} else {
				s.Minimum = &v
			}
		}
		if r.Max != nil {
			v := *r.Max
			if r.ExclusiveMax {
				s.ExclusiveMaximum = &v
			} else {
				s.Maximum = &v
			}
		}
	}
	if m, ok := opts.FindMult(ps, "n"); ok {
		v := m.Multiplier
		s.MultipleOf = &v
	}
	return s
}

// Req tags s as a required member.
func Req(s Schema) (*MemberTag, error) {
	if !valid(s) {
		return nil, shapeError(ReqCall, "schema should be a schema")
	}
	return &MemberTag{Required: true, Schema: s, tagged: true}, nil
}

// Opt tags s as an optional member.
func Opt(s Schema) (*MemberTag, error) {
	if !valid(s) {
		return nil, shapeError(OptCall, "schema should be a schema")
	}
	return &MemberTag{Schema: s, tagged: true}, nil
}

// Record builds a closed object from tagged members. members is a jsontype.Object,
// which keeps its order, or a string-keyed map, whose keys are sorted.
func Record(members any) (*RecordSchema, error) {
	if !jsontype.IsObjectLike(members) {
		return nil, shapeError(RecordCall, "`members` should be an object")
	}

	entries := jsontype.Entries(members)
	for _, e := range entries {
		if !IsMemberTag(e.Value) {
			return nil, shapeError(RecordCall, "Some members are not tagged. %s", tagAdvice)
		}
	}

	r := &RecordSchema{
		header:     header{KindRecord},
		Properties: make([]Property, len(entries)),
		Required:   make([]string, 0, len(entries)),
	}
	for i, e := range entries {
		t := e.Value.(*MemberTag)
		r.Properties[i] = Property{Name: e.Key, Schema: t.Schema}
		if t.Required {
			r.Required = append(r.Required, e.Key)
		}
	}
	return r, nil
}

// Dict builds an open object whose values match the last argument. An optional
// leading option string bounds the member count through size, len or length.
func Dict(args ...any) (*DictSchema, error) {
	var spec string
	var items any
	switch len(args) {
	case 1:
		items = args[0]
	case 2:
		s, ok := args[0].(string)
		if !ok {
			return nil, shapeError(DictCall, "`opts` should be a string")
		}
		spec, items = s, args[1]
	default:
		return nil, shapeError(DictCall, "`schema` should be a schema")
	}

	values, ok := asSchema(items)
	if !ok {
		return nil, shapeError(DictCall, "`schema` should be a schema")
	}

	d := &DictSchema{header: header{KindDict}, Values: values}
	if r, ok := opts.FindRange(opts.Parse(spec), "size", "len", "length"); ok {
		d.MinItems, d.MaxItems = intBounds(r)
	}
	return d, nil
}

// List builds a homogeneous array. Both the option string and the items schema are
// optional; a second schema, or a slice of schemas, is rejected in favor of Tuple.
func List(args ...any) (*ListSchema, error) {
	var spec string
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			spec, args = s, args[1:]
		}
	}
	if len(args) > 1 {
		return nil, ambiguousError(ListCall, "`itemsSchema` should be a schema. Did you mean %s?", TupleCall)
	}

	l := &ListSchema{header: header{KindList}}
	if len(args) == 1 && args[0] != nil {
		if isSchemaArr(args[0]) {
			return nil, ambiguousError(ListCall, "`itemsSchema` should be a schema. Did you mean %s?", TupleCall)
		}
		items, ok := asSchema(args[0])
		if !ok {
			return nil, shapeError(ListCall, "`itemsSchema` should be a schema")
		}
		l.Items = items
	}

	ps := opts.Parse(spec)
	if r, ok := opts.FindRange(ps, "size", "len", "length"); ok {
		l.MinItems, l.MaxItems = intBounds(r)
	}
	l.UniqueItems = opts.HasUniq(ps)
	return l, nil
}

// Tuple builds a fixed-position array from tagged members. Arguments may be tags or
// slices of tags.
//
// An optional member that is followed by a required one cannot be left out without
// shifting the positions after it, so it becomes a required OneOf(schema, Null) slot.
// Only the optional members trailing the last required one stay optional.
func Tuple(members ...any) (*TupleSchema, error) {
	ms := flatten(members)
	for _, m := range ms {
		if !IsMemberTag(m) {
			return nil, shapeError(TupleCall, "every `member` should be a tagged schema. %s", tagAdvice)
		}
	}

	var required, optional []Schema
	for i := len(ms) - 1; i >= 0; i-- {
		m := ms[i].(*MemberTag)
		switch {
		case m.Required:
			required = append([]Schema{m.Schema}, required...)
		case len(required) > 0:
			nullable, err := OneOf(m.Schema, Null)
			if err != nil {
				return nil, err
			}
			required = append([]Schema{nullable}, required...)
		default:
			optional = append([]Schema{m.Schema}, optional...)
		}
	}

	return &TupleSchema{
		header:   header{KindTuple},
		Items:    append(append(make([]Schema, 0, len(ms)), required...), optional...),
		MinItems: len(required),
		MaxItems: len(required) + len(optional),
	}, nil
}

// Enum builds an enumeration of distinct primitive values. Arguments may be
// primitives or slices of primitives.
func Enum(items ...any) (*EnumSchema, error) {
	vs := flatten(items)
	if len(vs) == 0 {
		return nil, shapeError(EnumCall, "`items` should be nonempty")
	}
	if !isPrimitiveArr(vs) {
		return nil, shapeError(EnumCall, "`items` should contain only primitives")
	}

	seen := make(map[any]struct{}, len(vs))
	values := make([]any, len(vs))
	for i, v := range vs {
		if jsontype.IsNullLike(v) {
			v = nil
		}
		k := enumKey(v)
		if _, dup := seen[k]; dup {
			return nil, shapeError(EnumCall, "`items` should be unique")
		}
		seen[k] = struct{}{}
		values[i] = v
	}
	return &EnumSchema{header: header{KindEnum}, Values: values}, nil
}

type enumNumber float64

type enumNaN struct{}

// enumKey makes 1, int64(1) and 1.0 collide the way their JSON encodings would.
func enumKey(v any) any {
	switch jsontype.Classify(v) {
	case jsontype.TypeNumber:
		if f, ok := toFloat(v); ok {
			if math.IsNaN(f) {
				// NaN != NaN, so every NaN would get its own key
				return enumNaN{}
			}
			return enumNumber(f)
		}
	case jsontype.TypeString:
		if t, ok := v.(encoding.TextMarshaler); ok {
			if b, err := t.MarshalText(); err == nil {
				return string(b)
			}
		}
		return reflect.ValueOf(v).String()
	case jsontype.TypeBoolean:
		return reflect.ValueOf(v).Bool()
	}
	return v
}

func toFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}

func AllOf(schemas ...any) (*CombinatorSchema, error) {
	return combinator(KindAllOf, AllOfCall, schemas)
}

func AnyOf(schemas ...any) (*CombinatorSchema, error) {
	return combinator(KindAnyOf, AnyOfCall, schemas)
}

func OneOf(schemas ...any) (*CombinatorSchema, error) {
	return combinator(KindOneOf, OneOfCall, schemas)
}

func combinator(k Kind, call string, args []any) (*CombinatorSchema, error) {
	flat := flatten(args)
	ss := make([]Schema, len(flat))
	for i, x := range flat {
		s, ok := asSchema(x)
		if !ok {
			return nil, shapeError(call, "`schemaN` should be a schema or array of schemas")
		}
		ss[i] = s
	}
	return &CombinatorSchema{header: header{k}, Schemas: ss}, nil
}

func Not(s Schema) (*NotSchema, error) {
	if !valid(s) {
		return nil, shapeError(NotCall, "`schema` should be a schema")
	}
	return &NotSchema{header: header{KindNot}, Schema: s}, nil
}
