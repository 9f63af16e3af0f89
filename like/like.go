// Package like is the entry point for building schemas by hand and by example.
//
// Everything built here is registered, so a schema made with like.Str or returned by
// like.Like can be dropped into an example and is kept as is:
//
//	s, err := like.Like(map[string]any{
//		"id":   like.UUID,
//		"name": like.Str("1 <= len <= 64"),
//		"tags": []any{"a", "b"},
//	})
package like

import (
	"github.com/siegeai/schemalike/infer"
	"github.com/siegeai/schemalike/register"
	"github.com/siegeai/schemalike/schema"
)

var (
	strFactory    = register.WrapFactory(schema.StrCall, noErr(schema.Str))
	intFactory    = register.WrapFactory(schema.IntCall, noErr(schema.Int))
	floatFactory  = register.WrapFactory(schema.FloatCall, noErr(schema.Float))
	recordFactory = register.WrapFactory(schema.RecordCall, func(args ...any) (*schema.RecordSchema, error) {
		var members any
		if len(args) > 0 {
			members = args[0]
		}
		return schema.Record(members)
	})
	dictFactory  = register.WrapFactory(schema.DictCall, schema.Dict)
	listFactory  = register.WrapFactory(schema.ListCall, schema.List)
	tupleFactory = register.WrapFactory(schema.TupleCall, schema.Tuple)
	enumFactory  = register.WrapFactory(schema.EnumCall, schema.Enum)
	allOfFactory = register.WrapFactory(schema.AllOfCall, schema.AllOf)
	anyOfFactory = register.WrapFactory(schema.AnyOfCall, schema.AnyOf)
	oneOfFactory = register.WrapFactory(schema.OneOfCall, schema.OneOf)
	notFactory   = register.WrapFactory(schema.NotCall, func(args ...schema.Schema) (*schema.NotSchema, error) {
		var s schema.Schema
		if len(args) > 0 {
			s = args[0]
		}
		return schema.Not(s)
	})
	likeFactory = register.WrapFactory(infer.LikeCall, func(args ...any) (schema.Schema, error) {
		var example any
		if len(args) > 0 {
			example = args[0]
		}
		return infer.SthLike(example)
	})

	reqTagger = register.WrapTagger(schema.ReqCall, schema.Req)
	optTagger = register.WrapTagger(schema.OptCall, schema.Opt)
)

func noErr[S schema.Schema](f func(...string) S) func(...string) (S, error) {
	return func(os ...string) (S, error) { return f(os...), nil }
}

// Fixed schemas, all registered.
var (
	Any          = register.AsSchema(schema.Any)
	Null         = register.AsSchema(schema.Null)
	Bool         = register.AsSchema(schema.Bool)
	Date         = register.AsSchema(schema.Date)
	Time         = register.AsSchema(schema.Time)
	DateTime     = register.AsSchema(schema.DateTime)
	URI          = register.AsSchema(schema.URI)
	URIReference = register.AsSchema(schema.URIReference)
	URITemplate  = register.AsSchema(schema.URITemplate)
	URL          = register.AsSchema(schema.URL)
	Email        = register.AsSchema(schema.Email)
	Hostname     = register.AsSchema(schema.Hostname)
	IPv4         = register.AsSchema(schema.IPv4)
	IPv6         = register.AsSchema(schema.IPv6)
	Regex        = register.AsSchema(schema.Regex)
	UUID         = register.AsSchema(schema.UUID)
)

// Like infers a schema from example. See infer.SthLike.
func Like(example any) (schema.Schema, error) {
	return likeFactory.Call(example)
}

func Str(opts ...string) *schema.StringSchema {
	s, _ := strFactory.Call(opts...)
	return s
}

func Int(opts ...string) *schema.NumericSchema {
	s, _ := intFactory.Call(opts...)
	return s
}

func Float(opts ...string) *schema.NumericSchema {
	s, _ := floatFactory.Call(opts...)
	return s
}

func Req(s schema.Schema) (*schema.MemberTag, error) {
	return reqTagger.Call(s)
}

func Opt(s schema.Schema) (*schema.MemberTag, error) {
	return optTagger.Call(s)
}

func Record(members any) (*schema.RecordSchema, error) {
	return recordFactory.Call(members)
}

func Dict(args ...any) (*schema.DictSchema, error) {
	return dictFactory.Call(args...)
}

func List(args ...any) (*schema.ListSchema, error) {
	return listFactory.Call(args...)
}

func Tuple(members ...any) (*schema.TupleSchema, error) {
	return tupleFactory.Call(members...)
}

func Enum(items ...any) (*schema.EnumSchema, error) {
	return enumFactory.Call(items...)
}

func AllOf(schemas ...any) (*schema.CombinatorSchema, error) {
	return allOfFactory.Call(schemas...)
}

func AnyOf(schemas ...any) (*schema.CombinatorSchema, error) {
	return anyOfFactory.Call(schemas...)
}

func OneOf(schemas ...any) (*schema.CombinatorSchema, error) {
	return oneOfFactory.Call(schemas...)
}

func Not(s schema.Schema) (*schema.NotSchema, error) {
	return notFactory.Call(s)
}

// Must returns v or panics with err. It is meant for schemas declared as package
// variables.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Factories lists the call shapes of the exported factories and taggers.
func Factories() []string {
	return []string{
		strFactory.Name(), intFactory.Name(), floatFactory.Name(),
		recordFactory.Name(), dictFactory.Name(), listFactory.Name(), tupleFactory.Name(),
		enumFactory.Name(), allOfFactory.Name(), anyOfFactory.Name(), oneOfFactory.Name(),
		notFactory.Name(), reqTagger.Name(), optTagger.Name(), likeFactory.Name(),
	}
}
