// Package infer builds a schema that describes an example value.
package infer

import (
	"encoding"
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/register"
	"github.com/siegeai/schemalike/schema"
)

// LikeCall is the call shape quoted by inference errors.
const LikeCall = "SthLike(example)"

// ErrUnrecognized marks examples that are not JSON-shaped.
var ErrUnrecognized = errors.New("infer: unrecognized example")

// Fixed heuristics, tried in this order. They are not RFC exact.
var detectors = []struct {
	re     *regexp.Regexp
	schema *schema.FormatSchema
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`), schema.DateTime},
	{regexp.MustCompile(`^[a-z][a-z0-9+.-]*:`), schema.URL},
	{regexp.MustCompile(`^.{1,30}@.{1,20}\..{1,4}$`), schema.Email},
	{regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`), schema.IPv4},
	{regexp.MustCompile(`(?i)^(?:[0-9a-f]{0,4}:){2,7}[0-9a-f]{1,4}$`), schema.IPv6},
	{regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`), schema.UUID},
}

// isoMillis is the layout the date-time detector recognizes.
const isoMillis = "2006-01-02T15:04:05.000Z"

// SthLike returns a schema describing example. Registered schemas are returned as is
// and registered member tags inside arrays and objects are kept, so examples may mix
// data with finished schemas.
func SthLike(example any) (schema.Schema, error) {
	if register.IsRegistered(example) {
		return example.(schema.Schema), nil
	}

	switch jsontype.Classify(example) {
	case jsontype.TypeNull:
		return schema.Null, nil
	case jsontype.TypeBoolean:
		return schema.Bool, nil
	case jsontype.TypeNumber:
		if isIntegral(example) {
			return schema.Int(), nil
		}
		return schema.Float(), nil
	case jsontype.TypeString:
		return likeString(text(example)), nil
	case jsontype.TypeArray:
		return likeArray(example)
	case jsontype.TypeObject:
		return likeObject(example)
	}

	err := errors.Newf("%s: don't know how to create schema for %v", LikeCall, example)
	return nil, errors.Mark(err, ErrUnrecognized)
}

func likeString(s string) schema.Schema {
	for _, d := range detectors {
		if d.re.MatchString(s) {
			return d.schema
		}
	}
	return schema.Str()
}

func likeArray(example any) (schema.Schema, error) {
	es := jsontype.Elements(example)
	members := make([]any, len(es))
	for i, e := range es {
		m, err := member(e)
		if err != nil {
			return nil, err
		}
		members[i] = m
	}
	return schema.Tuple(members)
}

func likeObject(example any) (schema.Schema, error) {
	entries := jsontype.Entries(example)
	members := make(jsontype.Object, len(entries))
	for i, e := range entries {
		m, err := member(e.Value)
		if err != nil {
			return nil, err
		}
		members[i] = jsontype.Member{Key: e.Key, Value: m}
	}
	return schema.Record(members)
}

func member(x any) (*schema.MemberTag, error) {
	if register.IsTagged(x) {
		return x.(*schema.MemberTag), nil
	}
	s, err := SthLike(x)
	if err != nil {
		return nil, err
	}
	return schema.Req(s)
}

// isIntegral tests the value, not the declared type: 3.0 is integral, NaN and the
// infinities are not.
func isIntegral(x any) bool {
	if n, ok := x.(json.Number); ok {
		f, err := n.Float64()
		return err == nil && isWhole(f)
	}
	v := reflect.ValueOf(x)
	switch {
	case v.CanInt(), v.CanUint():
		return true
	case v.CanFloat():
		return isWhole(v.Float())
	}
	return false
}

func isWhole(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

func text(x any) string {
	switch v := x.(type) {
	case time.Time:
		return v.UTC().Format(isoMillis)
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return ""
		}
		return string(b)
	}
	return reflect.ValueOf(x).String()
}
