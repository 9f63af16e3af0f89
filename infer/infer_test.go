package infer

import (
	"encoding/json"
	"math"
	"net"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/register"
	"github.com/siegeai/schemalike/schema"
)

func assertSameJSON(t *testing.T, expected, actual schema.Schema) {
	t.Helper()
	e, err := json.Marshal(expected)
	require.NoError(t, err)
	a, err := json.Marshal(actual)
	require.NoError(t, err)
	assert.JSONEq(t, string(e), string(a))
}

func req(t *testing.T, s schema.Schema) *schema.MemberTag {
	t.Helper()
	m, err := schema.Req(s)
	require.NoError(t, err)
	return m
}

func TestSthLikeObject(t *testing.T) {
	actual, err := SthLike(jsontype.Object{
		{Key: "foo", Value: 3},
		{Key: "asd", Value: nil},
	})
	require.NoError(t, err)

	expected, err := schema.Record(jsontype.Object{
		{Key: "foo", Value: req(t, schema.Int())},
		{Key: "asd", Value: req(t, schema.Null)},
	})
	require.NoError(t, err)
	assertSameJSON(t, expected, actual)
}

func TestSthLikeArray(t *testing.T) {
	actual, err := SthLike([]any{1, 2.3, "foo", true, nil})
	require.NoError(t, err)

	expected, err := schema.Tuple(
		req(t, schema.Int()),
		req(t, schema.Float()),
		req(t, schema.Str()),
		req(t, schema.Bool),
		req(t, schema.Null),
	)
	require.NoError(t, err)
	assertSameJSON(t, expected, actual)
}

func TestSthLikeLeaves(t *testing.T) {
	cases := []struct {
		name     string
		val      any
		expected schema.Schema
	}{
		{"nil", nil, schema.Null},
		{"undefined", jsontype.Undefined, schema.Null},
		{"nil map", map[string]any(nil), schema.Null},
		{"true", true, schema.Bool},
		{"false", false, schema.Bool},
		{"NaN", math.NaN(), schema.Float()},
		{"Inf", math.Inf(1), schema.Float()},
		{"0", 0, schema.Int()},
		{"-1.1", -1.1, schema.Float()},
		{"213", 213, schema.Int()},
		{"whole float", 3.0, schema.Int()},
		{"uint8", uint8(7), schema.Int()},
		{"number literal", json.Number("1e2"), schema.Int()},
		{"fractional literal", json.Number("0.5"), schema.Float()},
		{"empty string", "", schema.Str()},
		{"string", "foo", schema.Str()},
		{"date-time", time.Now().UTC().Format("2006-01-02T15:04:05.000Z"), schema.DateTime},
		{"time", time.Date(2020, 1, 2, 3, 4, 5, 6e6, time.UTC), schema.DateTime},
		{"URL", "http://xx.xx/abc-d/e?123&x=3", schema.URL},
		{"e-mail without TLD", "asd@example", schema.Str()},
		{"e-mail with TLD", "asd@example.com", schema.Email},
		{"IPv4", "1.1.1.1", schema.IPv4},
		{"net.IP", net.ParseIP("10.0.0.1"), schema.IPv4},
		{"IPv6", "2001:0db8:0000:0000:0000:ff00:0042:8329", schema.IPv6},
		{"UUID", "123e4567-e89b-12d3-a456-426655440000", schema.UUID},
		{"uuid.UUID", uuid.MustParse("123e4567-e89b-12d3-a456-426655440000"), schema.UUID},
		{"UUID upper case", "123E4567-E89B-12D3-A456-426655440000", schema.UUID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := SthLike(tc.val)
			require.NoError(t, err)
			assertSameJSON(t, tc.expected, actual)
		})
	}
}

func TestSthLikeDetectorOrder(t *testing.T) {
	// scheme-like prefixes win over the IPv6 detector
	s, err := SthLike("fe80::1")
	require.NoError(t, err)
	assert.Same(t, schema.URL, s)

	s, err = SthLike("HTTP://example.com")
	require.NoError(t, err)
	assert.Equal(t, schema.KindString, s.Kind())

	s, err = SthLike("2020-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, schema.KindString, s.Kind())
}

func TestSthLikePassesRegisteredSchemas(t *testing.T) {
	str := register.AsSchema(schema.Str("len >= 5"))
	s, err := SthLike(str)
	require.NoError(t, err)
	assert.Same(t, str, s)

	tu, err := SthLike([]any{true, 2, str})
	require.NoError(t, err)
	items := tu.(*schema.TupleSchema).Items
	require.Len(t, items, 3)
	assert.Same(t, str, items[2])

	rec, err := SthLike(map[string]any{"a": map[string]any{"b": str}})
	require.NoError(t, err)
	inner, ok := rec.(*schema.RecordSchema).Property("a")
	require.True(t, ok)
	b, ok := inner.(*schema.RecordSchema).Property("b")
	require.True(t, ok)
	assert.Same(t, str, b)
}

func TestSthLikeKeepsRegisteredTags(t *testing.T) {
	opt, err := schema.Opt(schema.Bool)
	require.NoError(t, err)
	register.AsTag(opt)

	rec, err := SthLike(jsontype.Object{
		{Key: "id", Value: 1},
		{Key: "flag", Value: opt},
	})
	require.NoError(t, err)
	r := rec.(*schema.RecordSchema)
	assert.Equal(t, []string{"id"}, r.Required)
	flag, ok := r.Property("flag")
	require.True(t, ok)
	assert.Same(t, schema.Bool, flag)

	tu, err := SthLike([]any{1, opt})
	require.NoError(t, err)
	assert.Equal(t, 1, tu.(*schema.TupleSchema).MinItems)
	assert.Equal(t, 2, tu.(*schema.TupleSchema).MaxItems)
}

func TestSthLikeStruct(t *testing.T) {
	type address struct {
		City string `json:"city"`
		Zip  string `json:"zip,omitempty"`
	}
	type user struct {
		ID      uuid.UUID `json:"id"`
		Email   string    `json:"email"`
		Age     int       `json:"age"`
		Address *address  `json:"address"`
		secret  string
	}

	s, err := SthLike(user{
		ID:      uuid.New(),
		Email:   "someone@example.com",
		Age:     42,
		Address: &address{City: "Oslo"},
		secret:  "x",
	})
	require.NoError(t, err)

	bs, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"id": {"type": "string", "format": "uuid"},
			"email": {"type": "string", "format": "email"},
			"age": {"type": "integer"},
			"address": {
				"type": "object",
				"properties": {"city": {"type": "string"}},
				"required": ["city"],
				"additionalProperties": false
			}
		},
		"required": ["id", "email", "age", "address"],
		"additionalProperties": false
	}`, string(bs))
}

func TestSthLikeUnrecognized(t *testing.T) {
	_, err := SthLike(func() {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnrecognized))
	assert.Contains(t, err.Error(), "SthLike(example): don't know how to create schema for")

	_, err = SthLike(map[string]any{"a": []any{make(chan int)}})
	assert.True(t, errors.Is(err, ErrUnrecognized))

	_, err = SthLike(map[int]string{1: "a"})
	assert.True(t, errors.Is(err, ErrUnrecognized))
}
