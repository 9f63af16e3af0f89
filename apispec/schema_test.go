package apispec

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

func mustReq(t *testing.T, s schema.Schema) *schema.MemberTag {
	t.Helper()
	m, err := schema.Req(s)
	require.NoError(t, err)
	return m
}

func mustOpt(t *testing.T, s schema.Schema) *schema.MemberTag {
	t.Helper()
	m, err := schema.Opt(s)
	require.NoError(t, err)
	return m
}

func TestToOpenAPIPrimitives(t *testing.T) {
	s := ToOpenAPI(schema.Str("1 <= len < 10"))
	assert.Equal(t, openapi3.TypeString, s.Type)
	assert.Equal(t, uint64(1), s.MinLength)
	require.NotNil(t, s.MaxLength)
	assert.Equal(t, uint64(9), *s.MaxLength)

	i := ToOpenAPI(schema.Int("0 < x <= 5"))
	assert.Equal(t, openapi3.TypeInteger, i.Type)
	require.NotNil(t, i.Min)
	assert.Equal(t, 0.0, *i.Min)
	assert.True(t, i.ExclusiveMin)
	require.NotNil(t, i.Max)
	assert.Equal(t, 5.0, *i.Max)
	assert.False(t, i.ExclusiveMax)

	f := ToOpenAPI(schema.Float())
	assert.Equal(t, openapi3.TypeNumber, f.Type)
	assert.Empty(t, f.Format)

	n := ToOpenAPI(schema.Null)
	assert.True(t, n.Nullable)
	assert.Equal(t, []any{nil}, n.Enum)

	d := ToOpenAPI(schema.DateTime)
	assert.Equal(t, openapi3.TypeString, d.Type)
	assert.Equal(t, "date-time", d.Format)

	assert.Equal(t, openapi3.TypeBoolean, ToOpenAPI(schema.Bool).Type)
	assert.True(t, ToOpenAPI(schema.Any).Nullable)
}

func TestToOpenAPIRecord(t *testing.T) {
	r, err := schema.Record(jsontype.Object{
		{Key: "a", Value: mustReq(t, schema.Int())},
		{Key: "b", Value: mustOpt(t, schema.Str())},
	})
	require.NoError(t, err)

	o := ToOpenAPI(r)
	assert.Equal(t, openapi3.TypeObject, o.Type)
	assert.Len(t, o.Properties, 2)
	assert.Equal(t, openapi3.TypeInteger, o.Properties["a"].Value.Type)
	assert.Equal(t, openapi3.TypeString, o.Properties["b"].Value.Type)
	assert.Equal(t, []string{"a"}, o.Required)
	require.NotNil(t, o.AdditionalProperties.Has)
	assert.False(t, *o.AdditionalProperties.Has)
}

func TestToOpenAPIDictAndList(t *testing.T) {
	d, err := schema.Dict("len <= 3", schema.Int())
	require.NoError(t, err)
	o := ToOpenAPI(d)
	assert.Equal(t, openapi3.TypeObject, o.Type)
	require.NotNil(t, o.AdditionalProperties.Schema)
	assert.Equal(t, openapi3.TypeInteger, o.AdditionalProperties.Schema.Value.Type)
	require.NotNil(t, o.MaxProps)
	assert.Equal(t, uint64(3), *o.MaxProps)

	l, err := schema.List("uniq", schema.Bool)
	require.NoError(t, err)
	o = ToOpenAPI(l)
	assert.Equal(t, openapi3.TypeArray, o.Type)
	assert.True(t, o.UniqueItems)
	assert.Equal(t, openapi3.TypeBoolean, o.Items.Value.Type)

	l, err = schema.List()
	require.NoError(t, err)
	assert.NotNil(t, ToOpenAPI(l).Items)
}

func TestToOpenAPITuple(t *testing.T) {
	tu, err := schema.Tuple(mustReq(t, schema.Int()), mustReq(t, schema.Str()), mustReq(t, schema.Int()))
	require.NoError(t, err)

	o := ToOpenAPI(tu)
	assert.Equal(t, openapi3.TypeArray, o.Type)
	assert.Len(t, o.Items.Value.AnyOf, 2)
	assert.Equal(t, uint64(3), o.MinItems)
	require.NotNil(t, o.MaxItems)
	assert.Equal(t, uint64(3), *o.MaxItems)

	tu, err = schema.Tuple(mustReq(t, schema.Bool), mustOpt(t, schema.Bool))
	require.NoError(t, err)
	o = ToOpenAPI(tu)
	assert.Equal(t, openapi3.TypeBoolean, o.Items.Value.Type)
	assert.Equal(t, uint64(1), o.MinItems)
	assert.Equal(t, uint64(2), *o.MaxItems)
}

func TestToOpenAPINullableAlternatives(t *testing.T) {
	c, err := schema.OneOf(schema.Str(), schema.Null)
	require.NoError(t, err)
	o := ToOpenAPI(c)
	assert.Equal(t, openapi3.TypeString, o.Type)
	assert.True(t, o.Nullable)

	c, err = schema.AnyOf(schema.Str(), schema.Int(), schema.Null)
	require.NoError(t, err)
	o = ToOpenAPI(c)
	assert.True(t, o.Nullable)
	assert.Len(t, o.AnyOf, 2)

	c, err = schema.AllOf(schema.Str(), schema.Email)
	require.NoError(t, err)
	assert.Len(t, ToOpenAPI(c).AllOf, 2)

	n, err := schema.Not(schema.Null)
	require.NoError(t, err)
	assert.True(t, ToOpenAPI(n).Not.Value.Nullable)
}

func TestToOpenAPIEnum(t *testing.T) {
	e, err := schema.Enum("a", 1, nil)
	require.NoError(t, err)
	o := ToOpenAPI(e)
	assert.Equal(t, []any{"a", 1.0, nil}, o.Enum)
	assert.True(t, o.Nullable)
}

func TestToOpenAPINegativeCounts(t *testing.T) {
	s := schema.Str("len < 0")
	require.NotNil(t, s.MaxLength)
	require.Equal(t, -1, *s.MaxLength)

	o := ToOpenAPI(s)
	assert.Nil(t, o.MaxLength)
	require.NotNil(t, o.Not)
	v := NewVisitor(s)
	assert.False(t, v.Matches(""))
	assert.False(t, v.Matches("abc"))
	assert.False(t, v.Matches(nil))

	l, err := schema.List("size < 0", schema.Bool)
	require.NoError(t, err)
	assert.NotNil(t, ToOpenAPI(l).Not)
	assert.False(t, NewVisitor(l).Matches([]any{}))

	d, err := schema.Dict("size < 0", schema.Bool)
	require.NoError(t, err)
	assert.NotNil(t, ToOpenAPI(d).Not)
	assert.False(t, NewVisitor(d).Matches(map[string]any{}))

	n := -4
	assert.Equal(t, uint64(0), minCount(&n))
	assert.Equal(t, uint64(0), minCount(nil))
	assert.Nil(t, maxCount(nil))
}
