package infer

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

func TestParseObjectEmpty(t *testing.T) {
	bs := []byte("{}")
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)
	assert.Equal(t, schema.KindRecord, s.Kind())
}

func TestParseObjectOneFieldString(t *testing.T) {
	bs := []byte(`{"field": "string-val"}`)
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)
	f, ok := s.(*schema.RecordSchema).Property("field")
	assert.True(t, ok)
	assert.Equal(t, schema.KindString, f.Kind())
}

func TestParseObjectOneFieldNumber(t *testing.T) {
	bs := []byte(`{"field": 1234, "other": 12.5, "exp": 1e3}`)
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)
	r := s.(*schema.RecordSchema)
	f, _ := r.Property("field")
	assert.Equal(t, schema.KindInteger, f.Kind())
	o, _ := r.Property("other")
	assert.Equal(t, schema.KindNumber, o.Kind())
	e, _ := r.Property("exp")
	assert.Equal(t, schema.KindInteger, e.Kind())
}

func TestParseObjectOneFieldBool(t *testing.T) {
	bs := []byte(`{"field": true}`)
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)
	f, _ := s.(*schema.RecordSchema).Property("field")
	assert.Same(t, schema.Bool, f)
}

func TestParseObjectOneFieldNull(t *testing.T) {
	bs := []byte(`{"field": null}`)
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)
	f, _ := s.(*schema.RecordSchema).Property("field")
	assert.Same(t, schema.Null, f)
}

func TestParseObjectKeepsKeyOrder(t *testing.T) {
	bs := []byte(`{"zeta": 1, "alpha": 2, "mid": 3, "alpha": "again"}`)
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)
	r := s.(*schema.RecordSchema)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, r.Required)
	a, _ := r.Property("alpha")
	assert.Equal(t, schema.KindString, a.Kind())
}

func TestParseArrayEmpty(t *testing.T) {
	bs := []byte("[]")
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)
	assert.Equal(t, 0, s.(*schema.TupleSchema).MaxItems)
}

func TestParseArrayCompositeHomogeneous(t *testing.T) {
	bs := []byte(`[{"a": 123}, {"b": "hi"}]`)
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "array",
		"items": [
			{"type": "object", "properties": {"a": {"type": "integer"}}, "required": ["a"], "additionalProperties": false},
			{"type": "object", "properties": {"b": {"type": "string"}}, "required": ["b"], "additionalProperties": false}
		],
		"minItems": 2,
		"maxItems": 2,
		"additionalItems": false
	}`, string(out))
}

func TestParseArrayCompositeHeterogeneous(t *testing.T) {
	bs := []byte(`[{"a": 123}, null]`)
	s, err := ParseSampleBodyBytes(bs)
	assert.Nil(t, err)
	items := s.(*schema.TupleSchema).Items
	assert.Equal(t, schema.KindRecord, items[0].Kind())
	assert.Same(t, schema.Null, items[1])
}

func TestParseInvalid(t *testing.T) {
	_, err := ParseSampleBodyBytes([]byte(`{"a": `))
	assert.ErrorContains(t, err, "parse sample body")
}

func TestDecodeSampleBody(t *testing.T) {
	v, err := DecodeSampleBodyBytes([]byte(`{"n": 1.50, "s": "é", "l": [false]}`))
	assert.Nil(t, err)
	assert.Equal(t, jsontype.Object{
		{Key: "n", Value: json.Number("1.50")},
		{Key: "s", Value: "é"},
		{Key: "l", Value: []any{false}},
	}, v)
}

func TestParseSampleYAML(t *testing.T) {
	doc := []byte(`
name: widget
id: 123e4567-e89b-12d3-a456-426655440000
price: 9.5
tags: [a, b]
owner: &owner
  email: someone@example.com
backup: *owner
`)
	s, err := ParseSampleYAMLBytes(doc)
	require.NoError(t, err)

	r := s.(*schema.RecordSchema)
	assert.Equal(t, []string{"name", "id", "price", "tags", "owner", "backup"}, r.Required)
	id, _ := r.Property("id")
	assert.Same(t, schema.UUID, id)
	price, _ := r.Property("price")
	assert.Equal(t, schema.KindNumber, price.Kind())
	backup, _ := r.Property("backup")
	email, _ := backup.(*schema.RecordSchema).Property("email")
	assert.Same(t, schema.Email, email)
}

func TestParseSampleYAMLEmpty(t *testing.T) {
	s, err := ParseSampleYAMLBytes(nil)
	require.NoError(t, err)
	assert.Same(t, schema.Null, s)
}

func TestParseSampleYAMLAliasCycle(t *testing.T) {
	for _, doc := range []string{
		"a: &x [*x]\n",
		"a: &x {b: *x}\n",
	} {
		_, err := ParseSampleYAMLBytes([]byte(doc))
		require.Error(t, err, doc)
		assert.True(t, errors.Is(err, ErrAliasCycle), doc)
	}
}

func TestParseSampleYAMLAliasBudget(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 10), ", "))
	}

	_, err := ParseSampleYAMLBytes([]byte(b.String()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAliasBudget))
}

func TestParseSampleYAMLRepeatedAlias(t *testing.T) {
	s, err := ParseSampleYAMLBytes([]byte("a: &x [1, 2]\nb: [*x, *x]\n"))
	require.NoError(t, err)
	b, _ := s.(*schema.RecordSchema).Property("b")
	assert.Equal(t, schema.KindTuple, b.Kind())
}
