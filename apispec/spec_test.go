package apispec

import (
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

func TestDocument(t *testing.T) {
	doc := Document("samples", "0.1.0", map[string]schema.Schema{
		"/users":  schema.Bool,
		"/events": schema.Str(),
	})

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "samples", doc.Info.Title)
	require.Len(t, doc.Paths, 2)

	op := doc.Paths["/users"].Post
	require.NotNil(t, op)
	assert.True(t, op.RequestBody.Value.Required)
	mt := op.RequestBody.Value.Content.Get("application/json")
	require.NotNil(t, mt)
	assert.Equal(t, "boolean", mt.Schema.Value.Type)
	assert.Equal(t, "OK", *op.Responses["200"].Value.Description)

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"/events"`)
}

func TestLearner(t *testing.T) {
	l := NewLearner()

	_, err := l.Observe("/users", inferred(t, jsontype.Object{{Key: "id", Value: 1}, {Key: "name", Value: "x"}}))
	require.NoError(t, err)
	s, err := l.Observe("/users", inferred(t, jsontype.Object{{Key: "id", Value: 2}}))
	require.NoError(t, err)

	assert.Equal(t, []string{"id"}, s.(*schema.RecordSchema).Required)
	assert.Equal(t, 2, l.Samples("/users"))
	assert.Equal(t, 0, l.Samples("/other"))

	got, ok := l.Schema("/users")
	require.True(t, ok)
	assert.Same(t, s, got)

	doc := l.Document("learned", "1")
	body := doc.Paths["/users"].Post.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.Equal(t, []string{"id"}, body.Required)
	assert.Len(t, body.Properties, 2)
}

func TestLearnerConcurrent(t *testing.T) {
	l := NewLearner()
	samples := make([]schema.Schema, 16)
	for i := range samples {
		samples[i] = inferred(t, i)
	}

	var wg sync.WaitGroup
	for _, s := range samples {
		wg.Add(1)
		go func(s schema.Schema) {
			defer wg.Done()
			_, err := l.Observe("/n", s)
			assert.NoError(t, err)
		}(s)
	}
	wg.Wait()

	assert.Equal(t, 16, l.Samples("/n"))
	s, _ := l.Schema("/n")
	assert.Equal(t, schema.KindInteger, s.Kind())
}

func TestVisitor(t *testing.T) {
	r, err := schema.Record(jsontype.Object{
		{Key: "a", Value: mustReq(t, schema.Int())},
		{Key: "b", Value: mustOpt(t, schema.Str())},
	})
	require.NoError(t, err)
	v := NewVisitor(r)

	assert.True(t, v.Matches(map[string]any{"a": 1}))
	assert.True(t, v.Matches(jsontype.Object{{Key: "a", Value: 1}, {Key: "b", Value: "x"}}))
	assert.False(t, v.Matches(map[string]any{"a": "x"}))
	assert.False(t, v.Matches(map[string]any{"a": 1, "c": 2}))
	assert.False(t, v.Matches(map[string]any{}))
	assert.Error(t, v.Visit(make(chan int)))
}

func TestVisitorEnumAndNull(t *testing.T) {
	e, err := schema.Enum(1, "a")
	require.NoError(t, err)
	v := NewVisitor(e)
	assert.True(t, v.Matches(1))
	assert.True(t, v.Matches(json.Number("1")))
	assert.True(t, v.Matches("a"))
	assert.False(t, v.Matches(2))

	c, err := schema.OneOf(schema.Int(), schema.Null)
	require.NoError(t, err)
	v = NewVisitor(c)
	assert.True(t, v.Matches(nil))
	assert.True(t, v.Matches(3))
	assert.False(t, v.Matches("x"))

	assert.True(t, NewVisitor(schema.Any).Matches(nil))
}

func TestVisitorTuple(t *testing.T) {
	tu, err := schema.Tuple(mustReq(t, schema.Int()), mustReq(t, schema.Str()))
	require.NoError(t, err)
	v := NewVisitor(tu)
	assert.True(t, v.Matches([]any{1, "a"}))
	assert.False(t, v.Matches([]any{1}))
	assert.False(t, v.Matches([]any{1, "a", 2}))
	assert.False(t, v.Matches([]any{true, "a"}))
}

func TestTemplatePath(t *testing.T) {
	tpl, params := TemplatePath("/users/12/orders/123e4567-e89b-12d3-a456-426655440000")
	assert.Equal(t, "/users/{arg1}/orders/{arg2}", tpl)
	require.Len(t, params, 2)
	assert.Equal(t, "arg1", params[0].Value.Name)
	assert.Equal(t, "path", params[0].Value.In)
	assert.True(t, params[0].Value.Required)
	assert.Equal(t, "integer", params[0].Value.Schema.Value.Type)
	assert.Equal(t, "uuid", params[1].Value.Schema.Value.Format)

	tpl, params = TemplatePath("/users/me")
	assert.Equal(t, "/users/me", tpl)
	assert.Empty(t, params)
}

func TestLearnerTemplatesPaths(t *testing.T) {
	l := NewLearner()
	_, err := l.Observe("/users/1", schema.Bool)
	require.NoError(t, err)
	_, err = l.Observe("/users/2", schema.Bool)
	require.NoError(t, err)

	assert.Equal(t, 2, l.Samples("/users/{arg1}"))
	assert.Equal(t, 2, l.Samples("/users/3"))

	doc := l.Document("t", "1")
	require.Len(t, doc.Paths, 1)
	op := doc.Paths["/users/{arg1}"].Post
	require.NotNil(t, op)
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "arg1", op.Parameters[0].Value.Name)
}
