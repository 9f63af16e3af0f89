package register

import (
	"runtime"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

func TestAsSchema(t *testing.T) {
	s := schema.Str()
	assert.False(t, IsRegistered(s))

	r := AsSchema(s)
	assert.Same(t, s, r)
	assert.True(t, IsRegistered(s))

	// structurally equal, different identity
	assert.False(t, IsRegistered(schema.Str()))
}

func TestAsSchemaTwice(t *testing.T) {
	s := schema.Int()
	st := newSet()
	st.add(s)
	st.add(s)
	assert.Equal(t, 1, st.len())
	assert.True(t, st.has(s))
}

func TestIsRegisteredOddInput(t *testing.T) {
	assert.False(t, IsRegistered(nil))
	assert.False(t, IsRegistered(3))
	assert.False(t, IsRegistered("string"))
	assert.False(t, IsRegistered(map[string]any{"type": "string"}))
	assert.False(t, IsRegistered((*schema.StringSchema)(nil)))

	AsSchema((*schema.StringSchema)(nil))
	assert.False(t, IsRegistered((*schema.StringSchema)(nil)))
}

func TestAsTag(t *testing.T) {
	m, err := schema.Req(schema.Bool)
	require.NoError(t, err)
	assert.False(t, IsTagged(m))

	AsTag(m)
	assert.True(t, IsTagged(m))
	assert.False(t, IsRegistered(m))
	assert.False(t, IsTagged(schema.Bool))
	assert.False(t, IsTagged(nil))
}

func TestWrapFactory(t *testing.T) {
	f := WrapFactory(schema.ListCall, schema.List)
	assert.Equal(t, "List(opts?, itemsSchema)", f.Name())

	l, err := f.Call("uniq")
	require.NoError(t, err)
	assert.True(t, IsRegistered(l))

	_, err = f.Call(schema.Bool, schema.Null)
	assert.True(t, errors.Is(err, schema.ErrAmbiguous))
}

func TestWrapTagger(t *testing.T) {
	req := WrapTagger(schema.ReqCall, schema.Req)
	assert.Equal(t, "Req(schema)", req.Name())

	m, err := req.Call(schema.Null)
	require.NoError(t, err)
	assert.True(t, IsTagged(m))
	assert.True(t, m.Required)

	m, err = req.Call(nil)
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestCollectedSchemasAreForgotten(t *testing.T) {
	before := schemas.len()
	func() {
		r, err := schema.Record(jsontype.Object{})
		require.NoError(t, err)
		AsSchema(r)
		assert.True(t, IsRegistered(r))
	}()

	assert.Eventually(t, func() bool {
		runtime.GC()
		return schemas.len() <= before
	}, 5*time.Second, 10*time.Millisecond)
}

func TestFixedSchemasRegister(t *testing.T) {
	st := newSet()
	for _, s := range schema.Constants() {
		st.add(s)
		assert.True(t, st.has(s), "%s", s.Kind())
	}
	assert.Equal(t, len(schema.Constants()), st.len())
}
