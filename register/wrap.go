package register

import (
	"github.com/siegeai/schemalike/schema"
)

// Factory is a schema constructor whose results are registered.
type Factory[A any, S schema.Schema] struct {
	name string
	fn   func(...A) (S, error)
}

// WrapFactory wraps fn so that every schema it returns without error is registered.
// name is the call shape fn answers to, e.g. schema.RecordCall.
func WrapFactory[A any, S schema.Schema](name string, fn func(...A) (S, error)) Factory[A, S] {
	return Factory[A, S]{name: name, fn: fn}
}

func (f Factory[A, S]) Name() string { return f.name }

func (f Factory[A, S]) Call(args ...A) (S, error) {
	s, err := f.fn(args...)
	if err != nil {
		return s, err
	}
	return AsSchema(s), nil
}

// Tagger is Req or Opt with registration.
type Tagger struct {
	name string
	fn   func(schema.Schema) (*schema.MemberTag, error)
}

func WrapTagger(name string, fn func(schema.Schema) (*schema.MemberTag, error)) Tagger {
	return Tagger{name: name, fn: fn}
}

func (t Tagger) Name() string { return t.name }

func (t Tagger) Call(s schema.Schema) (*schema.MemberTag, error) {
	m, err := t.fn(s)
	if err != nil {
		return nil, err
	}
	return AsTag(m), nil
}
