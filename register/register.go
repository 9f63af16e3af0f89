// Package register remembers which schemas and member tags were built by this
// module's factories, so that inference can pass them through instead of treating
// them as example data.
//
// Identity is by pointer. The sets hold weak references; an entry goes away once
// its schema is garbage collected.
package register

import (
	"runtime"
	"sync"
	"weak"

	"github.com/siegeai/schemalike/schema"
)

type set struct {
	mu      sync.RWMutex
	entries map[any]struct{}
}

func newSet() *set {
	return &set{entries: make(map[any]struct{})}
}

var (
	schemas = newSet()
	tags    = newSet()
)

func (s *set) add(x any) {
	key, watch, ok := identity(x)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return
	}
	s.entries[key] = struct{}{}
	watch(func() { s.remove(key) })
}

func (s *set) remove(key any) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *set) has(x any) bool {
	key, _, ok := identity(x)
	if !ok {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, found := s.entries[key]
	return found
}

func (s *set) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// identity returns a comparable weak key for x and a function that arranges for a
// callback once x is collected.
func identity(x any) (any, func(func()), bool) {
	switch p := x.(type) {
	case *schema.AnySchema:
		return weakKey(p)
	case *schema.NullSchema:
		return weakKey(p)
	case *schema.BooleanSchema:
		return weakKey(p)
	case *schema.StringSchema:
		return weakKey(p)
	case *schema.FormatSchema:
		return weakKey(p)
	case *schema.NumericSchema:
		return weakKey(p)
	case *schema.RecordSchema:
		return weakKey(p)
	case *schema.DictSchema:
		return weakKey(p)
	case *schema.ListSchema:
		return weakKey(p)
	case *schema.TupleSchema:
		return weakKey(p)
	case *schema.EnumSchema:
		return weakKey(p)
	case *schema.CombinatorSchema:
		return weakKey(p)
	case *schema.NotSchema:
		return weakKey(p)
	case *schema.MemberTag:
		return weakKey(p)
	}
	return nil, nil, false
}

func weakKey[T any](p *T) (any, func(func()), bool) {
	if p == nil {
		return nil, nil, false
	}
	watch := func(cleanup func()) {
		runtime.AddCleanup(p, func(f func()) { f() }, cleanup)
	}
	return weak.Make(p), watch, true
}

// AsSchema registers s and returns it.
func AsSchema[S schema.Schema](s S) S {
	schemas.add(s)
	return s
}

// AsTag registers t and returns it.
func AsTag(t *schema.MemberTag) *schema.MemberTag {
	tags.add(t)
	return t
}

// IsRegistered reports whether x is a schema that went through AsSchema.
func IsRegistered(x any) bool {
	return schemas.has(x)
}

// IsTagged reports whether x is a member tag that went through AsTag.
func IsTagged(x any) bool {
	if _, ok := x.(*schema.MemberTag); !ok {
		return false
	}
	return tags.has(x)
}
