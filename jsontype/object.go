package jsontype

import (
	"bytes"
	"reflect"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its keys in insertion order.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func (o Object) Keys() []string {
	ks := make([]string, len(o))
	for i, m := range o {
		ks[i] = m.Key
	}
	return ks
}

func (o Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Elements returns the items of an array-like value, or nil for anything else.
func Elements(x any) []any {
	if !IsArrayLike(x) {
		return nil
	}
	if s, ok := x.(Sequence); ok {
		es := make([]any, s.Len())
		for i := range es {
			es[i] = s.At(i)
		}
		return es
	}
	v := reflect.ValueOf(x)
	es := make([]any, v.Len())
	for i := range es {
		es[i] = v.Index(i).Interface()
	}
	return es
}

// Entries returns the members of an object-like value, or nil for anything else.
// Object keeps its own order, struct fields follow declaration order and map keys are
// sorted.
func Entries(x any) []Member {
	if !IsObjectLike(x) {
		return nil
	}
	if o, ok := x.(Object); ok {
		return append([]Member(nil), o...)
	}
	v := reflect.ValueOf(x)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() == reflect.Map {
		return mapEntries(v)
	}
	return structEntries(v)
}

func mapEntries(v reflect.Value) []Member {
	ms := make([]Member, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		ms = append(ms, Member{Key: iter.Key().String(), Value: iter.Value().Interface()})
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i].Key < ms[j].Key })
	return ms
}

// structEntries lists the fields encoding/json would encode for v, in declaration
// order. Fields of embedded structs are promoted; fields behind a nil embedded
// pointer are left out.
func structEntries(v reflect.Value) []Member {
	fs := cachedFields(v.Type())
	ms := make([]Member, 0, len(fs))
	for _, f := range fs {
		fv, ok := fieldByIndex(v, f.index)
		if !ok {
			continue
		}
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		ms = append(ms, Member{Key: f.name, Value: fv.Interface()})
	}
	return ms
}

type field struct {
	name      string
	index     []int
	tagged    bool
	omitEmpty bool
}

var fieldCache sync.Map // map[reflect.Type][]field

func cachedFields(t reflect.Type) []field {
	if fs, ok := fieldCache.Load(t); ok {
		return fs.([]field)
	}
	fs, _ := fieldCache.LoadOrStore(t, typeFields(t))
	return fs.([]field)
}

// typeFields walks t breadth first, one embedding depth at a time, and applies the
// encoding/json dominance rules to fields sharing a name.
func typeFields(t reflect.Type) []field {
	type embedded struct {
		typ   reflect.Type
		index []int
	}

	var current []embedded
	next := []embedded{{typ: t}}
	var count, nextCount map[reflect.Type]int
	visited := map[reflect.Type]bool{}

	var fields []field
	for len(next) > 0 {
		current, next = next, current[:0]
		count, nextCount = nextCount, map[reflect.Type]int{}

		for _, e := range current {
			if visited[e.typ] {
				continue
			}
			visited[e.typ] = true

			for i := 0; i < e.typ.NumField(); i++ {
				sf := e.typ.Field(i)
				if sf.Anonymous {
					ft := sf.Type
					if ft.Kind() == reflect.Pointer {
						ft = ft.Elem()
					}
					if !sf.IsExported() && ft.Kind() != reflect.Struct {
						continue
					}
				} else if !sf.IsExported() {
					continue
				}
				tag := sf.Tag.Get("json")
				if tag == "-" {
					continue
				}
				name, omitEmpty := parseTag(tag)
				index := make([]int, len(e.index)+1)
				copy(index, e.index)
				index[len(e.index)] = i

				ft := sf.Type
				if ft.Name() == "" && ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}

				if name != "" || !sf.Anonymous || ft.Kind() != reflect.Struct {
					f := field{name: name, index: index, tagged: name != "", omitEmpty: omitEmpty}
					if f.name == "" {
						f.name = sf.Name
					}
					fields = append(fields, f)
					if count[e.typ] > 1 {
						// the same type embedded twice at one depth: its fields
						// cancel each other out
						fields = append(fields, f)
					}
					continue
				}

				nextCount[ft]++
				if nextCount[ft] == 1 {
					next = append(next, embedded{typ: ft, index: index})
				}
			}
		}
	}

	var names []string
	byName := make(map[string][]field)
	for _, f := range fields {
		if _, ok := byName[f.name]; !ok {
			names = append(names, f.name)
		}
		byName[f.name] = append(byName[f.name], f)
	}

	out := make([]field, 0, len(names))
	for _, n := range names {
		if f, ok := dominantField(byName[n]); ok {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].index, out[j].index
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return out
}

// dominantField picks the field that wins a name: the shallowest one, with a tagged
// field beating untagged ones at the same depth. A tie hides the name altogether.
func dominantField(fs []field) (field, bool) {
	depth := len(fs[0].index)
	for _, f := range fs[1:] {
		depth = min(depth, len(f.index))
	}
	var top []field
	tagged := 0
	for _, f := range fs {
		if len(f.index) != depth {
			continue
		}
		top = append(top, f)
		if f.tagged {
			tagged++
		}
	}
	switch {
	case len(top) == 1:
		return top[0], true
	case tagged == 1:
		for _, f := range top {
			if f.tagged {
				return f, true
			}
		}
	}
	return field{}, false
}

func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func parseTag(tag string) (string, bool) {
	name, rest, _ := strings.Cut(tag, ",")
	omitempty := false
	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
