// Package schema builds JSON Schema descriptors.
//
// A Schema is one of a closed set of pointer types. Every value carries its Kind in
// an unexported header that only the constructors in this package set, so a zero
// struct literal is never a valid schema. Schemas are immutable once built and may be
// shared freely; composites alias their children read-only.
package schema

import (
	"fmt"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindNull
	KindBoolean
	KindString
	KindFormat
	KindInteger
	KindNumber
	KindRecord
	KindDict
	KindList
	KindTuple
	KindEnum
	KindAllOf
	KindAnyOf
	KindOneOf
	KindNot
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindAny:     "any",
	KindNull:    "null",
	KindBoolean: "boolean",
	KindString:  "string",
	KindFormat:  "format",
	KindInteger: "integer",
	KindNumber:  "number",
	KindRecord:  "record",
	KindDict:    "dict",
	KindList:    "list",
	KindTuple:   "tuple",
	KindEnum:    "enum",
	KindAllOf:   "allOf",
	KindAnyOf:   "anyOf",
	KindOneOf:   "oneOf",
	KindNot:     "not",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Schema is implemented by the pointer types of this package only.
type Schema interface {
	Kind() Kind
	MarshalJSON() ([]byte, error)
	sealed()
}

type header struct {
	kind Kind
}

func (h header) Kind() Kind { return h.kind }
func (header) sealed()      {}

type AnySchema struct{ header }

type NullSchema struct{ header }

type BooleanSchema struct{ header }

type StringSchema struct {
	header
	MinLength *int
	MaxLength *int
}

// FormatSchema is a string with a fixed format name (date-time, email, uuid, ...).
type FormatSchema struct {
	header
	Format string
}

// NumericSchema backs both "integer" and "number"; Kind tells them apart. A bound is
// either inclusive (Minimum) or exclusive (ExclusiveMinimum), never both.
type NumericSchema struct {
	header
	Minimum          *float64
	ExclusiveMinimum *float64
	Maximum          *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64
}

type Property struct {
	Name   string
	Schema Schema
}

// RecordSchema is a closed object. Properties and Required keep the order the members
// were given in.
type RecordSchema struct {
	header
	Properties []Property
	Required   []string
}

// Property returns the schema of the named property.
func (r *RecordSchema) Property(name string) (Schema, bool) {
	for _, p := range r.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// DictSchema is an open object whose values all match Values.
type DictSchema struct {
	header
	Values   Schema
	MinItems *int
	MaxItems *int
}

// ListSchema is a homogeneous array. Items is nil when any item is allowed.
type ListSchema struct {
	header
	Items       Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
}

// TupleSchema is a fixed-position array; no items beyond Items are allowed.
type TupleSchema struct {
	header
	Items    []Schema
	MinItems int
	MaxItems int
}

type EnumSchema struct {
	header
	Values []any
}

// CombinatorSchema is allOf, anyOf or oneOf depending on Kind.
type CombinatorSchema struct {
	header
	Schemas []Schema
}

type NotSchema struct {
	header
	Schema Schema
}

// MemberTag marks a schema as a required or optional member of a Record or Tuple.
// Only Req and Opt produce valid tags.
type MemberTag struct {
	Required bool
	Schema   Schema
	tagged   bool
}
