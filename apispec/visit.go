package apispec

import (
	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

// Visitor checks data against the OpenAPI projection of a schema.
type Visitor struct {
	o *openapi3.Schema
}

func NewVisitor(s schema.Schema) *Visitor {
	return &Visitor{o: ToOpenAPI(s)}
}

// Visit reports every mismatch as an openapi3.MultiError, or returns nil.
func (v *Visitor) Visit(data any) error {
	c, err := jsontype.Canonical(data)
	if err != nil {
		return err
	}
	return v.o.VisitJSON(floats(c), openapi3.MultiErrors())
}

func (v *Visitor) Matches(data any) bool {
	return v.Visit(data) == nil
}

// plain canonicalizes x and turns its numbers into float64, the representation
// kin-openapi compares enum members with.
func plain(x any) any {
	c, err := jsontype.Canonical(x)
	if err != nil {
		return x
	}
	return floats(c)
}

func floats(x any) any {
	switch v := x.(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case []any:
		for i, e := range v {
			v[i] = floats(e)
		}
	case map[string]any:
		for k, e := range v {
			v[k] = floats(e)
		}
	}
	return x
}
