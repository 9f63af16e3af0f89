package apispec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
)

// TemplatePath replaces integer and UUID path segments with numbered parameters, so
// that /users/12 and /users/13 are learned as one endpoint /users/{arg1}.
func TemplatePath(path string) (string, openapi3.Parameters) {
	var params openapi3.Parameters
	parts := strings.Split(path, "/")
	out := make([]string, len(parts))
	for i, p := range parts {
		var s *openapi3.Schema
		if _, err := strconv.Atoi(p); err == nil {
			s = openapi3.NewIntegerSchema()
		} else if _, err := uuid.Parse(p); err == nil && len(p) == 36 {
			s = openapi3.NewUUIDSchema()
		}
		if s == nil {
			out[i] = p
			continue
		}

		name := fmt.Sprintf("arg%d", len(params)+1)
		out[i] = "{" + name + "}"
		params = append(params, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:     name,
			In:       openapi3.ParameterInPath,
			Required: true,
			Schema:   s.NewRef(),
		}})
	}
	return strings.Join(out, "/"), params
}
