package apispec

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/siegeai/schemalike/schema"
)

const openAPIVersion = "3.0.3"

// Document builds an OpenAPI document with one POST operation per path whose request
// body is described by the path's schema.
func Document(title, version string, bodies map[string]schema.Schema) *openapi3.T {
	eps := make(map[string]endpoint, len(bodies))
	for p, s := range bodies {
		eps[p] = endpoint{body: s}
	}
	return document(title, version, eps)
}

type endpoint struct {
	body    schema.Schema
	params  openapi3.Parameters
	samples int
}

func document(title, version string, eps map[string]endpoint) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   make(openapi3.Paths, len(eps)),
	}

	paths := make([]string, 0, len(eps))
	for p := range eps {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		ep := eps[p]
		op := openapi3.NewOperation()
		op.Parameters = ep.params
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchema(ToOpenAPI(ep.body)),
		}
		op.Responses = openapi3.Responses{
			"200": &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("OK")},
		}
		doc.Paths[p] = &openapi3.PathItem{Post: op}
	}
	return doc
}

// Learner accumulates the request body schemas observed per path. Paths are
// templated with TemplatePath first.
type Learner struct {
	mu        sync.Mutex
	endpoints map[string]endpoint
}

func NewLearner() *Learner {
	return &Learner{endpoints: make(map[string]endpoint)}
}

// Observe merges s into the schema known for path and returns the result.
func (l *Learner) Observe(path string, s schema.Schema) (schema.Schema, error) {
	tpl, params := TemplatePath(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	ep := l.endpoints[tpl]
	merged, err := Merge(ep.body, s)
	if err != nil {
		return nil, err
	}
	ep.body = merged
	ep.params = params
	ep.samples++
	l.endpoints[tpl] = ep

	slog.Debug("observed sample", "path", tpl, "samples", ep.samples, "kind", merged.Kind())
	return merged, nil
}

// Schema returns the schema learned for path.
func (l *Learner) Schema(path string) (schema.Schema, bool) {
	tpl, _ := TemplatePath(path)
	l.mu.Lock()
	defer l.mu.Unlock()
	ep, ok := l.endpoints[tpl]
	return ep.body, ok
}

func (l *Learner) Samples(path string) int {
	tpl, _ := TemplatePath(path)
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.endpoints[tpl].samples
}

func (l *Learner) Document(title, version string) *openapi3.T {
	l.mu.Lock()
	eps := make(map[string]endpoint, len(l.endpoints))
	for p, ep := range l.endpoints {
		eps[p] = ep
	}
	l.mu.Unlock()
	return document(title, version, eps)
}
