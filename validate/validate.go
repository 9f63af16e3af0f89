// Package validate compiles schemas into validators backed by a draft-07 JSON Schema
// implementation and reports failures with the offending value and sub-schema.
package validate

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-openapi/jsonpointer"
	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

const resourceURL = "mem:schemalike.json"

var (
	// ErrNotSchema is returned when a document is not recognizable as a schema.
	ErrNotSchema = errors.New("validate: not a schema")
	// ErrInvalid is returned by Assert functions for data that does not validate.
	ErrInvalid = errors.New("validate: data does not match schema")
)

func init() {
	// the validator knows "uri" but not the "url" format that schemas carry
	jsonschema.Formats["url"] = isURL
}

func isURL(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// Error is a single validation failure.
type Error struct {
	// Pointer locates the offending value in the data.
	Pointer string `json:"pointer"`
	Message string `json:"message"`
	Value   any    `json:"value"`
	// Schema is the sub-schema holding the failed keyword.
	Schema          any    `json:"schema"`
	KeywordLocation string `json:"keywordLocation"`
}

type Result struct {
	IsValid bool    `json:"isValid"`
	Errors  []Error `json:"errors"`
}

type Validator func(data any) Result

type Predicate func(data any) bool

// Assert returns nil for valid data and an ErrInvalid error listing the failures
// otherwise.
type Assert func(data any) error

// CompileValidator compiles s. Every validator call reports all failures it finds.
func CompileValidator(s schema.Schema) (Validator, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encode schema")
	}
	return CompileDocument(b)
}

// CompileDocument compiles a JSON schema document given as bytes.
func CompileDocument(doc []byte) (Validator, error) {
	root, err := decode(doc)
	if err != nil {
		return nil, errors.Wrap(err, "decode schema")
	}
	if !schema.IsSchema(root) {
		return nil, ErrNotSchema
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	c.AssertFormat = true
	if err := c.AddResource(resourceURL, bytes.NewReader(doc)); err != nil {
		return nil, errors.Wrap(err, "add schema resource")
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, errors.Wrap(err, "compile schema")
	}

	return func(data any) Result {
		v, err := jsontype.Canonical(data)
		if err != nil {
			return Result{Errors: []Error{{Message: err.Error(), Value: data}}}
		}
		err = compiled.Validate(v)
		if err == nil {
			return Result{IsValid: true, Errors: []Error{}}
		}
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return Result{Errors: []Error{{Message: err.Error(), Value: data}}}
		}
		return Result{Errors: collect(ve, v, root, nil)}
	}, nil
}

func CompilePredicate(s schema.Schema) (Predicate, error) {
	validator, err := CompileValidator(s)
	if err != nil {
		return nil, err
	}
	return func(data any) bool {
		return validator(data).IsValid
	}, nil
}

func CompileAssert(s schema.Schema) (Assert, error) {
	validator, err := CompileValidator(s)
	if err != nil {
		return nil, err
	}
	return func(data any) error {
		r := validator(data)
		if r.IsValid {
			return nil
		}
		return errors.Mark(errors.Newf("data does not match schema:\n%s", FormatErrors(r.Errors)), ErrInvalid)
	}, nil
}

// collect flattens the cause tree into its leaves.
func collect(ve *jsonschema.ValidationError, data, root any, out []Error) []Error {
	if len(ve.Causes) > 0 {
		for _, c := range ve.Causes {
			out = collect(c, data, root, out)
		}
		return out
	}
	return append(out, Error{
		Pointer:         ve.InstanceLocation,
		Message:         ve.Message,
		Value:           resolve(data, ve.InstanceLocation),
		Schema:          resolve(root, parent(ve.KeywordLocation)),
		KeywordLocation: ve.KeywordLocation,
	})
}

func resolve(doc any, pointer string) any {
	p, err := jsonpointer.New(pointer)
	if err != nil {
		return nil
	}
	v, _, err := p.Get(doc)
	if err != nil {
		return nil
	}
	return v
}

func parent(pointer string) string {
	i := strings.LastIndex(pointer, "/")
	if i < 0 {
		return ""
	}
	return pointer[:i]
}

func decode(b []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// FormatErrors renders errors one per line as "pointer: message".
func FormatErrors(es []Error) string {
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteByte('\n')
		}
		p := e.Pointer
		if p == "" {
			p = "/"
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}
