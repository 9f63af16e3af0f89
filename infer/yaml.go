package infer

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

// ParseSampleYAMLBytes infers a schema from a YAML document. Mapping keys keep their
// document order.
func ParseSampleYAMLBytes(b []byte) (schema.Schema, error) {
	v, err := DecodeSampleYAMLBytes(b)
	if err != nil {
		return nil, err
	}
	return SthLike(v)
}

// Limits on alias expansion while walking a YAML sample.
const (
	maxYAMLAliases = 10000
	maxYAMLNodes   = 1 << 20
)

var (
	ErrAliasCycle  = errors.New("yaml alias refers to itself")
	ErrAliasBudget = errors.New("yaml document expands too many aliases")
)

func DecodeSampleYAMLBytes(b []byte) (any, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(b, &n); err != nil {
		return nil, errors.Wrap(err, "parse sample yaml")
	}
	w := yamlWalker{expanding: make(map[*yaml.Node]struct{})}
	return w.parseYAMLNode(&n)
}

type yamlWalker struct {
	expanding map[*yaml.Node]struct{}
	aliases   int
	nodes     int
}

func (w *yamlWalker) parseYAMLNode(n *yaml.Node) (any, error) {
	if w.nodes++; w.nodes > maxYAMLNodes {
		return nil, errors.Wrapf(ErrAliasBudget, "line %d: more than %d nodes", n.Line, maxYAMLNodes)
	}
	switch n.Kind {
	case 0:
		// empty document
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.parseYAMLNode(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, errors.Newf("line %d: unresolved alias %q", n.Line, n.Value)
		}
		if _, ok := w.expanding[n.Alias]; ok {
			return nil, errors.Wrapf(ErrAliasCycle, "line %d: *%s", n.Line, n.Value)
		}
		if w.aliases++; w.aliases > maxYAMLAliases {
			return nil, errors.Wrapf(ErrAliasBudget, "line %d: more than %d aliases", n.Line, maxYAMLAliases)
		}
		w.expanding[n.Alias] = struct{}{}
		defer delete(w.expanding, n.Alias)
		return w.parseYAMLNode(n.Alias)
	case yaml.MappingNode:
		ms := make(jsontype.Object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, errors.Wrapf(err, "line %d: mapping key", n.Content[i].Line)
			}
			v, err := w.parseYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			ms = append(ms, jsontype.Member{Key: key, Value: v})
		}
		return ms, nil
	case yaml.SequenceNode:
		es := make([]any, len(n.Content))
		for i, c := range n.Content {
			e, err := w.parseYAMLNode(c)
			if err != nil {
				return nil, err
			}
			es[i] = e
		}
		return es, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return v, nil
	}
	return nil, errors.Newf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}
