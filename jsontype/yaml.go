package jsontype

import (
	"bytes"
	stdjson "encoding/json"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// EncodeYAML renders x as a YAML document with members in the order Entries gives.
// Values with their own MarshalJSON are rendered from that encoding.
func EncodeYAML(x any) ([]byte, error) {
	n, err := yamlNode(x)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, errors.Wrap(err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode yaml")
	}
	return b.Bytes(), nil
}

func yamlNode(x any) (*yaml.Node, error) {
	if m, ok := x.(json.Marshaler); ok && !IsNullLike(x) {
		if _, isObject := x.(Object); !isObject {
			b, err := m.MarshalJSON()
			if err != nil {
				return nil, err
			}
			v, err := decodeOrdered(b)
			if err != nil {
				return nil, err
			}
			return yamlNode(v)
		}
	}

	switch Classify(x) {
	case TypeNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case TypeArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range Elements(x) {
			c, err := yamlNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case TypeObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range Entries(x) {
			v, err := yamlNode(m.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}, v)
		}
		return n, nil
	case TypeBoolean, TypeNumber, TypeString:
		c, err := Canonical(x)
		if err != nil {
			return nil, err
		}
		n := &yaml.Node{}
		if err := n.Encode(c); err != nil {
			return nil, errors.Wrap(err, "encode yaml scalar")
		}
		return n, nil
	}
	return nil, errors.Newf("jsontype: %T has no JSON shape", x)
}

// decodeOrdered decodes b keeping object members in document order.
func decodeOrdered(b []byte) (any, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *stdjson.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case stdjson.Delim:
		switch t {
		case '{':
			o := Object{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				k, _ := kt.(string)
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				o = append(o, Member{Key: k, Value: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return o, nil
		case '[':
			a := []any{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				a = append(a, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return a, nil
		}
		return nil, errors.Newf("jsontype: unexpected delimiter %q", t)
	}
	return tok, nil
}
