package structdiff

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON document into a Value. Unlike encoding/json into an
// interface{}, mapping keys keep the order they appear in the document
func ParseJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, errors.New("invalid json")
	}
	return fromGJSON(gjson.ParseBytes(data)), nil
}

func fromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return Text(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var items []Value
			r.ForEach(func(_, el gjson.Result) bool {
				items = append(items, fromGJSON(el))
				return true
			})
			return Sequence(items...)
		}
		var fields []Field
		r.ForEach(func(key, el gjson.Result) bool {
			fields = append(fields, Field{Key: key.Str, Value: fromGJSON(el)})
			return true
		})
		return Mapping(fields...)
	default:
		return Null()
	}
}

// ParseYAML decodes the first document of a YAML stream into a Value, keeping
// mapping key order. Mapping keys must be scalars
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, errors.Wrap(err, "decoding yaml")
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	return FromYAMLNode(&doc)
}

// FromYAMLNode converts a decoded yaml node tree into a Value
func FromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, ch := range n.Content {
			v, err := FromYAMLNode(ch)
			if err != nil {
				return Value{}, errors.Wrapf(err, "index %d", i)
			}
			items[i] = v
		}
		return Sequence(items...), nil
	case yaml.MappingNode:
		fields := make([]Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return Value{}, errors.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			v, err := FromYAMLNode(n.Content[i+1])
			if err != nil {
				return Value{}, errors.Wrapf(err, "key %q", k.Value)
			}
			fields = append(fields, Field{Key: k.Value, Value: v})
		}
		return Mapping(fields...), nil
	case yaml.ScalarNode:
		var i interface{}
		if err := n.Decode(&i); err != nil {
			return Value{}, errors.Wrapf(err, "line %d", n.Line)
		}
		if _, ok := i.(string); !ok && n.Tag == "!!timestamp" {
			return Text(n.Value), nil
		}
		return FromInterface(i)
	default:
		return Value{}, errors.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
	}
}
