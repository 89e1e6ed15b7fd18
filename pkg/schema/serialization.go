package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// descriptor is the introspection view of one attribute.
type descriptor struct {
	Name     string   `json:"name" yaml:"-"`
	Types    []string `json:"types" yaml:"types,flow"`
	Optional bool     `json:"optional,omitempty" yaml:"optional,omitempty"`
	Default  any      `json:"default,omitempty" yaml:"default,omitempty"`
}

func describe(a Attribute) descriptor {
	d := descriptor{Name: a.Name, Optional: a.Optional}
	for _, t := range a.Types {
		d.Types = append(d.Types, t.Name())
	}
	if a.HasDefault {
		d.Default = a.Default
	}
	return d
}

// MarshalJSON serializes the schema as an ordered list of attribute descriptors.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	out := make([]descriptor, 0, s.Len())
	for _, a := range s.Attributes() {
		out = append(out, describe(a))
	}
	return json.Marshal(out)
}

// MarshalYAML serializes the schema as a mapping that keeps declaration order.
func (s *Schema) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range s.Attributes() {
		var value yaml.Node
		if err := value.Encode(describe(a)); err != nil {
			return nil, fmt.Errorf("attribute %s: %w", a.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: a.Name},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML reads declarations from a YAML mapping, keeping document order.
// Each entry is either a type expression or a mapping:
//
//	amount: float
//	currency: { type: symbol, default: EUR }
//	flag: true|false
func (ds *Declarations) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("declarations: expected a mapping, got %s", kindName(value.Kind))
	}

	out := make(Declarations, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		d := Declaration{Name: key.Value}

		switch val.Kind {
		case yaml.ScalarNode:
			d.Type = val.Value
		case yaml.MappingNode:
			if err := d.decodeMapping(val); err != nil {
				return err
			}
		default:
			return fmt.Errorf("attribute %s: expected a type or a mapping, got %s", d.Name, kindName(val.Kind))
		}
		out = append(out, d)
	}

	*ds = out
	return nil
}

// UnmarshalJSON reads declarations from an ordered JSON array of
// {"name", "type", "optional", "default"} objects.
func (ds *Declarations) UnmarshalJSON(data []byte) error {
	if ds == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}

	var raw []struct {
		Name     string          `json:"name"`
		Type     string          `json:"type"`
		Optional bool            `json:"optional"`
		Default  json.RawMessage `json:"default"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Declarations, 0, len(raw))
	for _, r := range raw {
		d := Declaration{Name: r.Name, Type: r.Type, Optional: r.Optional}
		if len(r.Default) > 0 {
			if err := json.Unmarshal(r.Default, &d.Default); err != nil {
				return fmt.Errorf("attribute %s: default: %w", r.Name, err)
			}
			d.HasDefault = true
		}
		out = append(out, d)
	}

	*ds = out
	return nil
}

// decodeMapping reads the {type, optional, default} form of one entry.
func (d *Declaration) decodeMapping(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		var err error
		switch key {
		case "type":
			err = val.Decode(&d.Type)
		case "optional":
			err = val.Decode(&d.Optional)
		case "default":
			err = val.Decode(&d.Default)
			d.HasDefault = err == nil
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return fmt.Errorf("attribute %s: %s: %w", d.Name, key, err)
		}
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
