// Package markup persists nested configuration mappings as YAML, keeping
// field order and writing scalar lists in flow style.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/roomsim/internal/ir"
)

// Ext is the suffix WriteFile appends to paths that lack it.
const Ext = ".yml"

// Marshal encodes cfg as a YAML document. Byte leaves are written as text.
func Marshal(cfg *ir.Nested) ([]byte, error) {
	node, err := encodeNode(cfg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a YAML document whose root is a mapping.
func Unmarshal(data []byte) (*ir.Nested, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("decode yaml: empty document")
	}
	v, err := decodeNode(doc.Content[0])
	if err != nil {
		return nil, err
	}
	cfg, ok := v.(*ir.Nested)
	if !ok {
		return nil, fmt.Errorf("decode yaml: root is a %s, expected a mapping", ir.TypeName(v))
	}
	return cfg, nil
}

// WriteFile writes cfg to path, appending Ext when path does not already
// end with it. It returns the path actually written.
func WriteFile(path string, cfg *ir.Nested) (string, error) {
	if !strings.HasSuffix(path, Ext) {
		path += Ext
	}
	data, err := Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write markup: %w", err)
	}
	return path, nil
}

// ReadFile loads a YAML configuration file.
func ReadFile(path string) (*ir.Nested, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markup: %w", err)
	}
	cfg, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func encodeNode(v ir.Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil, ir.Null:
		return scalar("!!null", "null"), nil
	case ir.Bool:
		return scalar("!!bool", strconv.FormatBool(bool(val))), nil
	case ir.Int:
		return scalar("!!int", strconv.FormatInt(int64(val), 10)), nil
	case ir.Float:
		return scalar("!!float", formatFloat(float64(val))), nil
	case ir.Text:
		return scalar("!!str", string(val)), nil
	case ir.Bytes:
		return scalar("!!str", string(val)), nil
	case ir.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		flow := true
		for i, elem := range val {
			child, err := encodeNode(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			if child.Kind != yaml.ScalarNode {
				flow = false
			}
			seq.Content = append(seq.Content, child)
		}
		if flow {
			seq.Style = yaml.FlowStyle
		}
		return seq, nil
	case *ir.Nested:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if val.Len() == 0 {
			m.Style = yaml.FlowStyle
		}
		for k, elem := range val.All() {
			child, err := encodeNode(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m.Content = append(m.Content, scalar("!!str", k), child)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported value %T", v)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// formatFloat spells non-finite values the YAML way.
func formatFloat(f float64) string {
	switch s := ir.FormatFloat(f); s {
	case "Inf":
		return ".inf"
	case "-Inf":
		return "-.inf"
	case "NaN":
		return ".nan"
	default:
		return s
	}
}

func decodeNode(n *yaml.Node) (ir.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.MappingNode:
		out := ir.NewNested()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out.Set(key, v)
		}
		return out, nil
	case yaml.SequenceNode:
		out := make(ir.List, 0, len(n.Content))
		for i, child := range n.Content {
			v, err := decodeNode(child)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return decodeScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

func decodeScalar(n *yaml.Node) (ir.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return ir.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return ir.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return ir.Int(i), nil
		}
		// Out of int64 range.
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return ir.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return ir.Float(f), nil
	}
	return ir.Text(n.Value), nil
}
