package graph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode builds a cell tree from a YAML (or JSON) network description.
// Member order in the document is kept.
//
//	name: Net
//	primitives:
//	  relu: ReLU
//	  matmul: {op: MatMul, attrs: {transpose_b: "true"}}
//	  unused: null
//	cells:
//	  conv1:
//	    primitives:
//	      conv2d: Conv2D
func Decode(data []byte) (*Cell, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty network description")
	}
	return decodeCell("network", doc.Content[0])
}

// LoadFile decodes the network description at path.
func LoadFile(path string) (*Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decodeCell(name string, n *yaml.Node) (*Cell, error) {
	if isNull(n) {
		return NewCell(name), nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: cell %s must be a mapping", n.Line, name)
	}
	var prims, cells *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "name":
			name = val.Value
		case "primitives":
			prims = val
		case "cells":
			cells = val
		default:
			return nil, fmt.Errorf("line %d: unknown cell field %q", key.Line, key.Value)
		}
	}

	c := NewCell(name)
	if err := eachPair(prims, func(member string, val *yaml.Node) error {
		p, err := decodePrimitive(val)
		if err != nil {
			return err
		}
		return c.AddPrimitive(member, p)
	}); err != nil {
		return nil, err
	}
	if err := eachPair(cells, func(member string, val *yaml.Node) error {
		child, err := decodeCell(member, val)
		if err != nil {
			return err
		}
		return c.AddCell(member, child)
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func decodePrimitive(n *yaml.Node) (*Primitive, error) {
	if isNull(n) {
		return nil, nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "" {
			return nil, fmt.Errorf("line %d: empty operator name", n.Line)
		}
		return NewPrimitive(n.Value), nil
	case yaml.MappingNode:
		var entry struct {
			Op    string            `yaml:"op"`
			Attrs map[string]string `yaml:"attrs"`
		}
		if err := n.Decode(&entry); err != nil {
			return nil, err
		}
		if entry.Op == "" {
			return nil, fmt.Errorf("line %d: primitive needs an op", n.Line)
		}
		p := NewPrimitive(entry.Op)
		for k, v := range entry.Attrs {
			p.AddAttr(k, v)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("line %d: primitive must be an operator name or mapping", n.Line)
	}
}

func eachPair(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if n == nil || isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
