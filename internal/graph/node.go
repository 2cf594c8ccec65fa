// Package graph models the user-facing network tree: cells that own child
// cells and primitives, and primitives that carry string attributes read by
// the compiler and the dump machinery.
//
// A tree is not safe for concurrent mutation; callers serialize access.
package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Kind distinguishes the Node variants.
type Kind int

const (
	KindCell Kind = iota + 1
	KindPrimitive
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindPrimitive:
		return "primitive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is either a *Cell or a *Primitive.
type Node interface {
	Kind() Kind
	Name() string
	isNode()
}

var ErrDuplicateMember = errors.New("duplicate member name")

// Primitive is a leaf operator instance.
type Primitive struct {
	name  string
	attrs map[string]string
}

// NewPrimitive returns a primitive for operator name, e.g. "Conv2D".
func NewPrimitive(name string) *Primitive {
	return &Primitive{name: name, attrs: make(map[string]string)}
}

func (p *Primitive) Kind() Kind   { return KindPrimitive }
func (p *Primitive) Name() string { return p.name }
func (p *Primitive) isNode()      {}

// AddAttr sets attribute key to value, replacing any previous value.
func (p *Primitive) AddAttr(key, value string) *Primitive {
	p.attrs[key] = value
	return p
}

func (p *Primitive) Attr(key string) (string, bool) {
	v, ok := p.attrs[key]
	return v, ok
}

// Attrs returns a copy of all attributes.
func (p *Primitive) Attrs() map[string]string {
	return maps.Clone(p.attrs)
}

type member[T any] struct {
	name string
	node T
}

// Cell is a composite unit owning named child cells and named primitives.
// A primitive member may be nil, like an operator attribute declared but
// never assigned.
type Cell struct {
	name       string
	cells      []member[*Cell]
	primitives []member[*Primitive]
}

func NewCell(name string) *Cell {
	return &Cell{name: name}
}

func (c *Cell) Kind() Kind   { return KindCell }
func (c *Cell) Name() string { return c.name }
func (c *Cell) isNode()      {}

func (c *Cell) hasMember(name string) bool {
	for _, m := range c.cells {
		if m.name == name {
			return true
		}
	}
	for _, m := range c.primitives {
		if m.name == name {
			return true
		}
	}
	return false
}

// AddCell attaches child under name. Member names are unique across cells
// and primitives of one cell.
func (c *Cell) AddCell(name string, child *Cell) error {
	if child == nil {
		return fmt.Errorf("cell %s: nil child cell %q", c.name, name)
	}
	if c.hasMember(name) {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateMember, c.name, name)
	}
	c.cells = append(c.cells, member[*Cell]{name: name, node: child})
	return nil
}

// AddPrimitive attaches p under name. p may be nil.
func (c *Cell) AddPrimitive(name string, p *Primitive) error {
	if c.hasMember(name) {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateMember, c.name, name)
	}
	c.primitives = append(c.primitives, member[*Primitive]{name: name, node: p})
	return nil
}

// CellNames returns child cell member names in insertion order.
func (c *Cell) CellNames() []string {
	names := make([]string, len(c.cells))
	for i, m := range c.cells {
		names[i] = m.name
	}
	return names
}

// PrimitiveNames returns primitive member names in insertion order,
// including members whose primitive is nil.
func (c *Cell) PrimitiveNames() []string {
	names := make([]string, len(c.primitives))
	for i, m := range c.primitives {
		names[i] = m.name
	}
	return names
}

func (c *Cell) Cell(name string) (*Cell, bool) {
	i := slices.IndexFunc(c.cells, func(m member[*Cell]) bool { return m.name == name })
	if i < 0 {
		return nil, false
	}
	return c.cells[i].node, true
}

// Primitive returns the member primitive, which may be nil even when ok is true.
func (c *Cell) Primitive(name string) (p *Primitive, ok bool) {
	i := slices.IndexFunc(c.primitives, func(m member[*Primitive]) bool { return m.name == name })
	if i < 0 {
		return nil, false
	}
	return c.primitives[i].node, true
}
