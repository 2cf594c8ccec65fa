package graph

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoSuchMember = errors.New("no such member")

// VisitFunc receives each reachable node with its dotted member path
// relative to the walk root ("" for the root itself).
type VisitFunc func(path string, n Node) error

// Walk visits root and, for cells, every non-nil primitive and child cell
// reachable through membership, depth first in insertion order. A cell
// reachable along several paths is visited once, so shared or cyclic
// membership terminates.
func Walk(root Node, fn VisitFunc) error {
	switch n := root.(type) {
	case *Cell:
		if n == nil {
			return nil
		}
		return walkCell("", n, make(map[*Cell]struct{}), fn)
	case *Primitive:
		if n == nil {
			return nil
		}
		return fn("", n)
	default:
		return nil
	}
}

func walkCell(path string, c *Cell, seen map[*Cell]struct{}, fn VisitFunc) error {
	if _, ok := seen[c]; ok {
		return nil
	}
	seen[c] = struct{}{}
	if err := fn(path, c); err != nil {
		return err
	}
	for _, m := range c.primitives {
		if m.node == nil {
			continue
		}
		if err := fn(join(path, m.name), m.node); err != nil {
			return err
		}
	}
	for _, m := range c.cells {
		if err := walkCell(join(path, m.name), m.node, seen, fn); err != nil {
			return err
		}
	}
	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// Resolve finds the member at a dotted path below root. The empty path is
// root itself. A path naming a nil primitive member fails.
func Resolve(root *Cell, path string) (Node, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return root, nil
	}
	parts := strings.Split(path, ".")
	cur := root
	for i, part := range parts {
		last := i == len(parts)-1
		if child, ok := cur.Cell(part); ok {
			if last {
				return child, nil
			}
			cur = child
			continue
		}
		if p, ok := cur.Primitive(part); ok && last {
			if p == nil {
				return nil, fmt.Errorf("%w: %s is unset", ErrNoSuchMember, path)
			}
			return p, nil
		}
		return nil, fmt.Errorf("%w: %s (at %q)", ErrNoSuchMember, path, part)
	}
	return cur, nil
}

// Operators returns the distinct operator names of all reachable primitives.
func Operators(root Node) []string {
	seen := make(map[string]struct{})
	var names []string
	_ = Walk(root, func(_ string, n Node) error {
		if p, ok := n.(*Primitive); ok {
			if _, dup := seen[p.Name()]; !dup {
				seen[p.Name()] = struct{}{}
				names = append(names, p.Name())
			}
		}
		return nil
	})
	return names
}
