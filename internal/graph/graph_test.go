package graph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const netYAML = `name: MyNet
primitives:
  relu: ReLU
  matmul:
    op: MatMul
    attrs:
      transpose_b: "true"
  unused: null
cells:
  conv1:
    name: Conv2d
    primitives:
      conv2d: Conv2D
      bias_add: BiasAdd
  head:
    cells:
      dense:
        primitives:
          matmul: MatMul
`

func TestDecodeKeepsOrder(t *testing.T) {
	net, err := Decode([]byte(netYAML))
	require.NoError(t, err)

	assert.Equal(t, "MyNet", net.Name())
	assert.Equal(t, []string{"relu", "matmul", "unused"}, net.PrimitiveNames())
	assert.Equal(t, []string{"conv1", "head"}, net.CellNames())

	p, ok := net.Primitive("unused")
	assert.True(t, ok)
	assert.Nil(t, p)

	mm, ok := net.Primitive("matmul")
	require.True(t, ok)
	v, ok := mm.Attr("transpose_b")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	conv, ok := net.Cell("conv1")
	require.True(t, ok)
	assert.Equal(t, "Conv2d", conv.Name())
	head, _ := net.Cell("head")
	assert.Equal(t, "head", head.Name())
}

func TestDecodeErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":        "",
		"scalar cell":  "cells: {a: 3}",
		"bad field":    "layers: {}",
		"no op":        "primitives: {p: {attrs: {a: b}}}",
		"list prim":    "primitives: {p: [1, 2]}",
		"dup member":   "primitives: {a: ReLU}\ncells: {a: {}}",
		"invalid yaml": "primitives: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, os.WriteFile(path, []byte(netYAML), 0o644))
	net, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MyNet", net.Name())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestWalkPaths(t *testing.T) {
	net, err := Decode([]byte(netYAML))
	require.NoError(t, err)

	var paths []string
	require.NoError(t, Walk(net, func(path string, n Node) error {
		paths = append(paths, path+":"+n.Kind().String())
		return nil
	}))
	assert.Equal(t, []string{
		":cell",
		"relu:primitive",
		"matmul:primitive",
		"conv1:cell",
		"conv1.conv2d:primitive",
		"conv1.bias_add:primitive",
		"head:cell",
		"head.dense:cell",
		"head.dense.matmul:primitive",
	}, paths)
}

func TestWalkStopsOnError(t *testing.T) {
	net, err := Decode([]byte(netYAML))
	require.NoError(t, err)
	stop := errors.New("stop")
	count := 0
	err = Walk(net, func(string, Node) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

func TestWalkSharedAndCyclic(t *testing.T) {
	a := NewCell("A")
	b := NewCell("B")
	require.NoError(t, a.AddCell("b", b))
	require.NoError(t, b.AddCell("a", a))
	require.NoError(t, b.AddPrimitive("op", NewPrimitive("ReLU")))

	visits := 0
	require.NoError(t, Walk(a, func(string, Node) error {
		visits++
		return nil
	}))
	assert.Equal(t, 3, visits)
}

func TestResolve(t *testing.T) {
	net, err := Decode([]byte(netYAML))
	require.NoError(t, err)

	n, err := Resolve(net, "")
	require.NoError(t, err)
	assert.Same(t, net, n)

	n, err = Resolve(net, "head.dense.matmul")
	require.NoError(t, err)
	assert.Equal(t, KindPrimitive, n.Kind())
	assert.Equal(t, "MatMul", n.Name())

	n, err = Resolve(net, "conv1")
	require.NoError(t, err)
	assert.Equal(t, KindCell, n.Kind())

	_, err = Resolve(net, "unused")
	require.ErrorIs(t, err, ErrNoSuchMember)
	_, err = Resolve(net, "relu.more")
	require.ErrorIs(t, err, ErrNoSuchMember)
	_, err = Resolve(net, "nope")
	require.ErrorIs(t, err, ErrNoSuchMember)
}

func TestOperators(t *testing.T) {
	net, err := Decode([]byte(netYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"ReLU", "MatMul", "Conv2D", "BiasAdd"}, Operators(net))
}

func TestMembers(t *testing.T) {
	c := NewCell("c")
	require.NoError(t, c.AddPrimitive("p", nil))
	require.ErrorIs(t, c.AddPrimitive("p", NewPrimitive("ReLU")), ErrDuplicateMember)
	require.Error(t, c.AddCell("x", nil))

	p := NewPrimitive("ReLU").AddAttr("k", "v")
	attrs := p.Attrs()
	attrs["k"] = "changed"
	v, _ := p.Attr("k")
	assert.Equal(t, "v", v)
}
