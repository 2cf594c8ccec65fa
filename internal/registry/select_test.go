package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/kernreg/internal/kernel"
)

func selectFixture(t *testing.T) *Registry {
	t.Helper()
	r := New()
	static, err := kernel.NewBuilder("BiasAdd", kernel.TBE, "bias_add").IO(2, 1).
		Row(kernel.DT(kernel.Float16, kernel.NC1HWC0), kernel.DT(kernel.Float16), kernel.DT(kernel.Float16, kernel.NC1HWC0)).
		Row(kernel.DT(kernel.Float32), kernel.DT(kernel.Float32), kernel.DT(kernel.Float32)).
		Build()
	require.NoError(t, err)
	dynamic, err := kernel.NewBuilder("BiasAdd", kernel.TBE, "bias_add").Dynamic().IO(2, 1).
		Row(kernel.DT(kernel.Float32), kernel.DT(kernel.Float32), kernel.DT(kernel.Float32)).
		Build()
	require.NoError(t, err)
	cpu, err := kernel.NewBuilder("BiasAdd", kernel.CPU, "BiasAddCpuKernel").IO(2, 1).
		Row(kernel.DT(kernel.Int32), kernel.DT(kernel.Int32), kernel.DT(kernel.Int32)).
		Build()
	require.NoError(t, err)

	for _, d := range []kernel.Descriptor{static, dynamic, cpu} {
		require.NoError(t, r.Register("BiasAdd", d))
	}
	r.Freeze()
	return r
}

func TestSelectPrefersStatic(t *testing.T) {
	r := selectFixture(t)
	f32 := kernel.DT(kernel.Float32)

	sel, err := r.Select("BiasAdd", []kernel.DataType{f32, f32}, []kernel.DataType{f32}, SelectOptions{})
	require.NoError(t, err)
	assert.False(t, sel.Descriptor.DynamicShape)
	assert.Equal(t, 1, sel.Combination)

	sel, err = r.Select("BiasAdd", []kernel.DataType{f32, f32}, []kernel.DataType{f32}, SelectOptions{DynamicShape: true})
	require.NoError(t, err)
	assert.True(t, sel.Descriptor.DynamicShape)
	assert.Equal(t, 0, sel.Combination)
}

func TestSelectFallsBackAcrossShapeKind(t *testing.T) {
	r := selectFixture(t)
	in := []kernel.DataType{kernel.DT(kernel.Float16, kernel.NC1HWC0), kernel.DT(kernel.Float16, kernel.ND)}
	out := []kernel.DataType{kernel.DT(kernel.Float16, kernel.NC1HWC0)}

	sel, err := r.Select("BiasAdd", in, out, SelectOptions{DynamicShape: true})
	require.NoError(t, err)
	assert.False(t, sel.Descriptor.DynamicShape)
}

func TestSelectBackendFilter(t *testing.T) {
	r := selectFixture(t)
	i32 := kernel.DT(kernel.Int32)

	sel, err := r.Select("BiasAdd", []kernel.DataType{i32, i32}, []kernel.DataType{i32}, SelectOptions{Backend: kernel.CPU})
	require.NoError(t, err)
	assert.Equal(t, "BiasAddCpuKernel", sel.Descriptor.Impl)

	_, err = r.Select("BiasAdd", []kernel.DataType{i32, i32}, []kernel.DataType{i32}, SelectOptions{Backend: kernel.TBE})
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestSelectErrors(t *testing.T) {
	r := selectFixture(t)
	_, err := r.Select("Conv2D", nil, nil, SelectOptions{})
	require.ErrorIs(t, err, ErrNotFound)

	i8 := kernel.DT(kernel.Int8)
	_, err = r.Select("BiasAdd", []kernel.DataType{i8, i8}, []kernel.DataType{i8}, SelectOptions{})
	require.ErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, err.Error(), "int8:DefaultFormat")
}
