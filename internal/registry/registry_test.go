package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/kernreg/internal/kernel"
	"github.com/samcharles93/kernreg/internal/logger"
)

func unary(t *testing.T, name, impl string, dtypes ...kernel.TypeID) kernel.Descriptor {
	t.Helper()
	b := kernel.NewBuilder(name, kernel.TBE, impl).IO(1, 1)
	for _, dt := range dtypes {
		b.Row(kernel.DT(dt), kernel.DT(dt))
	}
	d, err := b.Build()
	require.NoError(t, err)
	return d
}

func testContext() context.Context {
	return logger.WithContext(context.Background(), logger.Discard())
}

func TestLookupReturnsRegistered(t *testing.T) {
	r := New()
	abs := unary(t, "Abs", "abs", kernel.Float16, kernel.Float32)
	absDS := abs.Clone()
	absDS.DynamicShape = true
	relu := unary(t, "ReLU", "relu", kernel.Float16)

	require.NoError(t, r.Register("Abs", abs))
	require.NoError(t, r.Register("Abs", absDS))
	require.NoError(t, r.Register("ReLU", relu))

	got, err := r.Lookup("Abs")
	require.NoError(t, err)
	assert.Equal(t, []kernel.Descriptor{abs, absDS}, got)

	got, err = r.Lookup("ReLU")
	require.NoError(t, err)
	assert.Equal(t, []kernel.Descriptor{relu}, got)
	assert.Equal(t, []string{"Abs", "ReLU"}, r.Names())
	assert.Equal(t, 2, r.Len())
}

func TestLookupUnknownName(t *testing.T) {
	r := New()
	_, err := r.Lookup("Missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"Missing"`)

	_, err = r.Backends("Missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	r := New()
	abs := unary(t, "Abs", "abs", kernel.Float16)
	require.NoError(t, r.Register("Abs", abs))
	require.ErrorIs(t, r.Register("Abs", abs), ErrDuplicate)

	aicpu := abs.Clone()
	aicpu.Backend = kernel.AICPU
	require.NoError(t, r.Register("Abs", aicpu))

	backends, err := r.Backends("Abs")
	require.NoError(t, err)
	assert.Equal(t, []string{kernel.TBE, kernel.AICPU}, backends)
}

func TestRegisterInvalid(t *testing.T) {
	r := New()
	abs := unary(t, "Abs", "abs", kernel.Float16)
	require.ErrorIs(t, r.Register("", abs), ErrInvalidArgument)
	require.ErrorIs(t, r.Register("Neg", abs), ErrInvalidArgument)
	require.ErrorIs(t, r.Register("Abs", kernel.Descriptor{Name: "Abs"}), ErrInvalidArgument)

	unnamed := abs.Clone()
	unnamed.Name = ""
	require.NoError(t, r.Register("Abs", unnamed))
	got, err := r.Lookup("Abs")
	require.NoError(t, err)
	assert.Equal(t, "Abs", got[0].Name)
}

func TestFreezeRejectsRegistration(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Abs", unary(t, "Abs", "abs", kernel.Float16)))
	r.Freeze()
	r.Freeze()
	assert.True(t, r.Frozen())
	require.ErrorIs(t, r.Register("Neg", unary(t, "Neg", "neg", kernel.Float16)), ErrFrozen)

	_, err := r.Lookup("Abs")
	require.NoError(t, err)
}

func TestLookupReturnsCopies(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Abs", unary(t, "Abs", "abs", kernel.Float16)))
	got, err := r.Lookup("Abs")
	require.NoError(t, err)
	got[0].Impl = "mutated"
	got[0].Combinations[0].Inputs[0] = kernel.DT(kernel.Int8)

	again, err := r.Lookup("Abs")
	require.NoError(t, err)
	assert.Equal(t, "abs", again[0].Impl)
	assert.Equal(t, kernel.DT(kernel.Float16), again[0].Combinations[0].Inputs[0])
}

func TestLoadOrderIndependent(t *testing.T) {
	units := make([]Unit, 0, 8)
	for i := range 8 {
		name := fmt.Sprintf("Op%d", i)
		units = append(units, UnitFunc{UnitName: name, Fn: func(r *Registry) error {
			return r.Register(name, unary(t, name, name, kernel.Float16))
		}})
	}
	reversed := make([]Unit, len(units))
	for i, u := range units {
		reversed[len(units)-1-i] = u
	}

	a, err := Build(testContext(), units...)
	require.NoError(t, err)
	b, err := Build(testContext(), reversed...)
	require.NoError(t, err)

	require.Equal(t, a.Names(), b.Names())
	for _, name := range a.Names() {
		da, err := a.Lookup(name)
		require.NoError(t, err)
		db, err := b.Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, da, db)
	}
}

func TestLoadStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Build(testContext(),
		UnitFunc{UnitName: "ok", Fn: func(r *Registry) error { return nil }},
		UnitFunc{UnitName: "bad", Fn: func(r *Registry) error { return boom }},
	)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "registration unit bad")
}

func TestLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	cancel()
	r := New()
	err := r.Load(ctx, UnitFunc{UnitName: "x", Fn: func(r *Registry) error { return nil }})
	require.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentLookupAfterFreeze(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Abs", unary(t, "Abs", "abs", kernel.Float16)))
	r.Freeze()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if _, err := r.Lookup("Abs"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
