// Package tbe registers the Ascend TBE kernels. Each operator family is a
// separate registration unit; families register disjoint operator names.
package tbe

import (
	"github.com/samcharles93/kernreg/internal/kernel"
	"github.com/samcharles93/kernreg/internal/registry"
)

// Slot shorthands mirroring the op-info dtype_format vocabulary.
var (
	boolDefault = kernel.DT(kernel.Bool)
	i8Default   = kernel.DT(kernel.Int8)
	u8Default   = kernel.DT(kernel.Uint8)
	i32Default  = kernel.DT(kernel.Int32)
	i64Default  = kernel.DT(kernel.Int64)
	f16Default  = kernel.DT(kernel.Float16)
	f32Default  = kernel.DT(kernel.Float32)

	i32NC1HWC0 = kernel.DT(kernel.Int32, kernel.NC1HWC0)
	f16NC1HWC0 = kernel.DT(kernel.Float16, kernel.NC1HWC0)
	f32NC1HWC0 = kernel.DT(kernel.Float32, kernel.NC1HWC0)

	f16FracZ  = kernel.DT(kernel.Float16, kernel.FracZ)
	f32FracZ  = kernel.DT(kernel.Float32, kernel.FracZ)
	f16FracNZ = kernel.DT(kernel.Float16, kernel.FracNZ)
	f32FracNZ = kernel.DT(kernel.Float32, kernel.FracNZ)

	f16C1HWNCoC0 = kernel.DT(kernel.Float16, kernel.C1HWNCoC0)
	f32C1HWNCoC0 = kernel.DT(kernel.Float32, kernel.C1HWNCoC0)
)

// opInfo is one row of the family tables.
type opInfo struct {
	name    string
	impl    string
	inputs  int
	outputs int
	dynamic bool
	allSame bool
	refs    [][2]int
	rows    [][]kernel.DataType
}

func (o opInfo) descriptor() (kernel.Descriptor, error) {
	b := kernel.NewBuilder(o.name, kernel.TBE, o.impl).IO(o.inputs, o.outputs)
	if o.dynamic {
		b.Dynamic()
	}
	if o.allSame {
		b.AllSame()
	}
	for _, ref := range o.refs {
		b.Ref(ref[0], ref[1])
	}
	for _, row := range o.rows {
		b.Row(row...)
	}
	return b.Build()
}

type family struct {
	name string
	ops  []opInfo
}

func (f family) Name() string { return "tbe/" + f.name }

func (f family) Register(r *registry.Registry) error {
	for _, op := range f.ops {
		d, err := op.descriptor()
		if err != nil {
			return err
		}
		if err := r.Register(op.name, d); err != nil {
			return err
		}
	}
	return nil
}

// Units returns every TBE registration unit.
func Units() []registry.Unit {
	return []registry.Unit{
		family{name: "elementwise", ops: elementwiseOps},
		family{name: "math", ops: mathOps},
		family{name: "nn", ops: nnOps},
		family{name: "optimizer", ops: optimizerOps},
		family{name: "array", ops: arrayOps},
	}
}

// withDynamic returns ops followed by a dynamic-shape twin of each,
// implemented by the "<impl>_ds" kernel.
func withDynamic(ops ...opInfo) []opInfo {
	out := make([]opInfo, 0, 2*len(ops))
	out = append(out, ops...)
	for _, op := range ops {
		ds := op
		ds.impl = op.impl + "_ds"
		ds.dynamic = true
		out = append(out, ds)
	}
	return out
}

// sameRows builds rows where every slot carries the same data type.
func sameRows(slots int, dts ...kernel.DataType) [][]kernel.DataType {
	rows := make([][]kernel.DataType, len(dts))
	for i, dt := range dts {
		row := make([]kernel.DataType, slots)
		for j := range row {
			row[j] = dt
		}
		rows[i] = row
	}
	return rows
}
