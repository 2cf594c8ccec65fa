package kernel

import "fmt"

// Builder assembles a Descriptor row by row, the way op-info tables list
// one dtype/format per input followed by one per output.
type Builder struct {
	desc    Descriptor
	inputs  int
	outputs int
	err     error
}

// NewBuilder starts a descriptor for operator name on backend, implemented by impl.
func NewBuilder(name, backend, impl string) *Builder {
	return &Builder{desc: Descriptor{Name: name, Backend: backend, Impl: impl}, inputs: -1, outputs: -1}
}

// IO declares the number of inputs and outputs every row carries.
func (b *Builder) IO(inputs, outputs int) *Builder {
	b.inputs, b.outputs = inputs, outputs
	return b
}

func (b *Builder) Dynamic() *Builder {
	b.desc.DynamicShape = true
	return b
}

func (b *Builder) AllSame() *Builder {
	b.desc.AllSame = true
	return b
}

// Ref records that output out is written in place into input in.
func (b *Builder) Ref(out, in int) *Builder {
	if b.desc.OutInRef == nil {
		b.desc.OutInRef = make(map[int]int)
	}
	b.desc.OutInRef[out] = in
	return b
}

// Row appends a combination. The slots are split according to IO.
func (b *Builder) Row(slots ...DataType) *Builder {
	if b.err != nil {
		return b
	}
	if b.inputs < 0 || b.outputs < 0 {
		b.err = fmt.Errorf("%s: Row called before IO", b.desc.Name)
		return b
	}
	if len(slots) != b.inputs+b.outputs {
		b.err = fmt.Errorf("%s: row has %d slots, want %d inputs + %d outputs",
			b.desc.Name, len(slots), b.inputs, b.outputs)
		return b
	}
	b.desc.Combinations = append(b.desc.Combinations, Combination{
		Inputs:  append([]DataType(nil), slots[:b.inputs]...),
		Outputs: append([]DataType(nil), slots[b.inputs:]...),
	})
	return b
}

// Build validates and returns the descriptor.
func (b *Builder) Build() (Descriptor, error) {
	if b.err != nil {
		return Descriptor{}, b.err
	}
	if err := b.desc.Validate(); err != nil {
		return Descriptor{}, err
	}
	return b.desc.Clone(), nil
}
