// Package kernel describes backend kernel implementations of operators: the
// dtype/format signatures they accept and where their implementation lives.
package kernel

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Backend names a kernel provider.
const (
	TBE   = "tbe"
	AICPU = "aicpu"
	CPU   = "cpu"
	GPU   = "gpu"
)

// Combination is one supported signature of a kernel.
type Combination struct {
	Inputs  []DataType `json:"inputs" yaml:"inputs"`
	Outputs []DataType `json:"outputs" yaml:"outputs"`
}

func (c Combination) clone() Combination {
	return Combination{
		Inputs:  slices.Clone(c.Inputs),
		Outputs: slices.Clone(c.Outputs),
	}
}

// Descriptor identifies one backend implementation of an operator.
// Values handed out by the registry are copies; mutating them has no effect
// on what is registered.
type Descriptor struct {
	// Name is the operator name, e.g. "BiasAdd".
	Name string `json:"name" yaml:"name"`
	// Backend is the provider, e.g. "tbe".
	Backend string `json:"backend" yaml:"backend"`
	// Impl references the implementation artifact (kernel or binary name).
	Impl string `json:"impl" yaml:"impl"`
	// Combinations lists the accepted signatures in preference order.
	Combinations []Combination `json:"combinations" yaml:"combinations"`
	// AllSame marks variadic kernels: the first slot of each combination
	// repeats for every input and output.
	AllSame bool `json:"all_same,omitempty" yaml:"all_same"`
	// DynamicShape marks kernels compiled for unknown shapes.
	DynamicShape bool `json:"dynamic_shape,omitempty" yaml:"dynamic_shape"`
	// OutInRef maps an output index to the input it aliases.
	OutInRef map[int]int `json:"out_in_ref,omitempty" yaml:"out_in_ref"`
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.Combinations != nil {
		out.Combinations = make([]Combination, len(d.Combinations))
		for i, c := range d.Combinations {
			out.Combinations[i] = c.clone()
		}
	}
	if d.OutInRef != nil {
		out.OutInRef = maps.Clone(d.OutInRef)
	}
	return out
}

// Key is the identity used to detect duplicate registrations.
func (d Descriptor) Key() string {
	key := d.Backend + "/" + d.Impl
	if d.DynamicShape {
		key += "/dynamic"
	}
	return key
}

var errInvalidDescriptor = errors.New("invalid kernel descriptor")

// Validate checks the structural invariants of a descriptor.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty operator name", errInvalidDescriptor)
	}
	if d.Backend == "" {
		return fmt.Errorf("%w: %s: empty backend", errInvalidDescriptor, d.Name)
	}
	for i, c := range d.Combinations {
		if d.AllSame && (len(c.Inputs) != 1 || len(c.Outputs) > 1) {
			return fmt.Errorf("%w: %s: all-same combination %d must declare one input and at most one output",
				errInvalidDescriptor, d.Name, i)
		}
		for _, dt := range append(slices.Clone(c.Inputs), c.Outputs...) {
			if dt.Type == TypeUnknown {
				return fmt.Errorf("%w: %s: combination %d has unknown dtype", errInvalidDescriptor, d.Name, i)
			}
		}
	}
	for out, in := range d.OutInRef {
		if out < 0 || in < 0 {
			return fmt.Errorf("%w: %s: negative ref index", errInvalidDescriptor, d.Name)
		}
		// all-same slots repeat, so any index is in range
		if d.AllSame {
			continue
		}
		for i, c := range d.Combinations {
			if out >= len(c.Outputs) || in >= len(c.Inputs) {
				return fmt.Errorf("%w: %s: ref output %d -> input %d out of range for combination %d (%d inputs, %d outputs)",
					errInvalidDescriptor, d.Name, out, in, i, len(c.Inputs), len(c.Outputs))
			}
		}
	}
	return nil
}

// Match returns the index of the first combination accepting the requested
// signature, or -1.
func (d Descriptor) Match(inputs, outputs []DataType) int {
	for i, c := range d.Combinations {
		if d.accepts(c, inputs, outputs) {
			return i
		}
	}
	return -1
}

func (d Descriptor) accepts(c Combination, inputs, outputs []DataType) bool {
	if d.AllSame {
		if len(inputs) == 0 {
			return false
		}
		for _, in := range inputs {
			if !c.Inputs[0].Accepts(in) {
				return false
			}
		}
		if len(c.Outputs) == 0 {
			return len(outputs) == 0
		}
		for _, out := range outputs {
			if !c.Outputs[0].Accepts(out) {
				return false
			}
		}
		return true
	}
	if len(c.Inputs) != len(inputs) || len(c.Outputs) != len(outputs) {
		return false
	}
	for i := range inputs {
		if !c.Inputs[i].Accepts(inputs[i]) {
			return false
		}
	}
	for i := range outputs {
		if !c.Outputs[i].Accepts(outputs[i]) {
			return false
		}
	}
	return true
}
