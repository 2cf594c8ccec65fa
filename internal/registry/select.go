package registry

import (
	"fmt"
	"strings"

	"github.com/samcharles93/kernreg/internal/kernel"
)

// SelectOptions narrows kernel selection.
type SelectOptions struct {
	// Backend restricts candidates to one provider when set.
	Backend string
	// DynamicShape prefers dynamic-shape kernels over static ones.
	DynamicShape bool
}

// Selection is the kernel chosen for a call site.
type Selection struct {
	Descriptor  kernel.Descriptor `json:"descriptor"`
	Combination int               `json:"combination"`
}

// Select picks the first descriptor for name whose signature accepts inputs
// and outputs. Kernels matching opts.DynamicShape are tried before the rest.
func (r *Registry) Select(name string, inputs, outputs []kernel.DataType, opts SelectOptions) (Selection, error) {
	descs, err := r.Lookup(name)
	if err != nil {
		return Selection{}, err
	}

	var fallback *Selection
	for _, d := range descs {
		if opts.Backend != "" && d.Backend != opts.Backend {
			continue
		}
		idx := d.Match(inputs, outputs)
		if idx < 0 {
			continue
		}
		if d.DynamicShape == opts.DynamicShape {
			return Selection{Descriptor: d, Combination: idx}, nil
		}
		if fallback == nil {
			fallback = &Selection{Descriptor: d, Combination: idx}
		}
	}
	if fallback != nil {
		return *fallback, nil
	}
	return Selection{}, fmt.Errorf("%w: %s(%s) -> (%s)", ErrNoMatch, name, joinTypes(inputs), joinTypes(outputs))
}

func joinTypes(ts []kernel.DataType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
