package dump

import "github.com/samcharles93/kernreg/internal/graph"

// Flag is the dump state of one primitive.
type Flag struct {
	Path     string `json:"path" yaml:"path"`
	Operator string `json:"operator" yaml:"operator"`
	// Value is "true", "false" or empty when the flag was never set.
	Value string `json:"value" yaml:"value"`
}

// Enabled reports whether the dump writer will emit this primitive.
func (f Flag) Enabled() bool {
	return f.Value == "true"
}

// Collect lists every reachable primitive below root with its dump flag,
// in walk order.
func Collect(root graph.Node) []Flag {
	var flags []Flag
	_ = graph.Walk(root, func(path string, n graph.Node) error {
		p, ok := n.(*graph.Primitive)
		if !ok {
			return nil
		}
		v, _ := p.Attr(Attr)
		flags = append(flags, Flag{Path: path, Operator: p.Name(), Value: v})
		return nil
	})
	return flags
}
