// Package opinfo reads operator kernel tables from op-info files. Each file
// becomes one registration unit, so deployments can add kernels without
// rebuilding.
//
// A file lists the operators of one backend:
//
//	backend: aicpu
//	ops:
//	  - name: TensorArraySize
//	    impl: tensor_array_size
//	    inputs: 1
//	    outputs: 1
//	    dtype_format:
//	      - [int64, int64]
//
// JSON files with the same shape are accepted too.
package opinfo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/kernreg/internal/kernel"
	"github.com/samcharles93/kernreg/internal/registry"
)

// File is the decoded form of an op-info file.
type File struct {
	Backend string `yaml:"backend" json:"backend"`
	Ops     []Op   `yaml:"ops" json:"ops"`
}

// Op is one operator entry. Backend overrides the file default.
type Op struct {
	Name         string              `yaml:"name" json:"name"`
	Backend      string              `yaml:"backend" json:"backend"`
	Impl         string              `yaml:"impl" json:"impl"`
	Inputs       int                 `yaml:"inputs" json:"inputs"`
	Outputs      int                 `yaml:"outputs" json:"outputs"`
	DynamicShape bool                `yaml:"dynamic_shape" json:"dynamic_shape"`
	AllSame      bool                `yaml:"all_same" json:"all_same"`
	Ref          map[int]int         `yaml:"ref" json:"ref"`
	DTypeFormat  [][]kernel.DataType `yaml:"dtype_format" json:"dtype_format"`
}

// Descriptor converts the entry into a kernel descriptor.
func (o Op) Descriptor(defaultBackend string) (kernel.Descriptor, error) {
	backend := o.Backend
	if backend == "" {
		backend = defaultBackend
	}
	impl := o.Impl
	if impl == "" {
		impl = o.Name
	}
	b := kernel.NewBuilder(o.Name, backend, impl).IO(o.Inputs, o.Outputs)
	if o.DynamicShape {
		b.Dynamic()
	}
	if o.AllSame {
		b.AllSame()
	}
	// sorted so builder errors are deterministic
	outs := make([]int, 0, len(o.Ref))
	for out := range o.Ref {
		outs = append(outs, out)
	}
	sort.Ints(outs)
	for _, out := range outs {
		b.Ref(out, o.Ref[out])
	}
	for _, row := range o.DTypeFormat {
		b.Row(row...)
	}
	return b.Build()
}

// Decode parses an op-info document. format is "yaml" or "json".
func Decode(data []byte, format string) (*File, error) {
	var f File
	switch format {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported op-info format %q", format)
	}
	return &f, nil
}

type fileUnit struct {
	path string
	file *File
}

func (u fileUnit) Name() string { return "opinfo/" + filepath.Base(u.path) }

func (u fileUnit) Register(r *registry.Registry) error {
	for _, op := range u.file.Ops {
		d, err := op.Descriptor(u.file.Backend)
		if err != nil {
			return err
		}
		if err := r.Register(op.Name, d); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads one op-info file as a registration unit.
func LoadFile(path string) (registry.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fileUnit{path: path, file: f}, nil
}

// LoadDir returns a unit for every .yaml, .yml and .json file in dir, sorted
// by file name. A missing dir yields no units.
func LoadDir(dir string) ([]registry.Unit, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var units []registry.Unit
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		u, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}
