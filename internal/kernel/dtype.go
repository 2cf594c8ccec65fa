package kernel

import (
	"fmt"
	"strings"
)

// TypeID identifies the element type of a kernel input or output.
type TypeID uint8

const (
	TypeUnknown TypeID = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
	BFloat16
	Complex64
	Complex128
	String
)

var typeNames = [...]string{
	TypeUnknown: "unknown",
	Bool:        "bool",
	Int8:        "int8",
	Int16:       "int16",
	Int32:       "int32",
	Int64:       "int64",
	Uint8:       "uint8",
	Uint16:      "uint16",
	Uint32:      "uint32",
	Uint64:      "uint64",
	Float16:     "float16",
	Float32:     "float32",
	Float64:     "float64",
	BFloat16:    "bfloat16",
	Complex64:   "complex64",
	Complex128:  "complex128",
	String:      "string",
}

// Op-info files spell a few types the way the numpy-facing front end does.
var typeAliases = map[string]TypeID{
	"bool_": Bool,
	"fp16":  Float16,
	"fp32":  Float32,
	"fp64":  Float64,
	"bf16":  BFloat16,
	"int":   Int32,
	"uint":  Uint32,
	"float": Float32,
}

func (t TypeID) String() string {
	if int(t) >= len(typeNames) {
		return fmt.Sprintf("TypeID(%d)", uint8(t))
	}
	return typeNames[t]
}

// ParseTypeID parses a lower-case type name such as "float16".
func ParseTypeID(s string) (TypeID, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if i != int(TypeUnknown) && n == name {
			return TypeID(i), nil
		}
	}
	if t, ok := typeAliases[name]; ok {
		return t, nil
	}
	return TypeUnknown, fmt.Errorf("unknown dtype %q", s)
}

func (t TypeID) MarshalText() ([]byte, error) {
	if t == TypeUnknown || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("cannot marshal invalid dtype %d", uint8(t))
	}
	return []byte(typeNames[t]), nil
}

func (t *TypeID) UnmarshalText(b []byte) error {
	v, err := ParseTypeID(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Format is a tensor memory layout understood by a backend.
type Format string

const (
	DefaultFormat Format = "DefaultFormat"
	ND            Format = "ND"
	NCHW          Format = "NCHW"
	NHWC          Format = "NHWC"
	NCDHW         Format = "NCDHW"
	NDHWC         Format = "NDHWC"
	NC1HWC0       Format = "NC1HWC0"
	FracZ         Format = "FRACTAL_Z"
	FracNZ        Format = "FRACTAL_NZ"
	C1HWNCoC0     Format = "C1HWNCoC0"
)

var knownFormats = map[Format]struct{}{
	DefaultFormat: {}, ND: {}, NCHW: {}, NHWC: {}, NCDHW: {}, NDHWC: {},
	NC1HWC0: {}, FracZ: {}, FracNZ: {}, C1HWNCoC0: {},
}

// ParseFormat validates a layout name. An empty string is DefaultFormat.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFormat, nil
	}
	f := Format(s)
	if _, ok := knownFormats[f]; !ok {
		return "", fmt.Errorf("unknown format %q", s)
	}
	return f, nil
}

// Accepts reports whether a kernel declaring f can consume a tensor laid out as other.
// DefaultFormat and ND are interchangeable.
func (f Format) Accepts(other Format) bool {
	if f == other {
		return true
	}
	return isDefault(f) && isDefault(other)
}

func isDefault(f Format) bool {
	return f == DefaultFormat || f == ND || f == ""
}

// DataType is one (dtype, format) slot of a kernel signature.
type DataType struct {
	Type   TypeID
	Format Format
}

// DT is shorthand for a DataType in DefaultFormat when no format is given.
func DT(t TypeID, format ...Format) DataType {
	f := DefaultFormat
	if len(format) > 0 {
		f = format[0]
	}
	return DataType{Type: t, Format: f}
}

func (d DataType) String() string {
	return d.Type.String() + ":" + string(d.Format)
}

// Accepts reports whether slot d can consume a value of type other.
func (d DataType) Accepts(other DataType) bool {
	return d.Type == other.Type && d.Format.Accepts(other.Format)
}

// ParseDataType parses "float16" or "float16:NC1HWC0".
func ParseDataType(s string) (DataType, error) {
	typ, format, _ := strings.Cut(s, ":")
	t, err := ParseTypeID(typ)
	if err != nil {
		return DataType{}, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return DataType{}, err
	}
	return DataType{Type: t, Format: f}, nil
}

func (d DataType) MarshalText() ([]byte, error) {
	if _, err := d.Type.MarshalText(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

func (d *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
