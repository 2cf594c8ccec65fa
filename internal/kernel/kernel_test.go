package kernel

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		in      string
		want    DataType
		wantErr bool
	}{
		{"float16", DataType{Float16, DefaultFormat}, false},
		{"float16:NC1HWC0", DataType{Float16, NC1HWC0}, false},
		{"fp32:FRACTAL_NZ", DataType{Float32, FracNZ}, false},
		{"bool_", DataType{Bool, DefaultFormat}, false},
		{"Int32:ND", DataType{Int32, ND}, false},
		{"float99", DataType{}, true},
		{"float16:WEIRD", DataType{}, true},
		{"unknown", DataType{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDataType(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatAccepts(t *testing.T) {
	assert.True(t, DefaultFormat.Accepts(ND))
	assert.True(t, ND.Accepts(DefaultFormat))
	assert.True(t, NC1HWC0.Accepts(NC1HWC0))
	assert.False(t, NC1HWC0.Accepts(DefaultFormat))
	assert.False(t, DefaultFormat.Accepts(NCHW))
}

func TestBuilderRows(t *testing.T) {
	d, err := NewBuilder("BiasAdd", TBE, "bias_add").
		IO(2, 1).
		Row(DT(Float16), DT(Float16), DT(Float16)).
		Row(DT(Float32, NC1HWC0), DT(Float32), DT(Float32, NC1HWC0)).
		Build()
	require.NoError(t, err)
	require.Len(t, d.Combinations, 2)
	assert.Equal(t, []DataType{DT(Float32, NC1HWC0), DT(Float32)}, d.Combinations[1].Inputs)
	assert.Equal(t, []DataType{DT(Float32, NC1HWC0)}, d.Combinations[1].Outputs)
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder("Abs", TBE, "abs").Row(DT(Float16)).Build()
	require.Error(t, err)

	_, err = NewBuilder("Abs", TBE, "abs").IO(1, 1).Row(DT(Float16)).Build()
	require.Error(t, err)

	_, err = NewBuilder("", TBE, "abs").IO(1, 1).Row(DT(Float16), DT(Float16)).Build()
	require.Error(t, err)

	_, err = NewBuilder("AddN", TBE, "add_n").AllSame().IO(2, 1).
		Row(DT(Float16), DT(Float16), DT(Float16)).Build()
	require.Error(t, err)
}

func TestDescriptorMatch(t *testing.T) {
	d, err := NewBuilder("Cast", TBE, "cast").IO(1, 1).
		Row(DT(Float16), DT(Float32)).
		Row(DT(Float32), DT(Float16)).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 1, d.Match([]DataType{DT(Float32)}, []DataType{DT(Float16, ND)}))
	assert.Equal(t, 0, d.Match([]DataType{DT(Float16)}, []DataType{DT(Float32)}))
	assert.Equal(t, -1, d.Match([]DataType{DT(Int32)}, []DataType{DT(Float32)}))
	assert.Equal(t, -1, d.Match([]DataType{DT(Float16), DT(Float16)}, []DataType{DT(Float32)}))
}

func TestDescriptorMatchAllSame(t *testing.T) {
	d, err := NewBuilder("AddN", TBE, "add_n").AllSame().IO(1, 1).
		Row(DT(Float16), DT(Float16)).
		Row(DT(Int32), DT(Int32)).
		Build()
	require.NoError(t, err)

	three := []DataType{DT(Int32), DT(Int32), DT(Int32)}
	assert.Equal(t, 1, d.Match(three, []DataType{DT(Int32)}))
	assert.Equal(t, -1, d.Match([]DataType{DT(Int32), DT(Float16)}, []DataType{DT(Int32)}))
	assert.Equal(t, -1, d.Match(nil, []DataType{DT(Int32)}))
}

func TestCloneIsDeep(t *testing.T) {
	d, err := NewBuilder("Assign", TBE, "assign").IO(2, 1).Ref(0, 0).
		Row(DT(Float32), DT(Float32), DT(Float32)).Build()
	require.NoError(t, err)

	c := d.Clone()
	c.Combinations[0].Inputs[0] = DT(Int8)
	c.OutInRef[0] = 1
	assert.Equal(t, DT(Float32), d.Combinations[0].Inputs[0])
	assert.Equal(t, 0, d.OutInRef[0])
}

func TestBuilderRejectsRefOutOfRange(t *testing.T) {
	row := []DataType{DT(Float32), DT(Float32)}
	for _, ref := range [][2]int{{5, 9}, {1, 0}, {0, 1}} {
		_, err := NewBuilder("Neg", TBE, "neg").IO(1, 1).Ref(ref[0], ref[1]).Row(row...).Build()
		require.Error(t, err, "ref %v", ref)
		assert.Contains(t, err.Error(), "out of range")
	}

	_, err := NewBuilder("Assign", TBE, "assign").IO(2, 1).Ref(0, 1).
		Row(DT(Float32), DT(Float32), DT(Float32)).Build()
	require.NoError(t, err)
}

func TestDescriptorKey(t *testing.T) {
	d := Descriptor{Name: "Abs", Backend: TBE, Impl: "abs"}
	assert.Equal(t, "tbe/abs", d.Key())
	d.DynamicShape = true
	assert.Equal(t, "tbe/abs/dynamic", d.Key())
}

func TestDataTypeEncoding(t *testing.T) {
	b, err := json.Marshal(DT(Float16, NC1HWC0))
	require.NoError(t, err)
	assert.JSONEq(t, `"float16:NC1HWC0"`, string(b))

	var c Combination
	require.NoError(t, yaml.Unmarshal([]byte("inputs: [float16, \"int32:ND\"]\noutputs: [float16]\n"), &c))
	assert.Equal(t, []DataType{DT(Float16), DT(Int32, ND)}, c.Inputs)
	assert.Equal(t, []DataType{DT(Float16)}, c.Outputs)
}
