package tbe

import "github.com/samcharles93/kernreg/internal/kernel"

var binaryRows = sameRows(3, i32Default, i32NC1HWC0, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)

var compareRows = [][]kernel.DataType{
	{i8Default, i8Default, boolDefault},
	{u8Default, u8Default, boolDefault},
	{i32Default, i32Default, boolDefault},
	{f16Default, f16Default, boolDefault},
	{f16NC1HWC0, f16NC1HWC0, kernel.DT(kernel.Bool, kernel.NC1HWC0)},
	{f32Default, f32Default, boolDefault},
	{f32NC1HWC0, f32NC1HWC0, kernel.DT(kernel.Bool, kernel.NC1HWC0)},
}

var mathOps = concat(
	withDynamic(
		opInfo{name: "Add", impl: "add", inputs: 2, outputs: 1, rows: binaryRows},
		opInfo{name: "Sub", impl: "sub", inputs: 2, outputs: 1, rows: binaryRows},
		opInfo{name: "Mul", impl: "mul", inputs: 2, outputs: 1, rows: binaryRows},
		opInfo{name: "AddN", impl: "add_n", inputs: 1, outputs: 1, allSame: true,
			rows: sameRows(2, f16Default, f16NC1HWC0, f16FracZ, f32Default, f32NC1HWC0, f32FracZ, i32Default)},
		opInfo{name: "AccumulateNV2", impl: "accumulate_n_v2", inputs: 1, outputs: 1, allSame: true,
			rows: sameRows(2, f16Default, f32Default, i8Default, u8Default, i32Default)},
		opInfo{name: "BatchMatMul", impl: "batch_matmul", inputs: 2, outputs: 1,
			rows: [][]kernel.DataType{
				{f16FracNZ, f16FracNZ, f16FracNZ},
				{f16FracNZ, f16FracNZ, f32FracNZ},
				{f32Default, f32Default, f32Default},
				{i32Default, i32Default, i32Default},
			}},
		opInfo{name: "ReduceSum", impl: "reduce_sum_d", inputs: 1, outputs: 1,
			rows: sameRows(2, f16Default, f32Default)},
	),
	[]opInfo{
		{name: "RealDiv", impl: "realdiv", inputs: 2, outputs: 1,
			rows: sameRows(3, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)},
		{name: "Maximum", impl: "maximum", inputs: 2, outputs: 1, rows: binaryRows},
		{name: "Minimum", impl: "minimum", inputs: 2, outputs: 1, rows: binaryRows},
		{name: "Equal", impl: "equal", inputs: 2, outputs: 1, rows: compareRows},
		{name: "Greater", impl: "greater", inputs: 2, outputs: 1, rows: compareRows},
		{name: "ApproximateEqual", impl: "approximate_equal", inputs: 2, outputs: 1,
			rows: [][]kernel.DataType{
				{f16Default, f16Default, boolDefault},
				{f32Default, f32Default, boolDefault},
			}},
		{name: "MatMul", impl: "matmul", inputs: 3, outputs: 1,
			rows: [][]kernel.DataType{
				{f16FracNZ, f16FracNZ, f16Default, f16FracNZ},
				{f16FracNZ, f16FracNZ, f32Default, f32FracNZ},
				{f32Default, f32Default, f32Default, f32Default},
				{i32Default, i32Default, i32Default, i32Default},
			}},
		{name: "BatchMatMulV2", impl: "batch_matmul_v2", inputs: 2, outputs: 1,
			rows: [][]kernel.DataType{
				{f16FracNZ, f16FracNZ, f16FracNZ},
				{i8Default, i8Default, i32Default},
			}},
		{name: "InplaceAdd", impl: "inplace_add_d", inputs: 2, outputs: 1, refs: [][2]int{{0, 0}},
			rows: sameRows(3, f16Default, f32Default, i32Default)},
		{name: "InplaceSub", impl: "inplace_sub_d", inputs: 2, outputs: 1, refs: [][2]int{{0, 0}},
			rows: sameRows(3, f16Default, f32Default, i32Default)},
		{name: "Cummin", impl: "cummin", inputs: 1, outputs: 2,
			rows: [][]kernel.DataType{
				{f16Default, f16Default, i32Default},
				{f32Default, f32Default, i32Default},
				{i8Default, i8Default, i32Default},
				{u8Default, u8Default, i32Default},
				{i32Default, i32Default, i32Default},
			}},
		{name: "ReduceMean", impl: "reduce_mean_d", inputs: 1, outputs: 1,
			rows: sameRows(2, i8Default, u8Default, f16Default, f32Default)},
	},
)
