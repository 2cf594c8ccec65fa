package tbe

import "github.com/samcharles93/kernreg/internal/kernel"

var floatUnaryRows = sameRows(2, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)

var elementwiseOps = concat(
	withDynamic(
		opInfo{name: "Abs", impl: "abs", inputs: 1, outputs: 1,
			rows: sameRows(2, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0, i32Default, i32NC1HWC0)},
		opInfo{name: "AbsGrad", impl: "abs_grad", inputs: 2, outputs: 1,
			rows: sameRows(3, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)},
		opInfo{name: "Acosh", impl: "acosh", inputs: 1, outputs: 1, rows: floatUnaryRows},
		opInfo{name: "AcoshGrad", impl: "acosh_grad", inputs: 2, outputs: 1,
			rows: sameRows(3, f16Default, f32Default)},
		opInfo{name: "ReLU", impl: "relu", inputs: 1, outputs: 1,
			rows: sameRows(2, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0, i8Default, i32Default)},
		opInfo{name: "Sigmoid", impl: "sigmoid", inputs: 1, outputs: 1, rows: floatUnaryRows},
		opInfo{name: "Neg", impl: "neg", inputs: 1, outputs: 1,
			rows: sameRows(2, f16Default, f32Default, i32Default, i8Default)},
		opInfo{name: "Square", impl: "square", inputs: 1, outputs: 1, rows: floatUnaryRows},
		opInfo{name: "Sqrt", impl: "sqrt", inputs: 1, outputs: 1, rows: floatUnaryRows},
		opInfo{name: "Cast", impl: "cast", inputs: 1, outputs: 1, rows: castRows},
	),
	[]opInfo{
		{name: "Acos", impl: "acos", inputs: 1, outputs: 1, rows: sameRows(2, f16Default, f32Default)},
		{name: "AcosGrad", impl: "acos_grad", inputs: 2, outputs: 1, rows: sameRows(3, f16Default, f32Default)},
		{name: "Asin", impl: "asin", inputs: 1, outputs: 1, rows: floatUnaryRows},
		{name: "Asinh", impl: "asinh", inputs: 1, outputs: 1, rows: floatUnaryRows},
		{name: "Celu", impl: "celu", inputs: 1, outputs: 1, rows: sameRows(2, f16Default, f32Default)},
		{name: "Rsqrt", impl: "rsqrt", inputs: 1, outputs: 1, rows: floatUnaryRows},
		{name: "Exp", impl: "exp", inputs: 1, outputs: 1, rows: floatUnaryRows},
		{name: "Log", impl: "log", inputs: 1, outputs: 1, rows: floatUnaryRows},
		{name: "Round", impl: "round", inputs: 1, outputs: 1,
			rows: sameRows(2, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0, i32Default)},
		{name: "Sin", impl: "sin", inputs: 1, outputs: 1, rows: sameRows(2, f16Default, f32Default)},
		{name: "Cos", impl: "cos", inputs: 1, outputs: 1, rows: sameRows(2, f16Default, f32Default)},
		{name: "HSigmoidGrad", impl: "hard_sigmoid_grad", inputs: 2, outputs: 1,
			rows: sameRows(3, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)},
		{name: "OnesLike", impl: "ones_like", inputs: 1, outputs: 1,
			rows: sameRows(2, u8Default, i8Default, i32Default, f16Default, f32Default)},
	},
)

var castRows = [][]kernel.DataType{
	{boolDefault, f16Default},
	{boolDefault, u8Default},
	{boolDefault, f32Default},
	{boolDefault, i32Default},
	{i8Default, f16Default},
	{i8Default, f32Default},
	{i8Default, i32Default},
	{u8Default, f16Default},
	{u8Default, f32Default},
	{u8Default, i32Default},
	{i32Default, boolDefault},
	{i32Default, f16Default},
	{i32Default, f32Default},
	{i32Default, i8Default},
	{i32Default, u8Default},
	{f16Default, u8Default},
	{f16Default, f32Default},
	{f16Default, i32Default},
	{f32Default, f16Default},
	{f32Default, i32Default},
	{f16NC1HWC0, f32NC1HWC0},
	{f32NC1HWC0, f16NC1HWC0},
	{f16FracNZ, f32FracNZ},
	{f32FracNZ, f16FracNZ},
}

func concat(groups ...[]opInfo) []opInfo {
	var out []opInfo
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
