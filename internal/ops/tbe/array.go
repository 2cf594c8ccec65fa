package tbe

import "github.com/samcharles93/kernreg/internal/kernel"

var assignRows = sameRows(3, i8Default, u8Default, i32Default, i64Default, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)

var arrayOps = concat(
	withDynamic(
		opInfo{name: "Assign", impl: "assign", inputs: 2, outputs: 1, refs: refs(1), rows: assignRows},
		opInfo{name: "AssignAdd", impl: "assign_add", inputs: 2, outputs: 1, refs: refs(1),
			rows: sameRows(3, i8Default, u8Default, i32Default, i64Default, f16Default, f32Default)},
		opInfo{name: "Tile", impl: "tile_d", inputs: 1, outputs: 1,
			rows: sameRows(2, i32Default, f16Default, f32Default)},
		opInfo{name: "Gather", impl: "gather_v2_d", inputs: 2, outputs: 1,
			rows: [][]kernel.DataType{
				{i8Default, i32Default, i8Default},
				{u8Default, i32Default, u8Default},
				{i32Default, i32Default, i32Default},
				{f16Default, i32Default, f16Default},
				{f32Default, i32Default, f32Default},
				{f32Default, i64Default, f32Default},
			}},
	),
	[]opInfo{
		{name: "AssignSub", impl: "assign_sub", inputs: 2, outputs: 1, refs: refs(1),
			rows: sameRows(3, i8Default, u8Default, i32Default, f16Default, f32Default)},
		{name: "ExpandDims", impl: "expand_dims", inputs: 1, outputs: 1,
			rows: sameRows(2, boolDefault, i8Default, u8Default, i32Default, i64Default, f16Default, f32Default)},
		{name: "DynamicShape", impl: "shape", inputs: 1, outputs: 1, dynamic: true,
			rows: [][]kernel.DataType{
				{f16Default, i64Default},
				{f32Default, i64Default},
				{i32Default, i64Default},
				{i64Default, i64Default},
			}},
		{name: "Sort", impl: "sort", inputs: 1, outputs: 2,
			rows: [][]kernel.DataType{
				{f16Default, f16Default, i32Default},
			}},
	},
)
