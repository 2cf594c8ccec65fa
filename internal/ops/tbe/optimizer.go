package tbe

import "github.com/samcharles93/kernreg/internal/kernel"

// refs returns an in-place mapping of the first n outputs onto the first n inputs.
func refs(n int) [][2]int {
	out := make([][2]int, n)
	for i := range out {
		out[i] = [2]int{i, i}
	}
	return out
}

// sparseRows is sameRows with slot idx replaced by i32 indices.
func sparseRows(slots, idx int, dts ...kernel.DataType) [][]kernel.DataType {
	rows := sameRows(slots, dts...)
	for _, row := range rows {
		row[idx] = i32Default
	}
	return rows
}

var optimizerOps = concat(
	withDynamic(
		opInfo{name: "ApplyMomentum", impl: "apply_momentum_d", inputs: 5, outputs: 2, refs: refs(2),
			rows: sameRows(7, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)},
		opInfo{name: "ApplyAdam", impl: "apply_adam_d", inputs: 10, outputs: 3, refs: refs(3),
			rows: sameRows(13, f16Default, f32Default)},
		opInfo{name: "ApplyAdagrad", impl: "apply_adagrad_d", inputs: 4, outputs: 2, refs: refs(2),
			rows: sameRows(6, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)},
		opInfo{name: "ApplyAdagradV2", impl: "apply_adagradv2_d", inputs: 4, outputs: 2, refs: refs(2),
			rows: sameRows(6, f16Default, f32Default)},
		opInfo{name: "ApplyAddSign", impl: "apply_add_sign_d", inputs: 7, outputs: 2, refs: refs(2),
			rows: sameRows(9, f16Default, f32Default)},
		opInfo{name: "ApplyGradientDescent", impl: "apply_gradient_descent", inputs: 3, outputs: 1, refs: refs(1),
			rows: sameRows(4, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)},
		opInfo{name: "ApplyCenteredRMSProp", impl: "apply_centered_rms_prop", inputs: 9, outputs: 1, refs: refs(1),
			rows: sameRows(10, f16Default, f32Default)},
	),
	[]opInfo{
		{name: "ApplyFtrl", impl: "apply_ftrl_d", inputs: 8, outputs: 3, refs: refs(3),
			rows: sameRows(11, f16Default, f16NC1HWC0, f32Default, f32NC1HWC0)},
		{name: "ApplyKerasMomentum", impl: "apply_keras_momentum_d", inputs: 5, outputs: 2, refs: refs(2),
			rows: sameRows(7, f16Default, f32Default)},
		{name: "ApplyAdaMax", impl: "apply_ada_max_d", inputs: 9, outputs: 3, refs: refs(3),
			rows: sameRows(12, f16Default, f32Default)},
		{name: "ApplyAdadelta", impl: "apply_adadelta_d", inputs: 7, outputs: 3, refs: refs(3),
			rows: sameRows(10, f16Default, f32Default)},
		{name: "ApplyAdagradDA", impl: "apply_adagrad_da_d", inputs: 8, outputs: 3, refs: refs(3),
			rows: sparseRows(11, 7, f16Default, f32Default)},
		{name: "ApplyPowerSign", impl: "apply_power_sign_d", inputs: 7, outputs: 2, refs: refs(2),
			rows: sameRows(9, f16Default, f32Default)},
		{name: "ApplyProximalGradientDescent", impl: "apply_proximal_gradient_descent", inputs: 5, outputs: 1, refs: refs(1),
			rows: sameRows(6, f16Default, f32Default)},
		{name: "AdamApplyOne", impl: "adam_apply_one", inputs: 10, outputs: 3,
			rows: sameRows(13, f16Default, f32Default)},
		{name: "AdamApplyOneWithDecay", impl: "adam_apply_one_with_decay", inputs: 11, outputs: 3,
			rows: sameRows(14, f16Default, f32Default)},
		{name: "SparseApplyFtrlV2", impl: "sparse_apply_ftrl_v2_d", inputs: 5, outputs: 3, refs: refs(3),
			rows: sparseRows(8, 4, f32Default)},
		{name: "SparseApplyAdagradV2", impl: "sparse_apply_adagrad_v2_d", inputs: 4, outputs: 2, refs: refs(2),
			rows: sparseRows(6, 3, f32Default)},
	},
)
