package tbe

import "github.com/samcharles93/kernreg/internal/kernel"

var nnOps = concat(
	withDynamic(
		opInfo{name: "BiasAdd", impl: "bias_add", inputs: 2, outputs: 1,
			rows: [][]kernel.DataType{
				{i32Default, i32Default, i32Default},
				{f16Default, f16Default, f16Default},
				{f32Default, f32Default, f32Default},
				{f16NC1HWC0, f16Default, f16NC1HWC0},
				{f32NC1HWC0, f32Default, f32NC1HWC0},
			}},
		opInfo{name: "BiasAddGrad", impl: "bias_add_grad", inputs: 1, outputs: 1,
			rows: [][]kernel.DataType{
				{f16Default, f16Default},
				{f16FracNZ, f16Default},
				{f32Default, f32Default},
				{f32FracNZ, f32Default},
			}},
		opInfo{name: "Conv2D", impl: "conv2d", inputs: 4, outputs: 1,
			rows: [][]kernel.DataType{
				{f16NC1HWC0, f16FracZ, f16Default, i8Default, f16NC1HWC0},
				{i8Default, i8Default, i32Default, i8Default, i32Default},
			}},
		opInfo{name: "Softmax", impl: "softmax_v2", inputs: 1, outputs: 1,
			rows: sameRows(2, f16Default, f16NC1HWC0, f16FracNZ, f32Default, f32NC1HWC0)},
	),
	[]opInfo{
		{name: "BatchNorm", impl: "batch_norm", inputs: 5, outputs: 5,
			rows: [][]kernel.DataType{
				{f16Default, f32Default, f32Default, f32Default, f32Default,
					f16Default, f32Default, f32Default, f32Default, f32Default},
				{f16NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0,
					f16NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0},
				{f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0,
					f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0},
			}},
		{name: "BatchNormGrad", impl: "batch_norm_grad", inputs: 6, outputs: 5,
			rows: [][]kernel.DataType{
				{f16NC1HWC0, f16NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0,
					f16NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0},
				{f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0,
					f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0, f32NC1HWC0},
			}},
		{name: "Conv2DBackpropFilter", impl: "conv2d_backprop_filter_d", inputs: 2, outputs: 1,
			rows: [][]kernel.DataType{
				{f16NC1HWC0, f16NC1HWC0, f32FracZ},
			}},
		{name: "Conv2DBackpropInput", impl: "conv2d_backprop_input_d", inputs: 2, outputs: 1,
			rows: [][]kernel.DataType{
				{f16NC1HWC0, f16FracZ, f16NC1HWC0},
			}},
		{name: "MaxPool", impl: "max_pool", inputs: 1, outputs: 1,
			rows: sameRows(2, f16NC1HWC0)},
		{name: "LayerNorm", impl: "layer_norm", inputs: 3, outputs: 3,
			rows: [][]kernel.DataType{
				{f16FracNZ, f16Default, f16Default, f16FracNZ, f16Default, f16Default},
				{f16Default, f16Default, f16Default, f16Default, f16Default, f16Default},
				{f32FracNZ, f32Default, f32Default, f32FracNZ, f32Default, f32Default},
				{f32Default, f32Default, f32Default, f32Default, f32Default, f32Default},
			}},
		{name: "KLDivLossGrad", impl: "kl_div_loss_grad", inputs: 3, outputs: 1,
			rows: sameRows(4, f16Default, f32Default)},
		{name: "BinaryCrossEntropyGrad", impl: "binary_cross_entropy_grad", inputs: 4, outputs: 1,
			rows: sameRows(5, f16Default, f32Default)},
		{name: "BoundingBoxDecode", impl: "bounding_box_decode", inputs: 2, outputs: 1,
			rows: sameRows(3, f16Default, f32Default)},
		{name: "DepthwiseConv2dNativeBackpropFilter", impl: "depthwise_conv2d_backprop_filter_d", inputs: 2, outputs: 1,
			rows: [][]kernel.DataType{
				{f16NC1HWC0, f16NC1HWC0, f32C1HWNCoC0},
			}},
		{name: "DepthwiseConv2dNative", impl: "depthwise_conv2d", inputs: 3, outputs: 1,
			rows: [][]kernel.DataType{
				{f16NC1HWC0, f16C1HWNCoC0, f16Default, f16NC1HWC0},
			}},
	},
)
