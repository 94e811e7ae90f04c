// Package ops defines the differentiable operations recorded on a gradient
// tape.
//
// Each operation keeps its inputs and output from the forward pass and maps
// an output gradient to one gradient per input:
//   - AddOp, SubOp, MulOp, DivOp: element-wise, broadcast-aware
//   - MatMulOp, TransposeOp: d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
//   - ReshapeOp, ExpandOp: shape changes
//   - AddScalarOp, MulScalarOp, TanhOp, SqrtOp: element-wise unary
//   - SumOp, MeanOp, SumDimOp: reductions
package ops

import "github.com/born-ml/eikonal/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns one gradient per input, in the order of Inputs.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}

// base stores inputs and output for the common single-output case.
type base struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// Inputs returns the input tensors.
func (b *base) Inputs() []*tensor.RawTensor {
	return b.inputs
}

// Output returns the output tensor.
func (b *base) Output() *tensor.RawTensor {
	return b.output
}
