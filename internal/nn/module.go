// Package nn implements the neural network building blocks used by the
// eikonal models:
//   - Module interface: Forward and Parameters
//   - Parameter: trainable tensors with gradient slots
//   - Linear: fully connected layer with Xavier initialization
//   - Tanh: activation module
//   - Loss functions: MSELoss, WeightedMSELoss
package nn

import "github.com/born-ml/eikonal/internal/tensor"

// Module is the base interface for all neural network components.
//
// Modules compose by holding other modules and concatenating their
// parameters.
type Module interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters of this module, or an
	// empty slice for modules without any.
	Parameters() []*Parameter
}

// CountParameters returns the total number of scalar weights in params.
func CountParameters(params []*Parameter) int {
	total := 0
	for _, p := range params {
		total += p.Tensor().NumElements()
	}
	return total
}
