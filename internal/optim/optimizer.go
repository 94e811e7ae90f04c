// Package optim implements the optimizers used to fit eikonal models.
//
//   - Optimizer interface: Step, ZeroGrad, GetLR
//   - Adam: Adaptive Moment Estimation (the trainer's default)
//   - SGD: Stochastic Gradient Descent with momentum
//
// Gradients arrive as the map returned by autodiff.Backward and are looked
// up per parameter:
//
//	backend.Tape().StartRecording()
//	loss := model.Loss(src, rcv, nil)
//	grads := autodiff.Backward(loss, backend)
//	optimizer.Step(grads)
//	optimizer.ZeroGrad()
package optim

import (
	"github.com/born-ml/eikonal/internal/nn"
	"github.com/born-ml/eikonal/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters in place.
	// Parameters missing from grads are left untouched.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// getGradient retrieves the gradient for a parameter, or nil when the
// parameter was not part of the computation graph.
func getGradient(param *nn.Parameter, grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}

// attach records grad on the parameter so callers can inspect it after Step.
func attach(param *nn.Parameter, grad *tensor.RawTensor) {
	param.SetGrad(tensor.New(grad, param.Tensor().Backend()))
}
