package train

import (
	"github.com/born-ml/eikonal/internal/autodiff"
	"github.com/born-ml/eikonal/internal/backend/cpu"
	"github.com/born-ml/eikonal/internal/nn"
	"github.com/born-ml/eikonal/internal/tensor"
)

// Backend is the autodiff CPU backend models compute on.
type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// LossOutput is what a model's loss returns: the single-value loss tensor
// plus named diagnostic scalars for progress reporting.
type LossOutput struct {
	Loss        *tensor.Tensor
	Diagnostics map[string]float64
}

// Model is the differentiable travel-time approximator driven by Run.
//
// Sources and receivers arrive as [N, 2] tensors with columns (x, z) and
// gradient tracking enabled.
type Model interface {
	// Forward returns travel times [N, 1].
	Forward(sources, receivers *tensor.Tensor) *tensor.Tensor

	// Loss returns the training objective. weights is [N, 1] or nil for an
	// unweighted loss.
	Loss(sources, receivers, weights *tensor.Tensor) (LossOutput, error)

	// Velocity returns the velocity implied at each receiver, [N, 1].
	Velocity(sources, receivers *tensor.Tensor) *tensor.Tensor

	// Train and Eval toggle the model's mode.
	Train()
	Eval()

	// Parameters returns the trainable parameters bound to the optimizer.
	Parameters() []*nn.Parameter

	// TauLog returns the diagnostic scalars the model appended during its
	// forward passes, oldest first.
	TauLog() []float64

	// Backend returns the backend the model's parameters live on.
	Backend() Backend
}

// T0Logger is implemented by models that also log a t0 series.
type T0Logger interface {
	T0Log() []float64
}
