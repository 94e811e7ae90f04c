package autodiff

import (
	"fmt"

	"github.com/born-ml/eikonal/internal/tensor"
)

// BackwardCapable is implemented by backends that own a gradient tape.
type BackwardCapable interface {
	tensor.Backend
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients of a single-element tensor (typically a loss)
// with respect to everything recorded on the backend's tape.
//
// Gradients are keyed by RawTensor:
//
//	grads := autodiff.Backward(loss, backend)
//	grad := grads[param.Tensor().Raw()]
func Backward[B BackwardCapable](t *tensor.Tensor, backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("backward: expected a single-element output, got shape %v", t.Shape()))
	}
	seed := tensor.MustRaw(t.Shape(), backend.Device())
	seed.Fill(1)
	return backend.GetTape().Backward(t.Raw(), seed, backend)
}
