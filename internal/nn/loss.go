package nn

import (
	"fmt"

	"github.com/born-ml/eikonal/internal/tensor"
)

// MSELoss returns mean((pred - target)²) as a 0-D tensor.
func MSELoss(pred, target *tensor.Tensor) *tensor.Tensor {
	return pred.Sub(target).Square().Mean()
}

// WeightedMSELoss returns mean(weights * (pred - target)²).
//
// weights must broadcast against pred; a nil weights tensor falls back to
// MSELoss.
func WeightedMSELoss(pred, target, weights *tensor.Tensor) *tensor.Tensor {
	if weights == nil {
		return MSELoss(pred, target)
	}
	if _, _, err := tensor.BroadcastShapes(pred.Shape(), weights.Shape()); err != nil {
		panic(fmt.Sprintf("WeightedMSELoss: %v", err))
	}
	return pred.Sub(target).Square().Mul(weights).Mean()
}
