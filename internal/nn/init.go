package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/eikonal/internal/tensor"
)

// Xavier (Glorot) initialization: values drawn from
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
//
// rng may be nil, in which case the global math/rand source is used.
func Xavier(fanIn, fanOut int, shape tensor.Shape, backend tensor.Backend, rng *rand.Rand) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros(shape, backend)
	data := t.Data()
	for i := range data {
		var u float64
		if rng != nil {
			u = rng.Float64()
		} else {
			//nolint:gosec // weight initialization is not security-critical
			u = rand.Float64()
		}
		data[i] = (u*2.0 - 1.0) * bound
	}
	return t
}
