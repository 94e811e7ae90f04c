package pairs

import (
	"fmt"

	"github.com/born-ml/eikonal/internal/tensor"
)

// Tensors is a PairSet moved onto a compute device.
//
//   - Sources, Receivers: [N, 2], columns (x, z)
//   - Weights: [N, 1]
type Tensors struct {
	Sources   *tensor.Tensor
	Receivers *tensor.Tensor
	Weights   *tensor.Tensor
}

// Tensors converts the pair set for backend on device. The conversion
// copies; callers do it once per split and clone per epoch.
func (ps *PairSet) Tensors(backend tensor.Backend, device tensor.Device) (*Tensors, error) {
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	if device != backend.Device() {
		return nil, fmt.Errorf("%w: %s (backend %s runs on %s)",
			tensor.ErrUnsupportedDevice, device, backend.Name(), backend.Device())
	}

	n := ps.Len()
	src, err := tensor.FromSlice(flatten(ps.Sources), tensor.Shape{n, 2}, backend)
	if err != nil {
		return nil, fmt.Errorf("%w: sources: %w", ErrShapeMismatch, err)
	}
	rcv, err := tensor.FromSlice(flatten(ps.Receivers), tensor.Shape{n, 2}, backend)
	if err != nil {
		return nil, fmt.Errorf("%w: receivers: %w", ErrShapeMismatch, err)
	}
	w, err := tensor.FromSlice(ps.Weights, tensor.Shape{n, 1}, backend)
	if err != nil {
		return nil, fmt.Errorf("%w: weights: %w", ErrShapeMismatch, err)
	}
	return &Tensors{Sources: src, Receivers: rcv, Weights: w}, nil
}

// Len returns the number of pairs.
func (t *Tensors) Len() int {
	return t.Sources.Shape()[0]
}

func flatten(points []Point) []float64 {
	out := make([]float64, 0, 2*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Z)
	}
	return out
}
