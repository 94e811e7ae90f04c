package tensor_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/eikonal/internal/backend/cpu"
	"github.com/born-ml/eikonal/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, 6, x.NumElements())
	assert.Equal(t, 6.0, x.At(1, 2))
	assert.Equal(t, tensor.CPU, x.Device())

	_, err = tensor.FromSlice([]float64{1, 2}, tensor.Shape{3}, backend)
	require.Error(t, err)
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	assert.Equal(t, []float64{0, 0}, tensor.Zeros(tensor.Shape{2}, backend).Data())
	assert.Equal(t, []float64{1, 1}, tensor.Ones(tensor.Shape{2}, backend).Data())
	assert.Equal(t, []float64{7, 7, 7}, tensor.Full(tensor.Shape{3}, 7, backend).Data())
	assert.Equal(t, 3.5, tensor.Scalar(3.5, backend).Item())

	empty := tensor.Zeros(tensor.Shape{0, 2}, backend)
	assert.Equal(t, 0, empty.NumElements())
}

func TestCloneAndDetach(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	x.RequireGrad()

	c := x.Clone()
	assert.False(t, c.RequiresGrad(), "clone must not inherit gradient tracking")
	c.Data()[0] = 100
	assert.Equal(t, 1.0, x.Data()[0], "clone must not share storage")

	d := x.Detach()
	assert.False(t, d.RequiresGrad())
	assert.Same(t, x.Raw(), d.Raw(), "detach shares storage")

	g := x.Clone().RequireGrad()
	assert.True(t, g.RequiresGrad())
	assert.Equal(t, x.Data()[1], g.Data()[1])
}

func TestItemPanicsOnVector(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() {
		tensor.Ones(tensor.Shape{2}, backend).Item()
	})
}

func TestHasNaN(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{1, math.NaN()}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	assert.True(t, x.HasNaN())
	assert.False(t, tensor.Ones(tensor.Shape{3}, backend).HasNaN())
}

func TestTo(t *testing.T) {
	backend := cpu.New()
	x := tensor.Ones(tensor.Shape{2}, backend)

	same, err := x.To(tensor.CPU)
	require.NoError(t, err)
	assert.Same(t, x, same)

	_, err = x.To(tensor.CUDA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrUnsupportedDevice))
}

func TestParseDevice(t *testing.T) {
	tests := []struct {
		in   string
		want tensor.Device
		ok   bool
	}{
		{"", tensor.CPU, true},
		{"cpu", tensor.CPU, true},
		{"CUDA", tensor.CUDA, true},
		{"mps", tensor.Metal, true},
		{"webgpu", tensor.WebGPU, true},
		{"tpu", tensor.CPU, false},
	}
	for _, tt := range tests {
		got, err := tensor.ParseDevice(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, tensor.ErrUnsupportedDevice, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestBroadcastShapes(t *testing.T) {
	out, needs, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{3, 5})
	require.NoError(t, err)
	assert.True(t, needs)
	assert.Equal(t, tensor.Shape{3, 5}, out)

	out, needs, err = tensor.BroadcastShapes(tensor.Shape{5}, tensor.Shape{3, 5})
	require.NoError(t, err)
	assert.True(t, needs)
	assert.Equal(t, tensor.Shape{3, 5}, out)

	_, needs, err = tensor.BroadcastShapes(tensor.Shape{2, 2}, tensor.Shape{2, 2})
	require.NoError(t, err)
	assert.False(t, needs)

	_, _, err = tensor.BroadcastShapes(tensor.Shape{3, 4}, tensor.Shape{3, 5})
	require.Error(t, err)
}

func TestShape(t *testing.T) {
	assert.Equal(t, 1, tensor.Shape{}.NumElements())
	assert.Equal(t, 0, tensor.Shape{0, 2}.NumElements())
	assert.Equal(t, []int{6, 3, 1}, tensor.Shape{2, 2, 3}.Strides())
	require.Error(t, tensor.Shape{2, -1}.Validate())
}

func TestOpsDispatch(t *testing.T) {
	backend := cpu.New()
	a, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 4, 9, 16}, a.Square().Data())
	assert.Equal(t, []float64{1, 3, 2, 4}, a.T().Data())
	assert.Equal(t, []float64{7, 10, 15, 22}, a.MatMul(a).Data())
	assert.Equal(t, 10.0, a.Sum().Item())
	assert.Equal(t, 2.5, a.Mean().Item())
	assert.Equal(t, []float64{3, 7}, a.SumDim(1, false).Data())
	assert.Equal(t, tensor.Shape{4}, a.Reshape(4).Shape())
}
