package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/eikonal/internal/autodiff"
	"github.com/born-ml/eikonal/internal/backend/cpu"
	"github.com/born-ml/eikonal/internal/nn"
	"github.com/born-ml/eikonal/internal/tensor"
)

func TestParameter(t *testing.T) {
	backend := autodiff.New(cpu.New())

	data, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("test_param", data)

	assert.Equal(t, "test_param", param.Name())
	assert.Same(t, data, param.Tensor())
	assert.True(t, param.Tensor().RequiresGrad())
	assert.Nil(t, param.Grad())

	grad, err := tensor.FromSlice([]float64{0.1, 0.2, 0.3}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	param.SetGrad(grad)
	assert.Same(t, grad, param.Grad())

	param.ZeroGrad()
	assert.Nil(t, param.Grad())
}

func TestLinear_Creation(t *testing.T) {
	backend := autodiff.New(cpu.New())

	layer := nn.NewLinear(10, 5, backend, nn.WithName("hidden0"))

	assert.Equal(t, 10, layer.InFeatures())
	assert.Equal(t, 5, layer.OutFeatures())
	assert.True(t, layer.Weight().Tensor().Shape().Equal(tensor.Shape{5, 10}))
	require.NotNil(t, layer.Bias())
	assert.True(t, layer.Bias().Tensor().Shape().Equal(tensor.Shape{5}))
	assert.Equal(t, "hidden0.weight", layer.Weight().Name())
	assert.Equal(t, "hidden0.bias", layer.Bias().Name())

	for _, v := range layer.Bias().Tensor().Data() {
		assert.Zero(t, v)
	}

	bound := math.Sqrt(6.0 / 15.0)
	for _, v := range layer.Weight().Tensor().Data() {
		assert.LessOrEqual(t, math.Abs(v), bound)
	}

	assert.Len(t, layer.Parameters(), 2)
	assert.Equal(t, 55, nn.CountParameters(layer.Parameters()))
}

func TestLinear_WithoutBias(t *testing.T) {
	backend := autodiff.New(cpu.New())

	layer := nn.NewLinear(2, 3, backend, nn.WithoutBias())

	assert.Nil(t, layer.Bias())
	assert.Len(t, layer.Parameters(), 1)
	assert.Equal(t, 6, nn.CountParameters(layer.Parameters()))
}

func TestLinear_WithRandIsDeterministic(t *testing.T) {
	backend := cpu.New()

	a := nn.NewLinear(4, 3, backend, nn.WithRand(rand.New(rand.NewSource(7))))
	b := nn.NewLinear(4, 3, backend, nn.WithRand(rand.New(rand.NewSource(7))))

	assert.Equal(t, a.Weight().Tensor().Data(), b.Weight().Tensor().Data())
}

func TestLinear_Forward(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(2, 2, backend)

	// W = [[1, 2], [3, 4]], b = [0.5, -0.5]
	copy(layer.Weight().Tensor().Data(), []float64{1, 2, 3, 4})
	copy(layer.Bias().Tensor().Data(), []float64{0.5, -0.5})

	x, err := tensor.FromSlice([]float64{1, 1, 2, 0}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	y := layer.Forward(x)

	assert.True(t, y.Shape().Equal(tensor.Shape{2, 2}))
	assert.InDeltaSlice(t, []float64{3.5, 6.5, 2.5, 5.5}, y.Data(), 1e-12)
}

func TestLinear_ForwardPanicsOnWrongFeatures(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend)

	x := tensor.Zeros(tensor.Shape{4, 2}, backend)
	assert.Panics(t, func() { layer.Forward(x) })
	assert.Panics(t, func() { layer.Forward(tensor.Zeros(tensor.Shape{3}, backend)) })
}

func TestLinear_Gradients(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	layer := nn.NewLinear(2, 1, backend)
	copy(layer.Weight().Tensor().Data(), []float64{0.5, -1})

	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	loss := layer.Forward(x).Sum()
	grads := autodiff.Backward(loss, backend)

	// d(sum(x @ W.T + b))/dW = column sums of x; d/db = batch size.
	wGrad := grads[layer.Weight().Tensor().Raw()]
	require.NotNil(t, wGrad)
	assert.InDeltaSlice(t, []float64{4, 6}, wGrad.Data(), 1e-12)

	bGrad := grads[layer.Bias().Tensor().Raw()]
	require.NotNil(t, bGrad)
	assert.InDeltaSlice(t, []float64{2}, bGrad.Data(), 1e-12)
}

func TestTanh(t *testing.T) {
	backend := cpu.New()
	act := nn.NewTanh()

	x, err := tensor.FromSlice([]float64{-1, 0, 2}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	y := act.Forward(x)
	assert.InDeltaSlice(t, []float64{math.Tanh(-1), 0, math.Tanh(2)}, y.Data(), 1e-12)
	assert.Empty(t, act.Parameters())
}

func TestSequential(t *testing.T) {
	backend := cpu.New()

	l1 := nn.NewLinear(2, 4, backend)
	l2 := nn.NewLinear(4, 1, backend)
	model := nn.NewSequential(l1, nn.NewTanh())
	model.Add(l2)

	assert.Equal(t, 3, model.Len())
	assert.Same(t, l2, model.Module(2))
	assert.Len(t, model.Parameters(), 4)
	assert.Equal(t, 2*4+4+4+1, nn.CountParameters(model.Parameters()))

	out := model.Forward(tensor.Ones(tensor.Shape{5, 2}, backend))
	assert.True(t, out.Shape().Equal(tensor.Shape{5, 1}))
}

func TestMSELoss(t *testing.T) {
	backend := cpu.New()

	pred, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]float64{1, 0, 0}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	assert.InDelta(t, (0.0+4+9)/3, nn.MSELoss(pred, target).Item(), 1e-12)
}

func TestWeightedMSELoss(t *testing.T) {
	backend := cpu.New()

	pred, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)
	target := tensor.Zeros(tensor.Shape{3, 1}, backend)
	weights, err := tensor.FromSlice([]float64{1, 0.5, 0}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	got := nn.WeightedMSELoss(pred, target, weights).Item()
	assert.InDelta(t, (1.0+2)/3, got, 1e-12)

	// nil weights degrade to the plain mean.
	assert.InDelta(t, nn.MSELoss(pred, target).Item(), nn.WeightedMSELoss(pred, target, nil).Item(), 1e-12)

	bad := tensor.Ones(tensor.Shape{2, 1}, backend)
	assert.Panics(t, func() { nn.WeightedMSELoss(pred, target, bad) })
}
