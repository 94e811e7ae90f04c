package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/eikonal/internal/autodiff"
	"github.com/born-ml/eikonal/internal/backend/cpu"
	"github.com/born-ml/eikonal/internal/tensor"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func fromSlice(t *testing.T, backend Backend, data []float64, shape ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape), backend)
	require.NoError(t, err)
	return x
}

// checkGrad compares the taped gradient of f with respect to param against
// central finite differences.
func checkGrad(t *testing.T, backend Backend, name string, param *tensor.Tensor, f func() *tensor.Tensor) {
	t.Helper()
	tape := backend.Tape()
	tape.Clear()
	tape.StartRecording()
	loss := f()
	grads := autodiff.Backward(loss, backend)
	tape.StopRecording()
	tape.Clear()

	g, ok := grads[param.Raw()]
	require.True(t, ok, "%s: no gradient", name)
	require.Equal(t, param.Shape(), g.Shape(), "%s: gradient shape", name)

	const eps = 1e-6
	data := param.Data()
	for i := range data {
		orig := data[i]
		data[i] = orig + eps
		plus := f().Item()
		data[i] = orig - eps
		minus := f().Item()
		data[i] = orig

		numerical := (plus - minus) / (2 * eps)
		assert.InDelta(t, numerical, g.Data()[i], 1e-5, "%s[%d]", name, i)
	}
}

func TestBackward_Square(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := fromSlice(t, backend, []float64{3}, 1)
	y := x.Mul(x).Sum()

	grads := autodiff.Backward(y, backend)
	assert.InDelta(t, 6.0, grads[x.Raw()].Data()[0], 1e-12)
}

func TestBackward_ElementwiseOps(t *testing.T) {
	backend := autodiff.New(cpu.New())
	a := fromSlice(t, backend, []float64{0.5, -1.2, 2.0, 0.3, 1.1, -0.7}, 2, 3)
	b := fromSlice(t, backend, []float64{1.5, 0.8, -2.5, 1.9, 0.6, 1.3}, 2, 3)

	checkGrad(t, backend, "add", a, func() *tensor.Tensor { return a.Add(b).Square().Mean() })
	checkGrad(t, backend, "sub.a", a, func() *tensor.Tensor { return a.Sub(b).Square().Sum() })
	checkGrad(t, backend, "sub.b", b, func() *tensor.Tensor { return a.Sub(b).Square().Sum() })
	checkGrad(t, backend, "mul", b, func() *tensor.Tensor { return a.Mul(b).Mean() })
	checkGrad(t, backend, "div.a", a, func() *tensor.Tensor { return a.Div(b).Sum() })
	checkGrad(t, backend, "div.b", b, func() *tensor.Tensor { return a.Div(b).Sum() })
	checkGrad(t, backend, "tanh", a, func() *tensor.Tensor { return a.Tanh().Mul(b).Sum() })
	checkGrad(t, backend, "scalar", a, func() *tensor.Tensor { return a.MulScalar(3).AddScalar(-1).Square().Mean() })
}

func TestBackward_Broadcast(t *testing.T) {
	backend := autodiff.New(cpu.New())
	m := fromSlice(t, backend, []float64{0.5, -1.2, 2.0, 0.3, 1.1, -0.7}, 2, 3)
	row := fromSlice(t, backend, []float64{0.1, 0.2, 0.3}, 1, 3)
	col := fromSlice(t, backend, []float64{1.5, -0.5}, 2, 1)
	scalar := fromSlice(t, backend, []float64{0.7})

	checkGrad(t, backend, "row", row, func() *tensor.Tensor { return m.Add(row).Square().Sum() })
	checkGrad(t, backend, "col", col, func() *tensor.Tensor { return m.Mul(col).Square().Sum() })
	checkGrad(t, backend, "scalar", scalar, func() *tensor.Tensor { return m.Sub(scalar).Square().Mean() })
	checkGrad(t, backend, "div-col", col, func() *tensor.Tensor { return m.Div(col).Sum() })
}

func TestBackward_MatMulTranspose(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := fromSlice(t, backend, []float64{0.5, -1.2, 2.0, 0.3, 1.1, -0.7}, 3, 2)
	w := fromSlice(t, backend, []float64{0.2, -0.4, 0.6, 0.1, -0.3, 0.5, 0.9, -0.8}, 4, 2)

	f := func() *tensor.Tensor { return x.MatMul(w.T()).Tanh().Square().Mean() }
	checkGrad(t, backend, "w", w, f)
	checkGrad(t, backend, "x", x, f)
}

func TestBackward_Reductions(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := fromSlice(t, backend, []float64{0.5, 1.2, 2.0, 0.3, 1.1, 0.7}, 2, 3)

	checkGrad(t, backend, "sumdim.keep", x, func() *tensor.Tensor { return x.SumDim(1, true).Sqrt().Sum() })
	checkGrad(t, backend, "sumdim.drop", x, func() *tensor.Tensor { return x.Square().SumDim(0, false).Sqrt().Mean() })
	checkGrad(t, backend, "reshape", x, func() *tensor.Tensor { return x.Reshape(3, 2).MatMul(x).Sum() })
	checkGrad(t, backend, "expand", x, func() *tensor.Tensor {
		return x.SumDim(1, true).Expand(tensor.Shape{2, 3}).Mul(x).Sum()
	})
}

func TestBackward_SharedInputAccumulates(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := fromSlice(t, backend, []float64{2}, 1)
	// y = x*x + 3x, dy/dx = 2x + 3 = 7
	y := x.Mul(x).Add(x.MulScalar(3)).Sum()

	grads := autodiff.Backward(y, backend)
	assert.InDelta(t, 7.0, grads[x.Raw()].Data()[0], 1e-12)
}

func TestBackward_UnreachedTensorHasNoGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := fromSlice(t, backend, []float64{1, 2}, 2)
	unused := fromSlice(t, backend, []float64{5, 5}, 2)
	_ = unused.Square()
	y := x.Square().Sum()

	grads := autodiff.Backward(y, backend)
	_, ok := grads[unused.Raw()]
	assert.False(t, ok)
	assert.Equal(t, []float64{2, 4}, grads[x.Raw()].Data())
}

func TestBackward_RejectsNonScalar(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := fromSlice(t, backend, []float64{1, 2}, 2)
	assert.Panics(t, func() { autodiff.Backward(x, backend) })
}

func TestBackward_NaNPropagates(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := fromSlice(t, backend, []float64{1}, 1)
	nan := fromSlice(t, backend, []float64{math.NaN()}, 1)
	y := x.Mul(nan).Sum()

	require.True(t, math.IsNaN(y.Item()))
	grads := autodiff.Backward(y, backend)
	assert.True(t, math.IsNaN(grads[x.Raw()].Data()[0]))
}

func TestGradientTape_Recording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	x := fromSlice(t, backend, []float64{1, 2}, 2)

	assert.False(t, tape.IsRecording())
	_ = x.Add(x)
	assert.Equal(t, 0, tape.NumOps(), "nothing recorded while stopped")

	tape.StartRecording()
	_ = x.Add(x).Sum()
	assert.Equal(t, 2, tape.NumOps())

	tape.Clear()
	assert.Equal(t, 0, tape.NumOps())
	assert.True(t, tape.IsRecording(), "clear keeps the recording state")
}

func TestGradientTape_BackwardDoesNotRecord(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	x := fromSlice(t, backend, []float64{0.3, 0.4}, 1, 2)
	loss := x.Tanh().Square().Sum()
	before := tape.NumOps()

	autodiff.Backward(loss, backend)
	assert.Equal(t, before, tape.NumOps())
	assert.True(t, tape.IsRecording())
}

func TestAutodiffBackend_Metadata(t *testing.T) {
	backend := autodiff.New(cpu.New())
	assert.Equal(t, "Autodiff(CPU)", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
	assert.NotNil(t, backend.Inner())
}
