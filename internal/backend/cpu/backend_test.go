package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/eikonal/internal/parallel"
	"github.com/born-ml/eikonal/internal/tensor"
)

// raw builds a RawTensor from data for tests.
func raw(t *testing.T, data []float64, shape ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(tensor.Shape(shape), tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(r.Data(), data)
	return r
}

func sliceEqual(a, b []float64) bool {
	const epsilon = 1e-12
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Expected name 'CPU', got '%s'", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected CPU device, got %v", backend.Device())
	}
}

func TestCPUBackend_ElementwiseSameShape(t *testing.T) {
	backend := New()
	a := raw(t, []float64{1, 2, 3, 4}, 2, 2)
	b := raw(t, []float64{4, 3, 2, 1}, 2, 2)

	tests := []struct {
		name string
		got  *tensor.RawTensor
		want []float64
	}{
		{"add", backend.Add(a, b), []float64{5, 5, 5, 5}},
		{"sub", backend.Sub(a, b), []float64{-3, -1, 1, 3}},
		{"mul", backend.Mul(a, b), []float64{4, 6, 6, 4}},
		{"div", backend.Div(a, b), []float64{0.25, 2.0 / 3.0, 1.5, 4}},
	}
	for _, tt := range tests {
		if !sliceEqual(tt.got.Data(), tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got.Data(), tt.want)
		}
	}

	// Inputs are never modified.
	if !sliceEqual(a.Data(), []float64{1, 2, 3, 4}) {
		t.Errorf("input modified: %v", a.Data())
	}
}

func TestCPUBackend_Broadcast(t *testing.T) {
	backend := New()
	m := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	row := raw(t, []float64{10, 20, 30}, 1, 3)
	col := raw(t, []float64{100, 200}, 2, 1)
	scalar := raw(t, []float64{2}) // 0-D

	if got := backend.Add(m, row); !sliceEqual(got.Data(), []float64{11, 22, 33, 14, 25, 36}) {
		t.Errorf("row broadcast: got %v", got.Data())
	}
	if got := backend.Add(col, m); !sliceEqual(got.Data(), []float64{101, 102, 103, 204, 205, 206}) {
		t.Errorf("col broadcast: got %v", got.Data())
	}
	if got := backend.Mul(m, scalar); !sliceEqual(got.Data(), []float64{2, 4, 6, 8, 10, 12}) {
		t.Errorf("scalar broadcast: got %v", got.Data())
	}
	if got := backend.Add(row, col); !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("outer broadcast shape: got %v", got.Shape())
	}
}

func TestCPUBackend_BroadcastIncompatiblePanics(t *testing.T) {
	backend := New()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for incompatible shapes")
		}
	}()
	backend.Add(raw(t, make([]float64, 6), 2, 3), raw(t, make([]float64, 4), 2, 2))
}

func TestCPUBackend_MatMul(t *testing.T) {
	backend := New()
	a := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := raw(t, []float64{7, 8, 9, 10, 11, 12}, 3, 2)

	got := backend.MatMul(a, b)
	if !got.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape: got %v", got.Shape())
	}
	if !sliceEqual(got.Data(), []float64{58, 64, 139, 154}) {
		t.Errorf("matmul: got %v", got.Data())
	}
}

func TestCPUBackend_MatMulEmpty(t *testing.T) {
	backend := New()
	got := backend.MatMul(raw(t, nil, 0, 3), raw(t, make([]float64, 6), 3, 2))
	if !got.Shape().Equal(tensor.Shape{0, 2}) {
		t.Errorf("shape: got %v", got.Shape())
	}
}

func TestCPUBackend_Transpose(t *testing.T) {
	backend := New()
	got := backend.Transpose(raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3))
	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape: got %v", got.Shape())
	}
	if !sliceEqual(got.Data(), []float64{1, 4, 2, 5, 3, 6}) {
		t.Errorf("transpose: got %v", got.Data())
	}
}

func TestCPUBackend_Reductions(t *testing.T) {
	backend := New()
	x := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	if got := backend.Sum(x).Data()[0]; got != 21 {
		t.Errorf("sum: got %v", got)
	}
	if got := backend.Mean(x).Data()[0]; got != 3.5 {
		t.Errorf("mean: got %v", got)
	}

	rows := backend.SumDim(x, 1, true)
	if !rows.Shape().Equal(tensor.Shape{2, 1}) || !sliceEqual(rows.Data(), []float64{6, 15}) {
		t.Errorf("sumdim(1): got %v %v", rows.Shape(), rows.Data())
	}
	cols := backend.SumDim(x, 0, false)
	if !cols.Shape().Equal(tensor.Shape{3}) || !sliceEqual(cols.Data(), []float64{5, 7, 9}) {
		t.Errorf("sumdim(0): got %v %v", cols.Shape(), cols.Data())
	}
	last := backend.SumDim(x, -1, false)
	if !sliceEqual(last.Data(), []float64{6, 15}) {
		t.Errorf("sumdim(-1): got %v", last.Data())
	}
}

func TestCPUBackend_MeanOfEmptyIsNaN(t *testing.T) {
	backend := New()
	if got := backend.Mean(raw(t, nil, 0, 2)).Data()[0]; !math.IsNaN(got) {
		t.Errorf("expected NaN, got %v", got)
	}
}

func TestCPUBackend_UnaryAndScalar(t *testing.T) {
	backend := New()
	x := raw(t, []float64{0, 1, 4}, 3)

	if got := backend.Sqrt(x); !sliceEqual(got.Data(), []float64{0, 1, 2}) {
		t.Errorf("sqrt: got %v", got.Data())
	}
	if got := backend.Tanh(x); !sliceEqual(got.Data(), []float64{0, math.Tanh(1), math.Tanh(4)}) {
		t.Errorf("tanh: got %v", got.Data())
	}
	if got := backend.AddScalar(x, -1); !sliceEqual(got.Data(), []float64{-1, 0, 3}) {
		t.Errorf("addscalar: got %v", got.Data())
	}
	if got := backend.MulScalar(x, 0.5); !sliceEqual(got.Data(), []float64{0, 0.5, 2}) {
		t.Errorf("mulscalar: got %v", got.Data())
	}
}

func TestCPUBackend_ReshapeExpand(t *testing.T) {
	backend := New()
	x := raw(t, []float64{1, 2, 3}, 3)

	r := backend.Reshape(x, tensor.Shape{1, 3})
	if !r.Shape().Equal(tensor.Shape{1, 3}) {
		t.Errorf("reshape: got %v", r.Shape())
	}
	e := backend.Expand(r, tensor.Shape{2, 3})
	if !sliceEqual(e.Data(), []float64{1, 2, 3, 1, 2, 3}) {
		t.Errorf("expand: got %v", e.Data())
	}
}

func TestCPUBackend_ParallelMatchesSequential(t *testing.T) {
	n := 5000
	a := raw(t, make([]float64, n), n, 1)
	b := raw(t, make([]float64, 3), 1, 3)
	for i := range a.Data() {
		a.Data()[i] = float64(i)
	}
	copy(b.Data(), []float64{1, 2, 3})

	par := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 100})
	seq := NewWithConfig(parallel.Sequential())

	if !sliceEqual(par.Mul(a, b).Data(), seq.Mul(a, b).Data()) {
		t.Error("parallel and sequential results differ")
	}
}
