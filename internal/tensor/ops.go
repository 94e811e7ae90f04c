package tensor

// Add performs element-wise addition with broadcasting.
//
//	a := tensor.Ones(Shape{3, 1}, backend)
//	b := tensor.Ones(Shape{3, 5}, backend)
//	c := a.Add(b) // Shape: [3, 5]
func (t *Tensor) Add(other *Tensor) *Tensor {
	return New(t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	return New(t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return New(t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor) Div(other *Tensor) *Tensor {
	return New(t.backend.Div(t.raw, other.raw), t.backend)
}

// Square returns t * t.
func (t *Tensor) Square() *Tensor {
	return t.Mul(t)
}

// MatMul performs 2-D matrix multiplication: (M, K) @ (K, N) → (M, N).
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	return New(t.backend.MatMul(t.raw, other.raw), t.backend)
}

// T returns the transpose of a 2-D tensor.
func (t *Tensor) T() *Tensor {
	return New(t.backend.Transpose(t.raw), t.backend)
}

// Reshape returns a tensor with the same data and a new shape.
func (t *Tensor) Reshape(shape ...int) *Tensor {
	return New(t.backend.Reshape(t.raw, Shape(shape)), t.backend)
}

// Expand broadcasts t to shape.
func (t *Tensor) Expand(shape Shape) *Tensor {
	return New(t.backend.Expand(t.raw, shape), t.backend)
}

// AddScalar adds s to every element.
func (t *Tensor) AddScalar(s float64) *Tensor {
	return New(t.backend.AddScalar(t.raw, s), t.backend)
}

// MulScalar multiplies every element by s.
func (t *Tensor) MulScalar(s float64) *Tensor {
	return New(t.backend.MulScalar(t.raw, s), t.backend)
}

// Tanh applies the hyperbolic tangent element-wise.
func (t *Tensor) Tanh() *Tensor {
	return New(t.backend.Tanh(t.raw), t.backend)
}

// Sqrt applies the square root element-wise.
func (t *Tensor) Sqrt() *Tensor {
	return New(t.backend.Sqrt(t.raw), t.backend)
}

// Sum reduces all elements to a scalar.
func (t *Tensor) Sum() *Tensor {
	return New(t.backend.Sum(t.raw), t.backend)
}

// Mean reduces all elements to their mean.
func (t *Tensor) Mean() *Tensor {
	return New(t.backend.Mean(t.raw), t.backend)
}

// SumDim sums along dim.
func (t *Tensor) SumDim(dim int, keepDim bool) *Tensor {
	return New(t.backend.SumDim(t.raw, dim, keepDim), t.backend)
}
