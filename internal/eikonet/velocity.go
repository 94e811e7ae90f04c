package eikonet

// VelocityField is the medium the travel times are fitted to.
type VelocityField interface {
	// At returns the wave speed at (x, z). It must be positive.
	At(x, z float64) float64
}

// Constant is a homogeneous medium.
type Constant struct {
	V float64
}

// At returns c.V.
func (c Constant) At(_, _ float64) float64 {
	return c.V
}

// LinearGradient is a medium whose speed grows linearly with depth:
// v(z) = V0 + K*z.
type LinearGradient struct {
	V0 float64
	K  float64
}

// At returns V0 + K*z.
func (g LinearGradient) At(_, z float64) float64 {
	return g.V0 + g.K*z
}
