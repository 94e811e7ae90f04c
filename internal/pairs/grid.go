package pairs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is a coordinate in the 2-D (x, z) domain.
type Point struct {
	X float64
	Z float64
}

// Bounds is the closed rectangle [XMin, XMax] × [ZMin, ZMax].
type Bounds struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	ZMin float64 `yaml:"z_min"`
	ZMax float64 `yaml:"z_max"`
}

var (
	// UnitSquare is the training domain [0,1]².
	UnitSquare = Bounds{XMin: 0, XMax: 1, ZMin: 0, ZMax: 1}

	// InteriorSquare is the validation domain [0.01,0.99]², which keeps
	// validation pairs off the domain boundary.
	InteriorSquare = Bounds{XMin: 0.01, XMax: 0.99, ZMin: 0.01, ZMax: 0.99}
)

// Validate checks that the bounds are finite and ordered.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.XMin, b.XMax, b.ZMin, b.ZMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bounds %+v", ErrInvalidGrid, b)
		}
	}
	if b.XMin > b.XMax {
		return fmt.Errorf("%w: x_min %g > x_max %g", ErrInvalidGrid, b.XMin, b.XMax)
	}
	if b.ZMin > b.ZMax {
		return fmt.Errorf("%w: z_min %g > z_max %g", ErrInvalidGrid, b.ZMin, b.ZMax)
	}
	return nil
}

// Grid is the Cartesian product of NX evenly spaced x-values and NZ evenly
// spaced z-values, endpoints included.
//
// Points are x-major: Points[ix*NZ+iz] = (Xs[ix], Zs[iz]). Maps built from a
// grid (see report.Maps) must use the same enumeration.
type Grid struct {
	NX     int
	NZ     int
	Xs     []float64
	Zs     []float64
	Points []Point
}

// NewGrid builds the grid over b with nx × nz points.
func NewGrid(b Bounds, nx, nz int) (*Grid, error) {
	if nx < 1 || nz < 1 {
		return nil, fmt.Errorf("%w: resolution %dx%d (need >= 1 in each dimension)", ErrInvalidGrid, nx, nz)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		NX:     nx,
		NZ:     nz,
		Xs:     linspace(b.XMin, b.XMax, nx),
		Zs:     linspace(b.ZMin, b.ZMax, nz),
		Points: make([]Point, 0, nx*nz),
	}
	for _, x := range g.Xs {
		for _, z := range g.Zs {
			g.Points = append(g.Points, Point{X: x, Z: z})
		}
	}
	return g, nil
}

// Len returns the number of grid points.
func (g *Grid) Len() int {
	return len(g.Points)
}

// Index returns the position of (ix, iz) in Points.
func (g *Grid) Index(ix, iz int) int {
	return ix*g.NZ + iz
}

// linspace returns n evenly spaced values over [lo, hi]. A single value is
// the lower bound.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	return floats.Span(out, lo, hi)
}
