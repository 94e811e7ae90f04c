// Package pairs builds the weighted source/receiver training pairs for
// eikonal travel-time models.
//
// A PairSet holds every ordered pair (i, j), i != j, of points on a regular
// grid. Each pair is weighted by the product of its normalized distance and
// an inverse-frequency correction of that distance, which keeps the few
// distances that dominate a regular grid from dominating the loss:
//
//	ps, err := pairs.Sample(pairs.Options{Bounds: pairs.UnitSquare, NX: 16, NZ: 16})
//	if err != nil {
//	    return err
//	}
//	t, err := ps.Tensors(backend, tensor.CPU)
package pairs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/eikonal/internal/parallel"
)

// DefaultScale multiplies raw distances before grouping so that equal
// distances computed along different axes compare equal.
const DefaultScale = 100000

// Options configures Sample.
type Options struct {
	Bounds Bounds
	NX     int
	NZ     int

	// Scale multiplies distances before exact-equality grouping
	// (default: DefaultScale). Too small a scale lets rounding split one
	// distance into several groups; too large a scale merges nothing but
	// grows the number of groups with rounding noise.
	Scale float64

	// Parallel controls the row loops over the distance matrix
	// (default: RowParallelism()).
	Parallel *parallel.Config
}

// RowParallelism is parallel.DefaultConfig with a chunk size suited to
// whole matrix rows rather than single elements.
func RowParallelism() parallel.Config {
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 16
	return cfg
}

func (o Options) withDefaults() Options {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Parallel == nil {
		cfg := RowParallelism()
		o.Parallel = &cfg
	}
	return o
}

// Validate checks the options after defaults are applied.
func (o Options) Validate() error {
	if o.NX < 1 || o.NZ < 1 {
		return fmt.Errorf("%w: resolution %dx%d (need >= 1 in each dimension)", ErrInvalidGrid, o.NX, o.NZ)
	}
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		return fmt.Errorf("%w: scale %g (must be positive and finite)", ErrInvalidGrid, o.Scale)
	}
	return o.Bounds.Validate()
}

// PairSet is the set of (source, receiver, weight) triples over a grid.
//
// The three sequences are parallel and ordered source-major: all receivers
// of grid point 0, then all receivers of grid point 1, and so on, with the
// source itself skipped. SourceIndex and ReceiverIndex give the grid
// positions of every pair.
type PairSet struct {
	Grid          *Grid
	Sources       []Point
	Receivers     []Point
	Weights       []float64
	SourceIndex   []int
	ReceiverIndex []int
}

// Len returns the number of pairs.
func (ps *PairSet) Len() int {
	return len(ps.Weights)
}

// Validate checks that the parallel sequences agree in length.
func (ps *PairSet) Validate() error {
	n := len(ps.Weights)
	if len(ps.Sources) != n || len(ps.Receivers) != n {
		return fmt.Errorf("%w: %d sources, %d receivers, %d weights",
			ErrShapeMismatch, len(ps.Sources), len(ps.Receivers), n)
	}
	if ps.SourceIndex != nil && len(ps.SourceIndex) != n {
		return fmt.Errorf("%w: %d source indices for %d pairs", ErrShapeMismatch, len(ps.SourceIndex), n)
	}
	if ps.ReceiverIndex != nil && len(ps.ReceiverIndex) != n {
		return fmt.Errorf("%w: %d receiver indices for %d pairs", ErrShapeMismatch, len(ps.ReceiverIndex), n)
	}
	return nil
}

// Sample builds the PairSet for opts.
//
// A single-point grid has no off-diagonal pairs and yields an empty set.
// Sample is deterministic: identical options produce identical ordering and
// bit-identical weights.
func Sample(opts Options) (*PairSet, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	grid, err := NewGrid(opts.Bounds, opts.NX, opts.NZ)
	if err != nil {
		return nil, err
	}
	points := grid.Points
	n := len(points)

	d := DistanceMatrix(points, opts.Scale, *opts.Parallel)
	all := d.RawMatrix().Data
	maxDist := floats.Max(all)
	corr := FrequencyCorrection(all)

	m := n * (n - 1)
	ps := &PairSet{
		Grid:          grid,
		Sources:       make([]Point, m),
		Receivers:     make([]Point, m),
		Weights:       make([]float64, m),
		SourceIndex:   make([]int, m),
		ReceiverIndex: make([]int, m),
	}

	// Row i owns the output block [i*(n-1), (i+1)*(n-1)).
	parallel.For(n, func(i int) {
		row := d.RawRowView(i)
		k := i * (n - 1)
		for j, dist := range row {
			if j == i {
				continue
			}
			norm := 0.0
			if maxDist > 0 {
				norm = dist / maxDist
			}
			ps.Sources[k] = points[i]
			ps.Receivers[k] = points[j]
			ps.Weights[k] = corr.Factor(dist) * norm
			ps.SourceIndex[k] = i
			ps.ReceiverIndex[k] = j
			k++
		}
	}, *opts.Parallel)

	return ps, nil
}
