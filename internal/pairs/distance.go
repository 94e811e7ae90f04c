package pairs

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/eikonal/internal/parallel"
)

// DistanceMatrix returns the |points| × |points| matrix of Euclidean
// distances multiplied by scale. Rows are filled in parallel per cfg.
func DistanceMatrix(points []Point, scale float64, cfg parallel.Config) *mat.Dense {
	n := len(points)
	d := mat.NewDense(n, n, nil)
	parallel.For(n, func(i int) {
		row := d.RawRowView(i)
		pi := points[i]
		for j, pj := range points {
			row[j] = math.Hypot(pi.X-pj.X, pi.Z-pj.Z) * scale
		}
	}, cfg)
	return d
}

// Correction is the inverse-frequency correction over a set of scaled
// distance values.
//
// For K distinct values v with occurrence share p(v), the factor is
// (1 - p(v)) / (K - 1) divided by its maximum, so the most common distance
// gets the smallest factor and every factor lies in (0, 1].
type Correction struct {
	Values  []float64 // distinct values, ascending
	Counts  []int
	Factors []float64
}

// FrequencyCorrection groups values by exact equality and computes the
// correction factor of every distinct value.
func FrequencyCorrection(values []float64) Correction {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var c Correction
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			c.Counts[len(c.Counts)-1]++
			continue
		}
		c.Values = append(c.Values, v)
		c.Counts = append(c.Counts, 1)
	}

	k := len(c.Values)
	c.Factors = make([]float64, k)
	if k == 1 {
		c.Factors[0] = 1
		return c
	}
	total := float64(len(values))
	for i, count := range c.Counts {
		p := float64(count) / total
		c.Factors[i] = (1 - p) / float64(k-1)
	}
	maxFactor := floats.Max(c.Factors)
	for i := range c.Factors {
		c.Factors[i] /= maxFactor
	}
	return c
}

// Factor returns the correction factor for v, or 0 when v was not among
// the grouped values.
func (c Correction) Factor(v float64) float64 {
	i, ok := slices.BinarySearch(c.Values, v)
	if !ok {
		return 0
	}
	return c.Factors[i]
}

// K returns the number of distinct values.
func (c Correction) K() int {
	return len(c.Values)
}
