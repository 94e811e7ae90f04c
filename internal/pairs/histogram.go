package pairs

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram is a fixed-width binning of pair weights over [0, 1].
type Histogram struct {
	Edges  []float64 // len(Counts)+1 bin boundaries
	Counts []float64
}

// WeightHistogram bins weights into the given number of equal-width bins
// over [0, 1]. The last bin is closed so that weight 1 is counted.
func WeightHistogram(weights []float64, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("pairs: histogram needs at least one bin, got %d", bins)
	}
	for _, w := range weights {
		if !(w >= 0 && w <= 1) {
			return Histogram{}, fmt.Errorf("pairs: weight %g outside [0, 1]", w)
		}
	}

	edges := floats.Span(make([]float64, bins+1), 0, 1)
	h := Histogram{Edges: edges, Counts: make([]float64, bins)}
	if len(weights) == 0 {
		return h, nil
	}

	dividers := slices.Clone(edges)
	dividers[bins] = math.Nextafter(1, 2)
	sorted := slices.Clone(weights)
	slices.Sort(sorted)
	stat.Histogram(h.Counts, dividers, sorted, nil)
	return h, nil
}
