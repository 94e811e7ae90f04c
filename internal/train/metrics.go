package train

import (
	"math"
	"slices"
)

// Metrics accumulates one entry per completed epoch.
//
// TrainLoss, ValLoss, Diagnostics and Tau always have equal length. When a
// run diverges the failing epoch is not recorded.
type Metrics struct {
	RunID string
	Label string

	TrainLoss   []float64
	ValLoss     []float64
	Diagnostics []map[string]float64 // validation diagnostics per epoch
	Tau         []float64            // latest tau after each epoch, NaN if none

	// Snapshots of the model's own logs at the end of the run.
	TauLog []float64
	T0Log  []float64
}

func newMetrics(runID, label string, epochs int) *Metrics {
	return &Metrics{
		RunID:       runID,
		Label:       label,
		TrainLoss:   make([]float64, 0, epochs),
		ValLoss:     make([]float64, 0, epochs),
		Diagnostics: make([]map[string]float64, 0, epochs),
		Tau:         make([]float64, 0, epochs),
	}
}

// Epochs returns the number of completed epochs.
func (m *Metrics) Epochs() int {
	return len(m.TrainLoss)
}

// Curves returns copies of the train and validation loss sequences.
func (m *Metrics) Curves() (trainLoss, valLoss []float64) {
	return slices.Clone(m.TrainLoss), slices.Clone(m.ValLoss)
}

// BestEpoch returns the 1-based epoch with the lowest validation loss, or 0
// when nothing was recorded. NaN losses never win.
func (m *Metrics) BestEpoch() int {
	best := 0
	for i, v := range m.ValLoss {
		if math.IsNaN(v) {
			continue
		}
		if best == 0 || v < m.ValLoss[best-1] {
			best = i + 1
		}
	}
	return best
}
