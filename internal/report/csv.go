package report

import (
	"encoding/csv"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/born-ml/eikonal/internal/train"
)

// WriteCurves writes one CSV row per epoch: epoch, train, val, tau and the
// validation diagnostics in sorted key order.
func WriteCurves(w io.Writer, m *train.Metrics) error {
	keys := diagnosticKeys(m)

	cw := csv.NewWriter(w)
	header := append([]string{"epoch", "train", "val", "tau"}, keys...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range m.Epochs() {
		row := []string{
			strconv.Itoa(i + 1),
			formatFloat(m.TrainLoss[i]),
			formatFloat(m.ValLoss[i]),
			formatFloat(m.Tau[i]),
		}
		for _, k := range keys {
			v, ok := m.Diagnostics[i][k]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMap writes m as CSV, one line per row.
func WriteMap(w io.Writer, m Map) error {
	cw := csv.NewWriter(w)
	row := make([]string, m.Cols)
	for iz := range m.Rows {
		for ix := range m.Cols {
			row[ix] = formatFloat(m.At(iz, ix))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func diagnosticKeys(m *train.Metrics) []string {
	seen := map[string]struct{}{}
	for _, d := range m.Diagnostics {
		for k := range d {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
