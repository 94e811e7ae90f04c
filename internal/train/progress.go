package train

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progress renders the per-epoch bar. A nil *progress is a no-op.
type progress struct {
	label string
	bar   *progressbar.ProgressBar
}

func newProgress(w io.Writer, epochs int, label string) *progress {
	if w == nil || epochs == 0 {
		return nil
	}
	bar := progressbar.NewOptions(epochs,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("epoch"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
	return &progress{label: label, bar: bar}
}

// epoch advances the bar and shows the epoch's figures as its postfix.
func (p *progress) epoch(trainLoss, valLoss float64, diagnostics map[string]float64) {
	if p == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("%s [%s]", p.label, postfix(trainLoss, valLoss, diagnostics)))
	_ = p.bar.Add(1)
}

// done completes the bar after a full run, or leaves it where a failed run
// stopped.
func (p *progress) done(completed bool) {
	if p == nil {
		return
	}
	if completed {
		_ = p.bar.Finish()
		return
	}
	_ = p.bar.Exit()
}

// postfix formats loss figures in a stable key order.
func postfix(trainLoss, valLoss float64, diagnostics map[string]float64) string {
	parts := []string{fmt.Sprintf("loss=%.4g", valLoss)}
	for _, k := range slices.Sorted(maps.Keys(diagnostics)) {
		parts = append(parts, fmt.Sprintf("%s=%.4g", k, diagnostics[k]))
	}
	parts = append(parts, fmt.Sprintf("train=%.4g", trainLoss))
	return strings.Join(parts, " ")
}
