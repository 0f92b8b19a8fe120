package digisim

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gathik-jindal/digisim/internal/trace"
)

// DumpCSV writes every recorded signal to <outputDir>/<name>.csv: one
// column per label, in first-recorded order, and one row per distinct
// timestamp recorded across every label, with each column forward-filled
// from its most recent sample - so a reader can see every signal's value
// at every instant any signal changed, not only the instants that signal
// itself changed.
func (n *Netlist) DumpCSV(name string) error {
	labels := n.rec.Labels()
	series := make(map[string][]trace.Sample, len(labels))
	timeSet := make(map[float64]bool)
	for _, label := range labels {
		s := n.rec.Series(label)
		series[label] = s
		for _, sample := range s {
			timeSet[sample.Time] = true
		}
	}

	// Every dump includes a row at 0 and one at max_time+1, even if nothing
	// was recorded at either instant, so a reader always sees the circuit's
	// starting state and one settled row past its last recorded change.
	timeSet[0] = true
	maxTime := 0.0
	for t := range timeSet {
		if t > maxTime {
			maxTime = t
		}
	}
	timeSet[maxTime+1] = true

	times := make([]float64, 0, len(timeSet))
	for t := range timeSet {
		times = append(times, t)
	}
	sort.Float64s(times)

	if err := os.MkdirAll(n.outputDir, 0o755); err != nil {
		return fmt.Errorf("digisim: creating output directory %s: %w", n.outputDir, err)
	}
	path := filepath.Join(n.outputDir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("digisim: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"Time"}, labels...)); err != nil {
		return fmt.Errorf("digisim: writing %s: %w", path, err)
	}

	cursor := make(map[string]int, len(labels))
	last := make(map[string]uint64, len(labels))
	for _, t := range times {
		row := make([]string, 0, len(labels)+1)
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, label := range labels {
			s := series[label]
			idx := cursor[label]
			for idx < len(s) && s[idx].Time <= t {
				last[label] = s[idx].Value
				idx++
			}
			cursor[label] = idx
			row = append(row, strconv.FormatUint(last[label], 10))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("digisim: writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
