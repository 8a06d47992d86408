package scoring

import (
	"math"
)

// Stat is the population summary of one metric across the loaded field.
type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// FieldStats maps a metric to its field summary. Metrics with no observed
// values have no entry.
type FieldStats map[Metric]Stat

// ComputeFieldStats derives win percentage and schedule-hardness percentile
// on every team, then summarises every tracked metric over its non-null
// values. It must run before any z-score is read.
func ComputeFieldStats(teams []*Team) (FieldStats, error) {
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	deriveRecordMetrics(teams)

	fs := make(FieldStats, len(TrackedMetrics))
	for _, m := range TrackedMetrics {
		vals := make([]float64, 0, len(teams))
		for _, t := range teams {
			if v, ok := t.Value(m); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		fs[m] = summarize(vals)
	}
	return fs, nil
}

// summarize uses the population standard deviation (divide by N).
func summarize(vals []float64) Stat {
	n := float64(len(vals))
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return Stat{Mean: mean, StdDev: math.Sqrt(sq / n), Count: len(vals)}
}

func deriveRecordMetrics(teams []*Team) {
	for _, t := range teams {
		t.WinPct = nil
		t.SchedulePctile = nil
		w, okW := t.Value(Wins)
		l, okL := t.Value(Losses)
		if okW && okL && w+l > 0 {
			pct := w / (w + l)
			t.WinPct = &pct
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range teams {
		if v, ok := t.Value(SOS); ok {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) || hi == lo {
		return
	}

	// Lowest raw schedule-strength is the toughest schedule and maps to 1.0.
	for _, t := range teams {
		if v, ok := t.Value(SOS); ok {
			p := (hi - v) / (hi - lo)
			t.SchedulePctile = &p
		}
	}
}

// Lookup returns the summary for m.
func (fs FieldStats) Lookup(m Metric) (Stat, bool) {
	st, ok := fs[m]
	return st, ok
}

// zeroSpreadEps is the spread below which a metric is treated as flat.
// Summing identical non-representable values leaves an SD of ~1e-17.
const zeroSpreadEps = 1e-9

// Z scores v against the field summary of m. A missing metric or a flat
// spread yields 0.
func (fs FieldStats) Z(m Metric, v float64) float64 {
	st, ok := fs[m]
	if !ok || st.StdDev < zeroSpreadEps {
		return 0
	}
	return (v - st.Mean) / st.StdDev
}

// ZOf scores the team's value for m, or 0 when it is absent.
func (fs FieldStats) ZOf(t *Team, m Metric) float64 {
	v, ok := t.Value(m)
	if !ok {
		return 0
	}
	return fs.Z(m, v)
}

// zStrict is ZOf that also reports whether both the value and the field
// summary exist. Diagnostic rules use it to skip instead of neutralising.
func (fs FieldStats) zStrict(t *Team, m Metric) (float64, bool) {
	v, ok := t.Value(m)
	if !ok {
		return 0, false
	}
	if _, ok := fs[m]; !ok {
		return 0, false
	}
	return fs.Z(m, v), true
}
