package scoring

// Orientation says which raw direction is better for a core metric.
type Orientation int

const (
	HigherIsBetter Orientation = iota
	LowerIsBetter
)

type coreMetric struct {
	metric Metric
	orient Orientation
}

// coreMetrics are the eight efficiency traits behind the composite, in
// display order.
var coreMetrics = []coreMetric{
	{OffEff, HigherIsBetter},
	{DefEff, LowerIsBetter},
	{EffMargin, HigherIsBetter},
	{TSPct, HigherIsBetter},
	{EFGPct, HigherIsBetter},
	{OppEFGPct, LowerIsBetter},
	{PossRatio, HigherIsBetter},
	{TORate, LowerIsBetter},
}

// CoreMetricKeys returns the core traits in display order.
func CoreMetricKeys() []Metric {
	out := make([]Metric, len(coreMetrics))
	for i, c := range coreMetrics {
		out[i] = c.metric
	}
	return out
}

// TraitRow explains one core metric's contribution to the composite.
type TraitRow struct {
	Metric    Metric   `json:"metric"`
	Label     string   `json:"label"`
	Mean      float64  `json:"field_mean"`
	StdDev    float64  `json:"field_std_dev"`
	Raw       *float64 `json:"raw,omitempty"`
	Inverted  bool     `json:"inverted"`
	Z         float64  `json:"z"`
	Weight    float64  `json:"weight"`
	Weighted  float64  `json:"weighted"`
	Tier      string   `json:"tier"`
	Points    float64  `json:"points"`
	Available bool     `json:"available"`
}

// CoreResult is the trait-only composite (mibs) and its explanation rows.
type CoreResult struct {
	Z     map[Metric]float64 `json:"z"`
	Rows  []TraitRow         `json:"rows"`
	Score float64            `json:"mibs"`
}

// OrientedZ scores a raw value so that higher is better. Inverted metrics
// are reflected about the field mean before scoring.
func OrientedZ(fs FieldStats, m Metric, orient Orientation, v float64) float64 {
	st, ok := fs[m]
	if !ok || st.StdDev < zeroSpreadEps {
		return 0
	}
	if orient == LowerIsBetter {
		v = 2*st.Mean - v
	}
	return (v - st.Mean) / st.StdDev
}

// ScoreCore computes the oriented core z-scores and the weighted composite.
func ScoreCore(t *Team, fs FieldStats, w WeightSet) CoreResult {
	weights := w.PerMetric()
	res := CoreResult{
		Z:    make(map[Metric]float64, len(coreMetrics)),
		Rows: make([]TraitRow, 0, len(coreMetrics)),
	}

	for _, cm := range coreMetrics {
		st := fs[cm.metric]
		row := TraitRow{
			Metric:   cm.metric,
			Label:    cm.metric.Label(),
			Mean:     st.Mean,
			StdDev:   st.StdDev,
			Inverted: cm.orient == LowerIsBetter,
			Weight:   weights[cm.metric],
		}
		if v, ok := t.Value(cm.metric); ok {
			raw := v
			row.Raw = &raw
			row.Available = true
			row.Z = OrientedZ(fs, cm.metric, cm.orient, v)
		}
		row.Weighted = row.Z * row.Weight
		row.Tier = TierFor(row.Z)
		row.Points = TierPoints(row.Z)

		res.Z[cm.metric] = row.Z
		res.Score += row.Weighted
		res.Rows = append(res.Rows, row)
	}
	return res
}
