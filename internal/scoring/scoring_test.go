package scoring

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Matchup/internal/config"
	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func float64Ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

var sampleBase = map[string]float64{
	"off_eff": 110, "def_eff": 100, "eff_margin": 10,
	"ts_pct": 0.56, "efg_pct": 0.52, "opp_efg_pct": 0.49,
	"poss_ratio": 1.0, "to_rate": 0.17,
	"two_pct": 0.52, "three_rate": 0.38, "three_pct": 0.35,
	"ft_rate": 0.32, "ft_pct": 0.72,
	"pts_two_share": 0.50, "pts_three_share": 0.32, "pts_ft_share": 0.18,
	"non_blocked_two_rate": 0.90, "block_rate": 0.09, "steal_rate": 0.09,
	"opp_to_rate": 0.18, "opp_ast_per_poss": 0.14,
	"opp_three_rate": 0.37, "opp_three_pct": 0.33, "opp_ft_rate": 0.30,
	"orb_rate": 0.30, "drb_rate": 0.72, "extra_chances_rate": 0.05,
	"tempo": 68, "sos": 5,
}

// sampleRecords builds n deterministic, fully populated teams whose metrics
// wander a few percent around sampleBase.
func sampleRecords(n int) []store.TeamRecord {
	keys := make([]string, 0, len(sampleBase))
	for k := range sampleBase {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	recs := make([]store.TeamRecord, 0, n)
	for i := 0; i < n; i++ {
		m := make(map[string]*float64, len(keys)+2)
		for j, k := range keys {
			f := 1 + 0.015*float64((i+j)%6-2) + 0.004*float64((i*j)%5)
			m[k] = float64Ptr(sampleBase[k] * f)
		}
		m["wins"] = float64Ptr(float64(18 + 2*i))
		m["losses"] = float64Ptr(float64(14 - i))
		recs = append(recs, store.TeamRecord{
			Name:    fmt.Sprintf("Team %02d", i),
			Seed:    intPtr(i%16 + 1),
			Metrics: m,
		})
	}
	return recs
}

func teamWith(name string, vals map[Metric]float64) *Team {
	t := &Team{Name: name, Raw: make(map[Metric]*float64, len(vals))}
	for m, v := range vals {
		t.Raw[m] = float64Ptr(v)
	}
	return t
}

func unitStats(ms ...Metric) FieldStats {
	fs := make(FieldStats, len(ms))
	for _, m := range ms {
		fs[m] = Stat{Mean: 0, StdDev: 1, Count: 2}
	}
	return fs
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
	if w.MarginStabilizer != 0.10 {
		t.Errorf("expected stabilizer 0.10, got %f", w.MarginStabilizer)
	}
}

func TestWeightsValidate(t *testing.T) {
	w := DefaultWeights()
	w.Efficiency = 0.60
	assert.Error(t, w.Validate())

	w = DefaultWeights()
	w.MarginStabilizer = -0.1
	assert.Error(t, w.Validate())
}

func TestPerMetricSplitsLanes(t *testing.T) {
	pm := DefaultWeights().PerMetric()
	var lanes float64
	for m, v := range pm {
		if m != EffMargin {
			lanes += v
		}
	}
	assert.InDelta(t, 1.0, lanes, 1e-12)
	assert.InDelta(t, 0.225, pm[OffEff], 1e-12)
	assert.InDelta(t, 0.10, pm[EffMargin], 1e-12)
}

func TestResumeScalingMultiplier(t *testing.T) {
	rs := DefaultResumeScaling()
	assert.Equal(t, 1.10, rs.Multiplier(TierElite))
	assert.Equal(t, 0.90, rs.Multiplier(TierFragile))
	assert.Equal(t, 1.0, rs.Multiplier("unknown"))

	rs.Enabled = false
	assert.Equal(t, 1.0, rs.Multiplier(TierElite))
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.35, fraction(0.35))
	assert.InDelta(t, 0.35, fraction(35), 1e-12)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		z      float64
		tier   string
		points float64
	}{
		{1.40, TierElite, 2.0},
		{1.00, TierElite, 2.0},
		{0.85, TierStrong, 1.5},
		{0.60, TierAboveAverage, 1.0},
		{0.10, TierAverage, 0.5},
		{0.00, TierAverage, 0.5},
		{-0.50, TierWeak, 0},
		{-0.80, TierWeak, 0},
		{-0.81, TierFragile, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tier, TierFor(tt.z), "z=%.2f", tt.z)
		assert.Equal(t, tt.points, TierPoints(tt.z), "z=%.2f", tt.z)
	}
}

func TestComputeFieldStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := ComputeFieldStats(nil)
		assert.ErrorIs(t, err, ErrNoTeams)
	})

	t.Run("population spread", func(t *testing.T) {
		var teams []*Team
		for i, v := range []float64{1, 2, 3, 4} {
			teams = append(teams, teamWith(fmt.Sprint(i), map[Metric]float64{OffEff: v}))
		}
		fs, err := ComputeFieldStats(teams)
		require.NoError(t, err)
		st, ok := fs.Lookup(OffEff)
		require.True(t, ok)
		assert.InDelta(t, 2.5, st.Mean, 1e-12)
		assert.InDelta(t, math.Sqrt(1.25), st.StdDev, 1e-12)
		assert.Equal(t, 4, st.Count)

		_, ok = fs.Lookup(DefEff)
		assert.False(t, ok, "metric with no values has no snapshot")
		assert.Equal(t, 0.0, fs.Z(DefEff, 100))
	})

	t.Run("nulls are skipped", func(t *testing.T) {
		a := teamWith("a", map[Metric]float64{OffEff: 100})
		b := teamWith("b", map[Metric]float64{OffEff: 110})
		c := &Team{Name: "c", Raw: map[Metric]*float64{OffEff: nil}}
		fs, err := ComputeFieldStats([]*Team{a, b, c})
		require.NoError(t, err)
		assert.Equal(t, 2, fs[OffEff].Count)
		assert.InDelta(t, 105, fs[OffEff].Mean, 1e-12)
		assert.Equal(t, 0.0, fs.ZOf(c, OffEff))
	})

	t.Run("zero spread", func(t *testing.T) {
		a := teamWith("a", map[Metric]float64{Tempo: 68})
		b := teamWith("b", map[Metric]float64{Tempo: 68})
		fs, err := ComputeFieldStats([]*Team{a, b})
		require.NoError(t, err)
		assert.Equal(t, 0.0, fs.ZOf(a, Tempo))
	})

	t.Run("flat fractional values", func(t *testing.T) {
		var teams []*Team
		for _, name := range []string{"a", "b", "c"} {
			teams = append(teams, teamWith(name, map[Metric]float64{ThreePct: 0.1, TORate: 0.1}))
		}
		fs, err := ComputeFieldStats(teams)
		require.NoError(t, err)
		assert.Less(t, fs[ThreePct].StdDev, zeroSpreadEps)
		for _, tm := range teams {
			assert.Equal(t, 0.0, fs.ZOf(tm, ThreePct), tm.Name)
			assert.Equal(t, 0.0, fs.ZOf(tm, TORate), tm.Name)
		}
		assert.Equal(t, 0.0, OrientedZ(fs, TORate, LowerIsBetter, 0.1))
	})
}

func TestFlatMetricIsNeutralDownstream(t *testing.T) {
	var recs []store.TeamRecord
	for i, name := range []string{"Alpha", "Bravo", "Charlie"} {
		recs = append(recs, store.TeamRecord{
			Name: name,
			Seed: intPtr(i + 1),
			Metrics: map[string]*float64{
				"off_eff":   float64Ptr(100 + float64(i)),
				"three_pct": float64Ptr(0.1),
				"to_rate":   float64Ptr(0.1),
			},
		})
	}
	f, err := BuildField(recs, DefaultConfig())
	require.NoError(t, err)

	for _, tm := range f.Teams {
		assert.Equal(t, 0.0, tm.Core.Z[TORate], tm.Name)
		for _, g := range tm.Breadth.Groups {
			if g.Name == "possession" {
				assert.Equal(t, 0, g.Hits, "%s possession hits", tm.Name)
			}
		}
		cold := MarkSlot{}
		for _, slot := range tm.Marks {
			if slot.Category == ColdArc {
				cold = slot
			}
		}
		assert.True(t, cold.Evaluated, tm.Name)
		assert.Nil(t, cold.Mark, "%s has no cold arc on a flat field", tm.Name)
	}
}

func TestFieldZScoresAreStandardised(t *testing.T) {
	var teams []*Team
	for _, rec := range sampleRecords(12) {
		teams = append(teams, newTeam(rec))
	}
	fs, err := ComputeFieldStats(teams)
	require.NoError(t, err)

	for _, m := range TrackedMetrics {
		st, ok := fs[m]
		if !ok || st.StdDev < 1e-9 {
			continue
		}
		zs := make([]float64, 0, len(teams))
		for _, tm := range teams {
			if v, ok := tm.Value(m); ok {
				zs = append(zs, fs.Z(m, v))
			}
		}
		re := summarize(zs)
		assert.InDelta(t, 0, re.Mean, 1e-9, "mean of z for %s", m)
		assert.InDelta(t, 1, re.StdDev, 1e-9, "sd of z for %s", m)
	}
}

func TestDeriveRecordMetrics(t *testing.T) {
	a := teamWith("a", map[Metric]float64{Wins: 30, Losses: 5, SOS: 1})
	b := teamWith("b", map[Metric]float64{Wins: 20, Losses: 10, SOS: 11})
	c := teamWith("c", map[Metric]float64{Wins: 0, Losses: 0, SOS: 6})
	d := teamWith("d", map[Metric]float64{Losses: 3})

	deriveRecordMetrics([]*Team{a, b, c, d})

	require.NotNil(t, a.WinPct)
	assert.InDelta(t, 30.0/35.0, *a.WinPct, 1e-12)
	assert.Nil(t, c.WinPct, "zero games has no win pct")
	assert.Nil(t, d.WinPct, "missing wins has no win pct")

	require.NotNil(t, a.SchedulePctile)
	assert.Equal(t, 1.0, *a.SchedulePctile, "lowest sos is toughest")
	assert.Equal(t, 0.0, *b.SchedulePctile)
	assert.InDelta(t, 0.5, *c.SchedulePctile, 1e-12)
	assert.Nil(t, d.SchedulePctile)
}

func TestScoreCoreHandComputed(t *testing.T) {
	// Every metric moves linearly across four teams, so team 3 sits at
	// +-k on each raw scale. efg_pct falls and opp_efg_pct rises, so both
	// count against team 3 once oriented.
	steps := map[Metric][2]float64{
		OffEff:    {100, 4},
		DefEff:    {105, -5},
		EffMargin: {-5, 9},
		TSPct:     {0.50, 0.01},
		EFGPct:    {0.54, -0.01},
		OppEFGPct: {0.47, 0.01},
		PossRatio: {0.90, 0.05},
		TORate:    {0.20, -0.01},
	}
	var teams []*Team
	for i := 0; i < 4; i++ {
		vals := make(map[Metric]float64, len(steps))
		for m, st := range steps {
			vals[m] = st[0] + st[1]*float64(i)
		}
		teams = append(teams, teamWith(fmt.Sprint(i), vals))
	}
	fs, err := ComputeFieldStats(teams)
	require.NoError(t, err)

	res := ScoreCore(teams[3], fs, DefaultWeights())

	k := 1.5 / math.Sqrt(1.25)
	want := map[Metric]float64{
		OffEff:    k,
		DefEff:    k,
		EffMargin: k,
		TSPct:     k,
		EFGPct:    -k,
		OppEFGPct: -k,
		PossRatio: k,
		TORate:    k,
	}
	for m, z := range want {
		assert.InDelta(t, z, res.Z[m], 1e-9, "oriented z for %s", m)
	}

	// Efficiency 0.45 and possession 0.20 all positive, shooting nets one
	// third of 0.35, and the 0.10 stabilizer adds on top.
	wantScore := k * (0.45 + 0.20 + 0.10 + 0.35/3 - 2*0.35/3)
	assert.InDelta(t, wantScore, res.Score, 1e-9)

	require.Len(t, res.Rows, 8)
	var weighted float64
	for _, row := range res.Rows {
		assert.True(t, row.Available, "%s has data", row.Metric)
		require.NotNil(t, row.Raw)
		weighted += row.Weighted
	}
	assert.InDelta(t, res.Score, weighted, 1e-12)

	inverted := map[Metric]bool{DefEff: true, OppEFGPct: true, TORate: true}
	for _, row := range res.Rows {
		assert.Equal(t, inverted[row.Metric], row.Inverted, "%s inverted", row.Metric)
	}
	assert.InDelta(t, 0.10*k, res.Rows[2].Weighted, 1e-9, "stabilizer row")
}

func TestOrientedZ(t *testing.T) {
	fs := FieldStats{DefEff: {Mean: 100, StdDev: 5}}
	assert.InDelta(t, 1.0, OrientedZ(fs, DefEff, LowerIsBetter, 95), 1e-12)
	assert.InDelta(t, -1.0, OrientedZ(fs, DefEff, HigherIsBetter, 95), 1e-12)
	assert.Equal(t, 0.0, OrientedZ(fs, OffEff, HigherIsBetter, 120))
}

func TestScoreBreadth(t *testing.T) {
	t.Run("nothing clears", func(t *testing.T) {
		res := ScoreBreadth(map[Metric]float64{})
		assert.Equal(t, 0, res.TotalHits)
		assert.Equal(t, 0.0, res.Bonus)
		assert.Len(t, res.Groups, 3)
	})

	t.Run("everything clears", func(t *testing.T) {
		z := map[Metric]float64{}
		for _, m := range CoreMetricKeys() {
			z[m] = 1.0
		}
		res := ScoreBreadth(z)
		assert.Equal(t, 8, res.TotalHits)
		assert.InDelta(t, 1.0, res.Bonus, 1e-12)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		res := ScoreBreadth(map[Metric]float64{TSPct: BreadthHitThreshold, EFGPct: 0.59})
		assert.Equal(t, 1, res.TotalHits)
		assert.InDelta(t, 0.15, res.Bonus, 1e-12)
	})

	t.Run("monotone in hits", func(t *testing.T) {
		z := map[Metric]float64{}
		prev := -1.0
		for _, m := range CoreMetricKeys() {
			z[m] = 0.9
			b := ScoreBreadth(z).Bonus
			assert.GreaterOrEqual(t, b, prev)
			assert.GreaterOrEqual(t, b, 0.0)
			assert.LessOrEqual(t, b, 1.0)
			prev = b
		}
	})
}

func TestResumeTier(t *testing.T) {
	tests := []struct {
		r    float64
		adj  float64
		tier string
	}{
		{1.20, 0.15, TierElite},
		{1.00, 0.15, TierElite},
		{0.90, 0.10, TierStrong},
		{0.70, 0.05, TierAboveAverage},
		{0.30, 0, TierAverage},
		{0.00, 0, TierAverage},
		{-0.50, -0.15, TierWeak},
		{-0.80, -0.15, TierWeak},
		{-1.00, -0.25, TierFragile},
	}
	for _, tt := range tests {
		adj, tier := resumeTier(tt.r)
		assert.Equal(t, tt.adj, adj, "r=%.2f", tt.r)
		assert.Equal(t, tt.tier, tier, "r=%.2f", tt.r)
	}
}

func TestScoreResume(t *testing.T) {
	t.Run("missing record is neutral", func(t *testing.T) {
		recs := sampleRecords(6)
		recs[2].Metrics["wins"] = nil
		f, err := BuildField(recs, DefaultConfig())
		require.NoError(t, err)

		tm, err := f.Team("Team 02")
		require.NoError(t, err)
		assert.False(t, tm.Resume.Available)
		assert.Equal(t, 0.0, tm.Resume.Adjustment)
		assert.Equal(t, TierAverage, tm.Resume.Tier)
	})

	t.Run("flat field stays finite", func(t *testing.T) {
		a := teamWith("a", map[Metric]float64{Wins: 20, Losses: 10, SOS: 1})
		b := teamWith("b", map[Metric]float64{Wins: 20, Losses: 10, SOS: 3})
		fs, err := ComputeFieldStats([]*Team{a, b})
		require.NoError(t, err)

		res := ScoreResume(a, fs)
		require.True(t, res.Available)
		assert.Equal(t, 0.0, res.WinZ)
		assert.False(t, math.IsInf(res.Index, 0))
		assert.False(t, math.IsNaN(res.Index))
	})

	t.Run("better record and schedule ranks higher", func(t *testing.T) {
		f, err := BuildField(sampleRecords(8), DefaultConfig())
		require.NoError(t, err)
		first, _ := f.Team("Team 00")
		last, _ := f.Team("Team 07")
		assert.Greater(t, last.Resume.WinZ, first.Resume.WinZ)
	})
}

func TestBaselineIdentity(t *testing.T) {
	f, err := BuildField(sampleRecords(10), DefaultConfig())
	require.NoError(t, err)
	for _, tm := range f.Teams {
		want := tm.Core.Score + tm.Breadth.Bonus + tm.Resume.Adjustment
		assert.InDelta(t, want, tm.MIBase, 1e-12, tm.Name)
	}
}

func TestBuildFieldIsIdempotent(t *testing.T) {
	recs := sampleRecords(10)
	f1, err := BuildField(recs, DefaultConfig())
	require.NoError(t, err)
	f2, err := BuildField(recs, DefaultConfig())
	require.NoError(t, err)

	for i := range f1.Teams {
		assert.Equal(t, f1.Teams[i].MIBase, f2.Teams[i].MIBase)
		assert.Equal(t, f1.Teams[i].Identity, f2.Teams[i].Identity)
	}
	assert.NotEqual(t, f1.ID, f2.ID)
}

func TestFieldRecordsRoundTrip(t *testing.T) {
	recs := sampleRecords(5)
	recs[1].Metrics["tempo"] = nil
	recs[2].Seed = nil

	f, err := BuildField(recs, DefaultConfig())
	require.NoError(t, err)
	back := f.Records()
	require.Len(t, back, 5)

	f2, err := BuildField(back, DefaultConfig())
	require.NoError(t, err)
	for i := range f.Teams {
		assert.Equal(t, f.Teams[i].Name, f2.Teams[i].Name)
		assert.Equal(t, f.Teams[i].MIBase, f2.Teams[i].MIBase)
	}
	assert.Nil(t, back[2].Seed)
	v, ok := back[1].Metrics["tempo"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestConfigFrom(t *testing.T) {
	c := config.ScoringConfig{
		Weights: config.ScoringWeights{Efficiency: 0.5, Shooting: 0.3, Possession: 0.2, MarginStabilizer: 0.05},
		ResumeScaling: config.ResumeScalingConfig{
			Enabled:     true,
			Multipliers: map[string]float64{TierElite: 1.25},
		},
	}
	cfg := ConfigFrom(c)
	assert.Equal(t, 0.5, cfg.Weights.Efficiency)
	assert.Equal(t, 0.05, cfg.Weights.MarginStabilizer)
	assert.Equal(t, 1.25, cfg.ResumeScaling.Multiplier(TierElite))
	assert.Equal(t, 0.90, cfg.ResumeScaling.Multiplier(TierFragile), "unset tiers keep defaults")
	assert.NoError(t, cfg.Weights.Validate())

	_, err := BuildField(sampleRecords(2), cfg)
	assert.NoError(t, err)
}
