package scoring

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Matchup/internal/config"
)

// WeightSet defines the core composite lanes. The three lanes must sum to
// 1.0 (±0.001 tolerance); MarginStabilizer is added on top of them.
type WeightSet struct {
	Efficiency       float64
	Shooting         float64
	Possession       float64
	MarginStabilizer float64
}

// DefaultWeights returns the standard 45/35/20 lanes with a 10% stabilizer.
func DefaultWeights() WeightSet {
	return WeightSet{
		Efficiency:       0.45,
		Shooting:         0.35,
		Possession:       0.20,
		MarginStabilizer: 0.10,
	}
}

// Sum returns the total of the three lanes.
func (w WeightSet) Sum() float64 {
	return w.Efficiency + w.Shooting + w.Possession
}

// Validate checks that the lanes sum to 1.0 and no weight is negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("core lanes sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Efficiency, w.Shooting, w.Possession, w.MarginStabilizer} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// PerMetric splits each lane evenly across its member metrics.
func (w WeightSet) PerMetric() map[Metric]float64 {
	return map[Metric]float64{
		OffEff:    w.Efficiency / 2,
		DefEff:    w.Efficiency / 2,
		TSPct:     w.Shooting / 3,
		EFGPct:    w.Shooting / 3,
		OppEFGPct: w.Shooting / 3,
		PossRatio: w.Possession / 2,
		TORate:    w.Possession / 2,
		EffMargin: w.MarginStabilizer,
	}
}

// ResumeScaling multiplies a side's interaction leverage by a factor keyed
// on its résumé tier before it is added to the baseline rating.
type ResumeScaling struct {
	Enabled     bool
	Multipliers map[string]float64
}

// DefaultResumeScaling returns the tier multipliers of the current engine.
func DefaultResumeScaling() ResumeScaling {
	return ResumeScaling{
		Enabled: true,
		Multipliers: map[string]float64{
			TierElite:        1.10,
			TierStrong:       1.06,
			TierAboveAverage: 1.03,
			TierAverage:      1.00,
			TierWeak:         0.95,
			TierFragile:      0.90,
		},
	}
}

// Multiplier returns the factor for tier, or 1.0 when scaling is disabled
// or the tier has no entry.
func (r ResumeScaling) Multiplier(tier string) float64 {
	if !r.Enabled {
		return 1.0
	}
	if m, ok := r.Multipliers[tier]; ok {
		return m
	}
	return 1.0
}

// Config bundles the tunables of one engine.
type Config struct {
	Weights       WeightSet
	ResumeScaling ResumeScaling
}

func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), ResumeScaling: DefaultResumeScaling()}
}

// ConfigFrom maps the YAML scoring section onto engine tunables. Missing
// multipliers fall back to the defaults.
func ConfigFrom(c config.ScoringConfig) Config {
	scaling := DefaultResumeScaling()
	scaling.Enabled = c.ResumeScaling.Enabled
	for tier, m := range c.ResumeScaling.Multipliers {
		scaling.Multipliers[tier] = m
	}
	return Config{
		Weights: WeightSet{
			Efficiency:       c.Weights.Efficiency,
			Shooting:         c.Weights.Shooting,
			Possession:       c.Weights.Possession,
			MarginStabilizer: c.Weights.MarginStabilizer,
		},
		ResumeScaling: scaling,
	}
}
