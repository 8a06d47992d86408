package scoring

import (
	"fmt"
	"math"
)

// MarkCategory identifies one structural-weakness rule.
type MarkCategory string

const (
	OffensiveRigidity    MarkCategory = "offensive_rigidity"
	UnstablePerimeter    MarkCategory = "unstable_perimeter"
	ColdArc              MarkCategory = "cold_arc"
	UndisciplinedDefense MarkCategory = "undisciplined_defense"
	SoftInterior         MarkCategory = "soft_interior"
	PerimeterLeakage     MarkCategory = "perimeter_leakage"
	TempoStrain          MarkCategory = "tempo_strain"
	TurnoverFragility    MarkCategory = "turnover_fragility"
)

var markLabels = map[MarkCategory]string{
	OffensiveRigidity:    "Offensive Rigidity",
	UnstablePerimeter:    "Unstable Perimeter",
	ColdArc:              "Cold Arc",
	UndisciplinedDefense: "Undisciplined Defense",
	SoftInterior:         "Soft Interior",
	PerimeterLeakage:     "Perimeter Leakage",
	TempoStrain:          "Tempo Strain",
	TurnoverFragility:    "Turnover Fragility",
}

func (c MarkCategory) Label() string {
	if l, ok := markLabels[c]; ok {
		return l
	}
	return string(c)
}

type Severity string

const (
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// Mark is a raised diagnostic flag. Marks never change any score.
type Mark struct {
	Category MarkCategory `json:"category"`
	Severity Severity     `json:"severity"`
	Value    float64      `json:"value"`
	Reason   string       `json:"reason"`
}

// MarkSlot is the outcome of one rule. Evaluated is false when an input
// was missing; Mark is nil when the rule ran and raised nothing.
type MarkSlot struct {
	Category  MarkCategory `json:"category"`
	Evaluated bool         `json:"evaluated"`
	Mark      *Mark        `json:"mark,omitempty"`
}

type markRule struct {
	category MarkCategory
	eval     func(t *Team, fs FieldStats) (*Mark, bool)
}

var markRules = []markRule{
	{OffensiveRigidity, evalOffensiveRigidity},
	{UnstablePerimeter, evalUnstablePerimeter},
	{ColdArc, evalColdArc},
	{UndisciplinedDefense, evalUndisciplinedDefense},
	{SoftInterior, evalSoftInterior},
	{PerimeterLeakage, evalPerimeterLeakage},
	{TempoStrain, evalTempoStrain},
	{TurnoverFragility, evalTurnoverFragility},
}

// EvaluateMarks runs every rule and returns one slot per rule, in rule order.
func EvaluateMarks(t *Team, fs FieldStats) []MarkSlot {
	slots := make([]MarkSlot, 0, len(markRules))
	for _, r := range markRules {
		m, ok := r.eval(t, fs)
		slot := MarkSlot{Category: r.category, Evaluated: ok}
		if ok {
			slot.Mark = m
		}
		slots = append(slots, slot)
	}
	return slots
}

func newMark(c MarkCategory, s Severity, v float64, reason string) *Mark {
	return &Mark{Category: c, Severity: s, Value: v, Reason: reason}
}

// zAll fetches strict z-scores for every metric, failing if any is missing.
func zAll(t *Team, fs FieldStats, ms ...Metric) ([]float64, bool) {
	out := make([]float64, len(ms))
	for i, m := range ms {
		z, ok := fs.zStrict(t, m)
		if !ok {
			return nil, false
		}
		out[i] = z
	}
	return out, true
}

// shootingFor pairs each scoring-share metric with its make-rate metric.
var shootingFor = []struct {
	share Metric
	pct   Metric
}{
	{PtsTwoShare, TwoPct},
	{PtsThreeShare, ThreePct},
	{PtsFTShare, FTPct},
}

func evalOffensiveRigidity(t *Team, fs FieldStats) (*Mark, bool) {
	dominant, share := -1, 0.0
	for i, s := range shootingFor {
		v, ok := t.Value(s.share)
		if !ok {
			return nil, false
		}
		if v = fraction(v); dominant < 0 || v > share {
			dominant, share = i, v
		}
	}

	if share < 0.50 {
		return nil, true
	}

	var planB []Metric
	for i, s := range shootingFor {
		if i != dominant {
			planB = append(planB, s.pct)
		}
	}
	zs, ok := zAll(t, fs, planB...)
	if !ok {
		return nil, false
	}

	plan := (zs[0] + zs[1]) / 2
	reason := fmt.Sprintf("%.0f%% of points from %s with plan-B z %.2f",
		share*100, shootingFor[dominant].share.Label(), plan)
	switch {
	case share >= 0.55 && plan <= -0.50:
		return newMark(OffensiveRigidity, SeveritySevere, plan, reason), true
	case plan <= -0.25:
		return newMark(OffensiveRigidity, SeverityModerate, plan, reason), true
	}
	return nil, true
}

func evalUnstablePerimeter(t *Team, _ FieldStats) (*Mark, bool) {
	rate, ok := t.Value(ThreeRate)
	if !ok {
		return nil, false
	}
	pct, ok := t.Value(ThreePct)
	if !ok {
		return nil, false
	}
	rate, pct = fraction(rate), fraction(pct)
	if rate < 0.40 {
		return nil, true
	}

	gap := math.Abs(rate - pct)
	reason := fmt.Sprintf("three-point rate %.3f against make rate %.3f", rate, pct)
	switch {
	case gap >= 0.10:
		return newMark(UnstablePerimeter, SeveritySevere, gap, reason), true
	case gap >= 0.06:
		return newMark(UnstablePerimeter, SeverityModerate, gap, reason), true
	}
	return nil, true
}

func evalColdArc(t *Team, fs FieldStats) (*Mark, bool) {
	z, ok := fs.zStrict(t, ThreePct)
	if !ok {
		return nil, false
	}
	reason := fmt.Sprintf("three-point %% z %.2f", z)
	switch {
	case z < -0.67:
		return newMark(ColdArc, SeveritySevere, z, reason), true
	case z < 0:
		return newMark(ColdArc, SeverityModerate, z, reason), true
	}
	return nil, true
}

func evalUndisciplinedDefense(t *Team, fs FieldStats) (*Mark, bool) {
	zs, ok := zAll(t, fs, StealRate, OppTORate, OppFTRate)
	if !ok {
		return nil, false
	}
	// Gambling pressure minus foul discipline, where discipline is the
	// negated opponent free-throw rate.
	score := (zs[0] + zs[1]) - (-zs[2])
	reason := fmt.Sprintf("pressure z-sum %.2f with opponent free-throw rate z %.2f", zs[0]+zs[1], zs[2])
	switch {
	case score > 1.00:
		return newMark(UndisciplinedDefense, SeveritySevere, score, reason), true
	case score > 0.50:
		return newMark(UndisciplinedDefense, SeverityModerate, score, reason), true
	}
	return nil, true
}

func evalSoftInterior(t *Team, fs FieldStats) (*Mark, bool) {
	zs, ok := zAll(t, fs, OppEFGPct, BlockRate)
	if !ok {
		return nil, false
	}
	score := (-zs[0] + zs[1]) / 2
	reason := fmt.Sprintf("interior resistance %.2f", score)
	switch {
	case score < -0.75:
		return newMark(SoftInterior, SeveritySevere, score, reason), true
	case score < -0.25:
		return newMark(SoftInterior, SeverityModerate, score, reason), true
	}
	return nil, true
}

func evalPerimeterLeakage(t *Team, fs FieldStats) (*Mark, bool) {
	zs, ok := zAll(t, fs, OppThreeRate, OppThreePct)
	if !ok {
		return nil, false
	}
	score := zs[0] + zs[1]
	reason := fmt.Sprintf("opponent three-point volume and accuracy z-sum %.2f", score)
	switch {
	case score > 1.00:
		return newMark(PerimeterLeakage, SeveritySevere, score, reason), true
	case score > 0.50:
		return newMark(PerimeterLeakage, SeverityModerate, score, reason), true
	}
	return nil, true
}

// Tempo strain gates: extremity, fragility and their product must all clear
// the band floor.
var tempoStrainBands = []struct {
	severity                      Severity
	extremity, fragility, product float64
}{
	{SeveritySevere, 1.00, 0.50, 0.75},
	{SeverityModerate, 0.75, 0.25, 0.30},
}

func evalTempoStrain(t *Team, fs FieldStats) (*Mark, bool) {
	zs, ok := zAll(t, fs, Tempo, PossRatio, TORate)
	if !ok {
		return nil, false
	}
	extremity := math.Abs(zs[0])
	fragility := math.Max(0, (-zs[1]+zs[2])/2)
	strain := extremity * fragility

	for _, b := range tempoStrainBands {
		if extremity >= b.extremity && fragility >= b.fragility && strain >= b.product {
			reason := fmt.Sprintf("tempo extremity %.2f with possession fragility %.2f", extremity, fragility)
			return newMark(TempoStrain, b.severity, strain, reason), true
		}
	}
	return nil, true
}

func evalTurnoverFragility(t *Team, fs FieldStats) (*Mark, bool) {
	zs, ok := zAll(t, fs, TORate, PossRatio)
	if !ok {
		return nil, false
	}
	instability := turnoverInstability(zs[0], zs[1])
	reason := fmt.Sprintf("ball-security instability %.2f", instability)
	switch {
	case instability >= 1.00:
		return newMark(TurnoverFragility, SeveritySevere, instability, reason), true
	case instability >= 0.50:
		return newMark(TurnoverFragility, SeverityModerate, instability, reason), true
	}
	return nil, true
}

// turnoverInstability is the negated mean of oriented ball security
// (-z turnover rate) and possession ratio.
func turnoverInstability(zTO, zPoss float64) float64 {
	return -((-zTO + zPoss) / 2)
}
