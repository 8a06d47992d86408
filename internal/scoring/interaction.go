package scoring

import "math"

// Category tags one pairwise interaction.
type Category string

const (
	ThreePointTension   Category = "3pt_tension"
	FreeThrowPressure   Category = "ft_pressure"
	PaintPresence       Category = "paint_presence"
	TurnoverPressure    Category = "turnover_pressure"
	PossessionManager   Category = "possession_manager"
	ResumePressure      Category = "resume_pressure"
	Physicality         Category = "physicality"
	ShotQuality         Category = "shot_quality"
	VarianceSensitivity Category = "variance_sensitivity"
)

var categoryLabels = map[Category]string{
	ThreePointTension:   "3PT Tension",
	FreeThrowPressure:   "FT Pressure",
	PaintPresence:       "Paint Presence",
	TurnoverPressure:    "Turnover Pressure",
	PossessionManager:   "Possession Manager (Glass)",
	ResumePressure:      "Résumé Pressure",
	Physicality:         "Physicality / Contact Tolerance",
	ShotQuality:         "Shot Quality / Discipline",
	VarianceSensitivity: "Variance Sensitivity",
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

const (
	halfMirrorNoise  = 0.50
	halfMirrorStrong = 1.00
	halfMirrorLow    = 0.25
	halfMirrorHigh   = 0.50

	// varianceMarkBonus is added to a side's exposure when it already carries
	// an Unstable Perimeter or Cold Arc mark.
	varianceMarkBonus = 0.10
)

// HalfMirroredAdjust maps a gap to 0, 0.25 or 0.50 by its magnitude.
func HalfMirroredAdjust(gap float64) float64 {
	g := math.Abs(gap)
	switch {
	case g < halfMirrorNoise:
		return 0
	case g < halfMirrorStrong:
		return halfMirrorLow
	default:
		return halfMirrorHigh
	}
}

func signedAdjust(gap float64) float64 {
	switch {
	case gap > 0:
		return HalfMirroredAdjust(gap)
	case gap < 0:
		return -HalfMirroredAdjust(gap)
	default:
		return 0
	}
}

// CategoryResult is one category's signed outcome for each side.
type CategoryResult struct {
	Category  Category `json:"category"`
	Label     string   `json:"label"`
	GapA      float64  `json:"gap_a"`
	GapB      float64  `json:"gap_b"`
	Operative float64  `json:"operative_gap"`
	A         float64  `json:"a"`
	B         float64  `json:"b"`
	// Favors is "A", "B" or "" when the category is neutral.
	Favors string `json:"favors,omitempty"`
}

// Interaction is the pairwise adjustment for an ordered pair. TotalA is
// always the exact negation of TotalB.
type Interaction struct {
	TotalA    float64                     `json:"total_a"`
	TotalB    float64                     `json:"total_b"`
	Breakdown map[Category]CategoryResult `json:"breakdown"`
	Order     []Category                  `json:"order"`
}

// Rows returns the breakdown in evaluation order.
func (in Interaction) Rows() []CategoryResult {
	rows := make([]CategoryResult, 0, len(in.Order))
	for _, c := range in.Order {
		rows = append(rows, in.Breakdown[c])
	}
	return rows
}

// accumulator collects one comparison's categories. It lives on the stack
// of a single Interact call.
type accumulator struct {
	in Interaction
}

func newAccumulator() *accumulator {
	return &accumulator{in: Interaction{Breakdown: make(map[Category]CategoryResult, len(categoryOrder))}}
}

func (acc *accumulator) add(c Category, gapA, gapB, operative, deltaA float64) {
	r := CategoryResult{
		Category:  c,
		Label:     c.Label(),
		GapA:      gapA,
		GapB:      gapB,
		Operative: operative,
		A:         deltaA,
		B:         -deltaA,
	}
	switch {
	case deltaA > 0:
		r.Favors = "A"
	case deltaA < 0:
		r.Favors = "B"
	}
	acc.in.TotalA += r.A
	acc.in.TotalB += r.B
	acc.in.Breakdown[c] = r
	acc.in.Order = append(acc.in.Order, c)
}

// resolveDualGap picks the larger-magnitude gap and returns A's signed award.
// gapA > 0 means A's attack beats B's resistance; gapB > 0 means B's attack
// beats A's. On equal magnitudes the two awards are averaged.
func resolveDualGap(gapA, gapB float64) (deltaA, operative float64) {
	ma, mb := math.Abs(gapA), math.Abs(gapB)
	switch {
	case ma > mb:
		return signedAdjust(gapA), gapA
	case mb > ma:
		return -signedAdjust(gapB), gapB
	default:
		return (signedAdjust(gapA) - signedAdjust(gapB)) / 2, gapA
	}
}

// side exposes z lookups for one team against the field.
type side struct {
	t  *Team
	fs FieldStats
}

func (s side) z(m Metric) float64  { return s.fs.ZOf(s.t, m) }
func (s side) nz(m Metric) float64 { return -s.fs.ZOf(s.t, m) }

func mean(vals ...float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// styleCategory is an attack-versus-resistance interaction.
type styleCategory struct {
	category   Category
	attack     func(s side) float64
	resistance func(s side) float64
}

var styleCategories = []styleCategory{
	{
		category: ThreePointTension,
		attack: func(s side) float64 {
			return mean(s.z(ThreeRate), s.z(ThreePct), s.z(PtsThreeShare))
		},
		resistance: func(s side) float64 {
			return mean(s.nz(OppThreeRate), s.nz(OppThreePct))
		},
	},
	{
		category: FreeThrowPressure,
		attack: func(s side) float64 {
			return mean(s.z(FTRate), s.z(FTPct), s.z(PtsFTShare))
		},
		resistance: func(s side) float64 { return s.nz(OppFTRate) },
	},
	{
		category: PaintPresence,
		attack: func(s side) float64 {
			return mean(s.z(PtsTwoShare), s.z(NonBlockedTwo))
		},
		resistance: func(s side) float64 {
			return mean(s.nz(OppEFGPct), s.z(BlockRate))
		},
	},
	{
		category: TurnoverPressure,
		attack: func(s side) float64 {
			return mean(s.z(StealRate), s.z(OppTORate), s.nz(OppAstPerPoss))
		},
		resistance: func(s side) float64 { return s.nz(TORate) },
	},
	{
		category: PossessionManager,
		attack: func(s side) float64 {
			return mean(s.z(ORBRate), s.z(ExtraChances))
		},
		resistance: func(s side) float64 { return s.z(DRBRate) },
	},
	{
		category: Physicality,
		attack: func(s side) float64 {
			return mean(s.z(FTRate), s.z(PtsTwoShare), s.z(NonBlockedTwo))
		},
		resistance: func(s side) float64 {
			return mean(s.z(BlockRate), s.nz(OppEFGPct), s.nz(OppFTRate))
		},
	},
	{
		category: ShotQuality,
		attack: func(s side) float64 {
			return mean(s.z(EFGPct), s.z(ThreeRate), s.z(NonBlockedTwo))
		},
		resistance: func(s side) float64 {
			return mean(s.nz(OppEFGPct), s.nz(OppAstPerPoss))
		},
	},
}

// categoryOrder is the evaluation and display order of all nine categories.
var categoryOrder = []Category{
	ThreePointTension, FreeThrowPressure, PaintPresence, TurnoverPressure,
	PossessionManager, ResumePressure, Physicality, ShotQuality, VarianceSensitivity,
}

var styleByCategory = func() map[Category]styleCategory {
	m := make(map[Category]styleCategory, len(styleCategories))
	for _, sc := range styleCategories {
		m[sc.category] = sc
	}
	return m
}()

// varianceExposure is the Variance-Exposure-Index of one side.
func varianceExposure(s side) float64 {
	tfi := turnoverInstability(s.z(TORate), s.z(PossRatio))
	vei := 0.40*s.z(ThreeRate) + 0.20*s.nz(FTRate) + 0.20*s.nz(ORBRate) + 0.20*tfi
	if s.t.HasMark(UnstablePerimeter) || s.t.HasMark(ColdArc) {
		vei += varianceMarkBonus
	}
	return vei
}

// opponentStabilization is the Opponent-Stabilization-Index of one side.
func opponentStabilization(s side) float64 {
	return mean(s.z(OppTORate), s.z(DRBRate), s.nz(OppFTRate), s.nz(OppThreePct))
}

// Interact computes every category for the ordered pair (a, b). All state
// is local to the call.
func Interact(a, b *Team, fs FieldStats) Interaction {
	acc := newAccumulator()
	sa, sb := side{a, fs}, side{b, fs}

	for _, c := range categoryOrder {
		switch c {
		case ResumePressure:
			gap := a.Resume.Index - b.Resume.Index
			acc.add(c, gap, -gap, gap, signedAdjust(gap))
		case VarianceSensitivity:
			riskA := varianceExposure(sa) - opponentStabilization(sb)
			riskB := varianceExposure(sb) - opponentStabilization(sa)
			// Lower risk earns the leverage, so the gaps are negated risks.
			deltaA, operative := resolveDualGap(-riskA, -riskB)
			acc.add(c, riskA, riskB, -operative, deltaA)
		default:
			sc := styleByCategory[c]
			gapA := sc.attack(sa) - sc.resistance(sb)
			gapB := sc.attack(sb) - sc.resistance(sa)
			deltaA, operative := resolveDualGap(gapA, gapB)
			acc.add(c, gapA, gapB, operative, deltaA)
		}
	}
	return acc.in
}
