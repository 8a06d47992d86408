package scoring

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Matchup/internal/bracket"
)

const (
	OutcomeA    = "A"
	OutcomeB    = "B"
	OutcomePush = "push"
)

const (
	LeanPush     = "Push"
	LeanCoinFlip = "Coin Flip"
	LeanSlight   = "Lean"
	LeanSolid    = "Solid"
	LeanDecisive = "Decisive"
)

// leanBands classify |margin|, in ascending ceilings.
var leanBands = []struct {
	below float64
	label string
}{
	{0.25, LeanCoinFlip},
	{0.60, LeanSlight},
	{1.20, LeanSolid},
}

// LeanFor classifies a margin by magnitude.
func LeanFor(margin float64) string {
	m := math.Abs(margin)
	if m == 0 {
		return LeanPush
	}
	for _, b := range leanBands {
		if m < b.below {
			return b.label
		}
	}
	return LeanDecisive
}

// MatchupSide is one team's part of a comparison.
type MatchupSide struct {
	Name        string  `json:"name"`
	Seed        *int    `json:"seed,omitempty"`
	Base        float64 `json:"mi_base"`
	Interaction float64 `json:"interaction"`
	ResumeTier  string  `json:"resume_tier"`
	Multiplier  float64 `json:"multiplier"`
	Adjustment  float64 `json:"adjustment"`
	Final       float64 `json:"final"`
}

// MatchupResult is built once per comparison request and never mutated.
type MatchupResult struct {
	ID          uuid.UUID         `json:"matchup_id"`
	DatasetID   uuid.UUID         `json:"dataset_id"`
	ResolvedAt  time.Time         `json:"resolved_at"`
	A           MatchupSide       `json:"a"`
	B           MatchupSide       `json:"b"`
	Round       *bracket.Round    `json:"round,omitempty"`
	Topology    *bracket.Topology `json:"topology,omitempty"`
	Interaction Interaction       `json:"interaction"`
	Margin      float64           `json:"margin"`
	Outcome     string            `json:"outcome"`
	Winner      string            `json:"winner,omitempty"`
	Lean        string            `json:"lean"`
}

// Push reports whether neither side is favoured.
func (r *MatchupResult) Push() bool { return r.Outcome == OutcomePush }

// ResolveMatchup compares a and b under round (optional). The topology is
// attached for display and never affects the winner or margin.
func ResolveMatchup(a, b *Team, fs FieldStats, round *bracket.Round, cfg Config) *MatchupResult {
	in := Interact(a, b, fs)

	res := &MatchupResult{
		ID:          uuid.New(),
		ResolvedAt:  time.Now().UTC(),
		A:           buildSide(a, in.TotalA, cfg.ResumeScaling),
		B:           buildSide(b, in.TotalB, cfg.ResumeScaling),
		Interaction: in,
	}
	if round != nil {
		r := *round
		res.Round = &r
	}
	if sa, okA := a.SeedValue(); okA {
		if sb, okB := b.SeedValue(); okB {
			if topo, err := bracket.Resolve(sa, sb, res.Round); err == nil {
				res.Topology = &topo
			}
		}
	}

	res.Margin = res.A.Final - res.B.Final
	switch {
	case res.A.Final > res.B.Final:
		res.Outcome, res.Winner = OutcomeA, a.Name
	case res.B.Final > res.A.Final:
		res.Outcome, res.Winner = OutcomeB, b.Name
	default:
		res.Outcome = OutcomePush
	}
	res.Lean = LeanFor(res.Margin)
	return res
}

func buildSide(t *Team, interaction float64, scaling ResumeScaling) MatchupSide {
	s := MatchupSide{
		Name:        t.Name,
		Base:        t.MIBase,
		Interaction: interaction,
		ResumeTier:  t.Resume.Tier,
		Multiplier:  scaling.Multiplier(t.Resume.Tier),
	}
	if t.Seed != nil {
		seed := *t.Seed
		s.Seed = &seed
	}
	s.Adjustment = s.Multiplier * interaction
	s.Final = s.Base + s.Adjustment
	return s
}
