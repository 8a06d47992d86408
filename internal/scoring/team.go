package scoring

import (
	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

// Team is one entrant with every derived layer attached. A Team is rebuilt
// from its record on every dataset load and never mutated after publication.
type Team struct {
	Name string              `json:"name"`
	Seed *int                `json:"seed,omitempty"`
	Raw  map[Metric]*float64 `json:"raw"`

	WinPct         *float64 `json:"win_pct,omitempty"`
	SchedulePctile *float64 `json:"schedule_percentile,omitempty"`

	Core     CoreResult     `json:"core"`
	Breadth  BreadthResult  `json:"breadth"`
	Resume   ResumeResult   `json:"resume"`
	Marks    []MarkSlot     `json:"marks"`
	MIBase   float64        `json:"mi_base"`
	Identity IdentityResult `json:"identity"`
}

func newTeam(rec store.TeamRecord) *Team {
	t := &Team{
		Name: rec.Name,
		Raw:  make(map[Metric]*float64, len(rec.Metrics)),
	}
	if rec.Seed != nil {
		s := *rec.Seed
		t.Seed = &s
	}
	for k, v := range rec.Metrics {
		if v == nil {
			t.Raw[Metric(k)] = nil
			continue
		}
		val := *v
		t.Raw[Metric(k)] = &val
	}
	return t
}

// Value returns a raw or derived metric and whether it is present.
func (t *Team) Value(m Metric) (float64, bool) {
	switch m {
	case WinPct:
		if t.WinPct == nil {
			return 0, false
		}
		return *t.WinPct, true
	case SchedulePctle:
		if t.SchedulePctile == nil {
			return 0, false
		}
		return *t.SchedulePctile, true
	}
	v, ok := t.Raw[m]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// SeedValue returns the seed when it is a valid regional seed line.
func (t *Team) SeedValue() (int, bool) {
	if t.Seed == nil || !store.ValidSeed(*t.Seed) {
		return 0, false
	}
	return *t.Seed, true
}

// ActiveMarks returns only the rules that raised a flag.
func (t *Team) ActiveMarks() []Mark {
	var out []Mark
	for _, slot := range t.Marks {
		if slot.Mark != nil {
			out = append(out, *slot.Mark)
		}
	}
	return out
}

// HasMark reports whether the team carries any flag for category.
func (t *Team) HasMark(c MarkCategory) bool {
	for _, slot := range t.Marks {
		if slot.Category == c && slot.Mark != nil {
			return true
		}
	}
	return false
}

// Record converts the team back to its dataset row. Derived keys are not
// included.
func (t *Team) Record() store.TeamRecord {
	rec := store.TeamRecord{
		Name:    t.Name,
		Metrics: make(map[string]*float64, len(t.Raw)),
	}
	if t.Seed != nil {
		s := *t.Seed
		rec.Seed = &s
	}
	for m, v := range t.Raw {
		if v == nil {
			rec.Metrics[string(m)] = nil
			continue
		}
		val := *v
		rec.Metrics[string(m)] = &val
	}
	return rec
}
