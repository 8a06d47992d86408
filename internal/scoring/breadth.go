package scoring

// BreadthHitThreshold is the oriented z a metric must reach to count as a hit.
const BreadthHitThreshold = 0.60

type breadthGroup struct {
	name    string
	members []Metric
	// bonus[i] is the award for i hits.
	bonus []float64
}

var breadthGroups = []breadthGroup{
	{"efficiency", []Metric{OffEff, DefEff, EffMargin, OppEFGPct}, []float64{0, 0.10, 0.20, 0.30, 0.40}},
	{"shooting", []Metric{TSPct, EFGPct}, []float64{0, 0.15, 0.30}},
	{"possession", []Metric{PossRatio, TORate}, []float64{0, 0.15, 0.30}},
}

// BreadthGroup is one group's hit count and award.
type BreadthGroup struct {
	Name    string   `json:"name"`
	Members []Metric `json:"members"`
	Hits    int      `json:"hits"`
	Bonus   float64  `json:"bonus"`
}

// BreadthResult rewards profiles that clear the hit threshold across groups.
type BreadthResult struct {
	Groups    []BreadthGroup `json:"groups"`
	TotalHits int            `json:"total_hits"`
	Bonus     float64        `json:"bonus"`
}

// ScoreBreadth counts hits per group from the oriented core z-scores.
func ScoreBreadth(coreZ map[Metric]float64) BreadthResult {
	var res BreadthResult
	for _, g := range breadthGroups {
		hits := 0
		for _, m := range g.members {
			if coreZ[m] >= BreadthHitThreshold {
				hits++
			}
		}
		bg := BreadthGroup{
			Name:    g.name,
			Members: append([]Metric(nil), g.members...),
			Hits:    hits,
			Bonus:   g.bonus[hits],
		}
		res.Groups = append(res.Groups, bg)
		res.TotalHits += hits
		res.Bonus += bg.Bonus
	}
	return res
}
