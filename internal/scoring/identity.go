package scoring

import (
	"math"
	"sort"
)

const (
	identityStrongZ = 0.80
	identityWeakZ   = 0.50
)

// IdentityResult holds the seed-relative narrative indices. CIS and FAS are
// 0-100 and never feed back into any rating.
type IdentityResult struct {
	Percentile    float64 `json:"percentile"`
	Rating        int     `json:"rating"`
	Seeded        bool    `json:"seeded"`
	FavoriteIndex float64 `json:"favorite_index"`
	UnderdogIndex float64 `json:"underdog_index"`
	Delta         float64 `json:"delta"`
	Alignment     float64 `json:"alignment"`
	CoreBonusCIS  float64 `json:"core_bonus_cis"`
	CoreBonusFAS  float64 `json:"core_bonus_fas"`
	ResumeBoost   float64 `json:"resume_boost"`
	RawCIS        float64 `json:"raw_cis"`
	RawFAS        float64 `json:"raw_fas"`
	CIS           float64 `json:"cis"`
	FAS           float64 `json:"fas"`
}

// rankByBaseline orders teams by mi_base ascending, ties by name.
func rankByBaseline(teams []*Team) []*Team {
	ranked := append([]*Team(nil), teams...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MIBase != ranked[j].MIBase {
			return ranked[i].MIBase < ranked[j].MIBase
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// cosmeticRating maps a rank percentile in (0,1) to an integer in [1,99].
func cosmeticRating(p float64) int {
	r := int(math.Round(p * 100))
	if r < 1 {
		return 1
	}
	if r > 99 {
		return 99
	}
	return r
}

// ComputeIdentity assigns rank percentiles, cosmetic ratings and the
// field-normalised CIS/FAS indices. It needs mi_base on every team.
func ComputeIdentity(teams []*Team) {
	ranked := rankByBaseline(teams)
	n := float64(len(ranked))

	var maxCIS, maxFAS float64
	for i, t := range ranked {
		p := (float64(i) + 0.5) / n
		id := IdentityResult{Percentile: p, Rating: cosmeticRating(p)}

		if seed, ok := t.SeedValue(); ok {
			id.Seeded = true
			id.FavoriteIndex = float64(17-seed) / 16
			id.UnderdogIndex = float64(seed-1) / 16
			id.Delta = p - id.FavoriteIndex
			deltaPlus := math.Max(0, id.Delta)
			id.Alignment = 1 - math.Abs(id.Delta)

			fStrong, fWeak := coreFractions(t.Core.Z)
			id.CoreBonusCIS = math.Max(0, fStrong-0.5*fWeak)
			id.CoreBonusFAS = fStrong * (1 - fWeak)
			id.ResumeBoost = 0.5 + t.Resume.Adjustment/4

			id.RawCIS = id.UnderdogIndex * (0.60*deltaPlus + 0.25*id.CoreBonusCIS + 0.15*id.ResumeBoost)
			id.RawFAS = id.FavoriteIndex * (0.50*id.Alignment + 0.30*id.CoreBonusFAS + 0.20*id.ResumeBoost)
			id.RawCIS = positive(id.RawCIS)
			id.RawFAS = positive(id.RawFAS)
			maxCIS = math.Max(maxCIS, id.RawCIS)
			maxFAS = math.Max(maxFAS, id.RawFAS)
		}
		t.Identity = id
	}

	for _, t := range ranked {
		if !t.Identity.Seeded {
			continue
		}
		if maxCIS > 0 {
			t.Identity.CIS = t.Identity.RawCIS / maxCIS * 100
		}
		if maxFAS > 0 {
			t.Identity.FAS = t.Identity.RawFAS / maxFAS * 100
		}
	}
}

// coreFractions returns the share of core traits that are strong and weak.
// A missing trait has z 0 and counts as weak.
func coreFractions(coreZ map[Metric]float64) (strong, weak float64) {
	keys := CoreMetricKeys()
	for _, m := range keys {
		z := coreZ[m]
		if z >= identityStrongZ {
			strong++
		}
		if z < identityWeakZ {
			weak++
		}
	}
	n := float64(len(keys))
	return strong / n, weak / n
}

func positive(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
