package scoring

import "math"

// resumeSDFloor keeps the résumé z-scores finite on a flat field.
const resumeSDFloor = 1e-6

type resumeBand struct {
	min        float64
	label      string
	adjustment float64
}

// resumeBands above Average, highest floor first.
var resumeBands = []resumeBand{
	{1.00, TierElite, 0.15},
	{0.80, TierStrong, 0.10},
	{0.60, TierAboveAverage, 0.05},
}

const (
	resumeWeakAdjustment    = -0.15
	resumeFragileAdjustment = -0.25
	resumeFragileCeiling    = -0.80
)

// ResumeResult blends win percentage and schedule hardness into a tiered
// adjustment.
type ResumeResult struct {
	Available  bool    `json:"available"`
	WinZ       float64 `json:"win_z"`
	ScheduleZ  float64 `json:"schedule_z"`
	Index      float64 `json:"index"`
	Adjustment float64 `json:"adjustment"`
	Tier       string  `json:"tier"`
}

func neutralResume() ResumeResult {
	return ResumeResult{Tier: TierAverage}
}

// ScoreResume computes the résumé index R and its adjustment. It is
// neutral (0, Average) when either field snapshot or either team value is
// missing.
func ScoreResume(t *Team, fs FieldStats) ResumeResult {
	winStat, okW := fs[WinPct]
	schedStat, okS := fs[SchedulePctle]
	if !okW || !okS || t.WinPct == nil || t.SchedulePctile == nil {
		return neutralResume()
	}

	winZ := (*t.WinPct - winStat.Mean) / math.Max(winStat.StdDev, resumeSDFloor)
	schedZ := (*t.SchedulePctile - schedStat.Mean) / math.Max(schedStat.StdDev, resumeSDFloor)
	r := (winZ + schedZ) / 2

	res := ResumeResult{
		Available: true,
		WinZ:      winZ,
		ScheduleZ: schedZ,
		Index:     r,
	}
	res.Adjustment, res.Tier = resumeTier(r)
	return res
}

func resumeTier(r float64) (float64, string) {
	for _, b := range resumeBands {
		if r >= b.min {
			return b.adjustment, b.label
		}
	}
	switch {
	case r < resumeFragileCeiling:
		return resumeFragileAdjustment, TierFragile
	case r < 0:
		return resumeWeakAdjustment, TierWeak
	default:
		return 0, TierAverage
	}
}
