package scoring

const (
	TierElite        = "Elite"
	TierStrong       = "Strong"
	TierAboveAverage = "Above Average"
	TierAverage      = "Average"
	TierWeak         = "Weak"
	TierFragile      = "Fragile"
)

type tierBand struct {
	min    float64
	label  string
	points float64
}

// zTiers is ordered from the highest floor down; the last band catches the rest.
var zTiers = []tierBand{
	{1.00, TierElite, 2.0},
	{0.80, TierStrong, 1.5},
	{0.60, TierAboveAverage, 1.0},
	{0.00, TierAverage, 0.5},
	{-0.80, TierWeak, 0},
}

// TierFor maps a z-score to its tier label.
func TierFor(z float64) string {
	for _, b := range zTiers {
		if z >= b.min {
			return b.label
		}
	}
	return TierFragile
}

// TierPoints is the display-only point value for a z-score.
func TierPoints(z float64) float64 {
	for _, b := range zTiers {
		if z >= b.min {
			return b.points
		}
	}
	return 0
}
