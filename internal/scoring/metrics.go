package scoring

// Metric is a canonical dataset key.
type Metric string

const (
	OffEff        Metric = "off_eff"
	DefEff        Metric = "def_eff"
	EffMargin     Metric = "eff_margin"
	TSPct         Metric = "ts_pct"
	EFGPct        Metric = "efg_pct"
	OppEFGPct     Metric = "opp_efg_pct"
	PossRatio     Metric = "poss_ratio"
	TORate        Metric = "to_rate"
	TwoPct        Metric = "two_pct"
	ThreeRate     Metric = "three_rate"
	ThreePct      Metric = "three_pct"
	FTRate        Metric = "ft_rate"
	FTPct         Metric = "ft_pct"
	PtsTwoShare   Metric = "pts_two_share"
	PtsThreeShare Metric = "pts_three_share"
	PtsFTShare    Metric = "pts_ft_share"
	NonBlockedTwo Metric = "non_blocked_two_rate"
	BlockRate     Metric = "block_rate"
	StealRate     Metric = "steal_rate"
	OppTORate     Metric = "opp_to_rate"
	OppAstPerPoss Metric = "opp_ast_per_poss"
	OppThreeRate  Metric = "opp_three_rate"
	OppThreePct   Metric = "opp_three_pct"
	OppFTRate     Metric = "opp_ft_rate"
	ORBRate       Metric = "orb_rate"
	DRBRate       Metric = "drb_rate"
	ExtraChances  Metric = "extra_chances_rate"
	Tempo         Metric = "tempo"
	Wins          Metric = "wins"
	Losses        Metric = "losses"
	SOS           Metric = "sos"

	// Derived during the field pass.
	WinPct        Metric = "win_pct"
	SchedulePctle Metric = "sched_pctile"
)

// RawMetrics lists every key read from a dataset row.
var RawMetrics = []Metric{
	OffEff, DefEff, EffMargin, TSPct, EFGPct, OppEFGPct, PossRatio, TORate,
	TwoPct, ThreeRate, ThreePct, FTRate, FTPct,
	PtsTwoShare, PtsThreeShare, PtsFTShare,
	NonBlockedTwo, BlockRate, StealRate, OppTORate, OppAstPerPoss,
	OppThreeRate, OppThreePct, OppFTRate,
	ORBRate, DRBRate, ExtraChances, Tempo,
	Wins, Losses, SOS,
}

// TrackedMetrics is every metric the field snapshot summarises.
var TrackedMetrics = append(append([]Metric{}, RawMetrics...), WinPct, SchedulePctle)

var metricLabels = map[Metric]string{
	OffEff:        "Offensive Efficiency",
	DefEff:        "Defensive Efficiency",
	EffMargin:     "Efficiency Margin",
	TSPct:         "True Shooting %",
	EFGPct:        "Effective FG %",
	OppEFGPct:     "Opponent Effective FG %",
	PossRatio:     "Possession Ratio",
	TORate:        "Turnover Rate",
	TwoPct:        "Two-Point %",
	ThreeRate:     "Three-Point Rate",
	ThreePct:      "Three-Point %",
	FTRate:        "Free-Throw Rate",
	FTPct:         "Free-Throw %",
	PtsTwoShare:   "Points From Two",
	PtsThreeShare: "Points From Three",
	PtsFTShare:    "Points From Free Throws",
	NonBlockedTwo: "Non-Blocked Two Rate",
	BlockRate:     "Block Rate",
	StealRate:     "Steal Rate",
	OppTORate:     "Opponent Turnover Rate",
	OppAstPerPoss: "Opponent Assists / Possession",
	OppThreeRate:  "Opponent Three-Point Rate",
	OppThreePct:   "Opponent Three-Point %",
	OppFTRate:     "Opponent Free-Throw Rate",
	ORBRate:       "Offensive Rebound Rate",
	DRBRate:       "Defensive Rebound Rate",
	ExtraChances:  "Extra Scoring Chances",
	Tempo:         "Tempo",
	Wins:          "Wins",
	Losses:        "Losses",
	SOS:           "Schedule Strength",
	WinPct:        "Win %",
	SchedulePctle: "Schedule Hardness Percentile",
}

func (m Metric) Label() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

// fraction reads rate-style values that were supplied as percents.
func fraction(v float64) float64 {
	if v > 1.0 {
		return v / 100
	}
	return v
}
