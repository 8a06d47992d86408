package scoring

// Baseline returns mi_base, the matchup-independent rating: core composite
// plus breadth bonus plus résumé adjustment.
func Baseline(core CoreResult, breadth BreadthResult, resume ResumeResult) float64 {
	return core.Score + breadth.Bonus + resume.Adjustment
}

// scoreTeam runs every per-team layer in dependency order against fs.
// Running it twice against the same snapshot yields identical results.
func scoreTeam(t *Team, fs FieldStats, cfg Config) {
	t.Core = ScoreCore(t, fs, cfg.Weights)
	t.Breadth = ScoreBreadth(t.Core.Z)
	t.Resume = ScoreResume(t, fs)
	t.Marks = EvaluateMarks(t, fs)
	t.MIBase = Baseline(t.Core, t.Breadth, t.Resume)
}
