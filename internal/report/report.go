package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/MikeSquared-Agency/Matchup/internal/bracket"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
)

const dash = "—"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func seedStr(seed *int) string {
	if seed == nil {
		return dash
	}
	return strconv.Itoa(*seed)
}

func signed(v float64) string {
	return fmt.Sprintf("%+.3f", v)
}

// PrintRankings prints the field ordered by mi_base, best first.
func PrintRankings(w io.Writer, teams []*scoring.Team) {
	table := newTable(w)
	table.Header("#", "TEAM", "SEED", "MI_BASE", "MIBS", "BREADTH", "RESUME", "TIER", "MARKS", "RATING")

	for i, t := range teams {
		table.Append(
			strconv.Itoa(i+1),
			t.Name,
			seedStr(t.Seed),
			fmt.Sprintf("%.3f", t.MIBase),
			fmt.Sprintf("%.3f", t.Core.Score),
			fmt.Sprintf("%.2f", t.Breadth.Bonus),
			signed(t.Resume.Adjustment),
			t.Resume.Tier,
			strconv.Itoa(len(t.ActiveMarks())),
			strconv.Itoa(t.Identity.Rating),
		)
	}
	table.Render()
}

// PrintTeam prints one team's full explanation: core traits, breadth,
// résumé, marks and identity.
func PrintTeam(w io.Writer, t *scoring.Team) {
	fmt.Fprintf(w, "\n%s  |  Seed: %s  |  mi_base: %.3f  |  Rating: %d\n\n",
		t.Name, seedStr(t.Seed), t.MIBase, t.Identity.Rating)

	fmt.Fprintf(w, "--- Core Traits (mibs %.3f) ---\n\n", t.Core.Score)
	core := newTable(w)
	core.Header("METRIC", "RAW", "MEAN", "SD", "Z", "WEIGHT", "WEIGHTED", "TIER")
	for _, row := range t.Core.Rows {
		raw := dash
		if row.Raw != nil {
			raw = fmt.Sprintf("%.3f", *row.Raw)
		}
		label := row.Label
		if row.Inverted {
			label += " (inv)"
		}
		core.Append(
			label,
			raw,
			fmt.Sprintf("%.3f", row.Mean),
			fmt.Sprintf("%.3f", row.StdDev),
			signed(row.Z),
			fmt.Sprintf("%.4f", row.Weight),
			signed(row.Weighted),
			row.Tier,
		)
	}
	core.Render()

	fmt.Fprintf(w, "\n--- Breadth (%d hits, +%.2f) ---\n\n", t.Breadth.TotalHits, t.Breadth.Bonus)
	breadth := newTable(w)
	breadth.Header("GROUP", "HITS", "OF", "BONUS")
	for _, g := range t.Breadth.Groups {
		breadth.Append(g.Name, strconv.Itoa(g.Hits), strconv.Itoa(len(g.Members)), fmt.Sprintf("%.2f", g.Bonus))
	}
	breadth.Render()

	fmt.Fprintf(w, "\n--- Résumé ---\n\n")
	if t.Resume.Available {
		fmt.Fprintf(w, "  Win z      : %+.3f\n", t.Resume.WinZ)
		fmt.Fprintf(w, "  Schedule z : %+.3f\n", t.Resume.ScheduleZ)
		fmt.Fprintf(w, "  Index      : %+.3f\n", t.Resume.Index)
	} else {
		fmt.Fprintln(w, "  Not available: record or schedule data missing.")
	}
	fmt.Fprintf(w, "  Tier       : %s (%+.2f)\n", t.Resume.Tier, t.Resume.Adjustment)

	fmt.Fprintf(w, "\n--- Marks ---\n\n")
	PrintMarks(w, t.Marks)

	id := t.Identity
	fmt.Fprintf(w, "\n--- Identity ---\n\n")
	fmt.Fprintf(w, "  Percentile : %.1f\n", id.Percentile)
	if id.Seeded {
		fmt.Fprintf(w, "  CIS        : %.1f\n", id.CIS)
		fmt.Fprintf(w, "  FAS        : %.1f\n", id.FAS)
		fmt.Fprintf(w, "  Alignment  : %.3f\n", id.Alignment)
	} else {
		fmt.Fprintln(w, "  Unseeded: CIS and FAS not computed.")
	}
}

// PrintMarks prints every rule outcome, raised or not.
func PrintMarks(w io.Writer, slots []scoring.MarkSlot) {
	table := newTable(w)
	table.Header("MARK", "STATUS", "SEVERITY", "VALUE", "REASON")
	for _, slot := range slots {
		status, sev, val, reason := "clear", dash, dash, ""
		switch {
		case !slot.Evaluated:
			status = "skipped"
		case slot.Mark != nil:
			status = "raised"
			sev = string(slot.Mark.Severity)
			val = fmt.Sprintf("%.3f", slot.Mark.Value)
			reason = slot.Mark.Reason
		}
		table.Append(slot.Category.Label(), status, sev, val, reason)
	}
	table.Render()
}

// PrintMatchup prints a resolved comparison with its category breakdown.
func PrintMatchup(w io.Writer, res *scoring.MatchupResult) {
	verdict := "Push"
	if !res.Push() {
		verdict = res.Winner
	}
	fmt.Fprintf(w, "\n%s vs %s  |  Verdict: %s  |  Margin: %+.3f  |  Lean: %s\n\n",
		res.A.Name, res.B.Name, verdict, res.Margin, res.Lean)

	sides := newTable(w)
	sides.Header("TEAM", "SEED", "MI_BASE", "INTERACTION", "RESUME", "MULT", "ADJ", "FINAL")
	for _, s := range []scoring.MatchupSide{res.A, res.B} {
		sides.Append(
			s.Name,
			seedStr(s.Seed),
			fmt.Sprintf("%.3f", s.Base),
			signed(s.Interaction),
			s.ResumeTier,
			fmt.Sprintf("%.2f", s.Multiplier),
			signed(s.Adjustment),
			fmt.Sprintf("%.3f", s.Final),
		)
	}
	sides.Render()

	fmt.Fprintf(w, "\n--- Interaction ---\n\n")
	cats := newTable(w)
	cats.Header("CATEGORY", "GAP_A", "GAP_B", "OPERATIVE", "A", "B", "FAVORS")
	for _, row := range res.Interaction.Rows() {
		favors := dash
		switch row.Favors {
		case scoring.OutcomeA:
			favors = res.A.Name
		case scoring.OutcomeB:
			favors = res.B.Name
		}
		cats.Append(
			row.Label,
			signed(row.GapA),
			signed(row.GapB),
			signed(row.Operative),
			signed(row.A),
			signed(row.B),
			favors,
		)
	}
	cats.Render()

	if res.Topology != nil {
		fmt.Fprintln(w)
		PrintTopology(w, *res.Topology)
	}
}

func roundList(rounds []bracket.Round) string {
	codes := make([]string, len(rounds))
	for i, r := range rounds {
		codes[i] = string(r)
	}
	return strings.Join(codes, ", ")
}

// PrintTopology prints where a seed pair can meet.
func PrintTopology(w io.Writer, t bracket.Topology) {
	fmt.Fprintf(w, "Seeds %d vs %d\n", t.SeedA, t.SeedB)
	if t.IntraRegion != nil {
		fmt.Fprintf(w, "  Same region : %s (%s)\n", *t.IntraRegion, t.IntraRegion.Label())
	} else {
		fmt.Fprintln(w, "  Same region : never")
	}
	fmt.Fprintf(w, "  Earliest    : %s (%s)\n", t.Earliest, t.Earliest.Label())
	fmt.Fprintf(w, "  Possible    : %s\n", roundList(t.Possible))
	if t.Query != nil {
		verdict := "no"
		if t.Allowed {
			verdict = "yes"
		}
		fmt.Fprintf(w, "  Meet in %-4s: %s\n", string(*t.Query), verdict)
	}
}

// PrintFieldStats prints the field snapshot in tracked-metric order.
func PrintFieldStats(w io.Writer, fs scoring.FieldStats) {
	table := newTable(w)
	table.Header("METRIC", "KEY", "MEAN", "SD", "N")
	for _, m := range scoring.TrackedMetrics {
		st, ok := fs.Lookup(m)
		if !ok {
			continue
		}
		table.Append(
			m.Label(),
			string(m),
			fmt.Sprintf("%.4f", st.Mean),
			fmt.Sprintf("%.4f", st.StdDev),
			strconv.Itoa(st.Count),
		)
	}
	table.Render()
}
