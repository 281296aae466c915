package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/floats"

	"github.com/user/kst_rating_go/internal/analysis"
	"github.com/user/kst_rating_go/internal/constraint"
)

// MotionRow is a motion with the total resistance it meets.
type MotionRow struct {
	Motion          analysis.ScrewMotion
	TotalResistance float64
}

// ConstraintStat describes how much one constraint contributes across all
// rated motions.
type ConstraintStat struct {
	Number           int    // global 1-based constraint number
	Label            string // kind and per-kind number, e.g. "pin 2"
	IndividualRating float64
	ActivePct        float64 // share of motions it resists at all
	BestPct          float64 // share of motions where it resists most
}

// Summary is what the text and PDF reports print for one analysis.
type Summary struct {
	Name   string
	Rating analysis.RatingResults
	LARWTR float64 // load amplification ratio at the weakest motion, 1/WTR
	LARMTR float64 // 1/MTR

	// FreeMotions lists the motions nothing resists. Locked is false when
	// no combination reached rank 5, in which case the list is empty.
	Locked      bool
	FreeMotions []analysis.ScrewMotion
	Weakest     *MotionRow
	Constraints []ConstraintStat

	TotalCombinations int
	Processed         int
	UniqueMotions     int
}

// Summarize condenses d. Constraint statistics and the weakest motion are
// only filled in when every motion meets some resistance.
func Summarize(name string, d *analysis.DetailedResult) *Summary {
	s := &Summary{
		Name:              name,
		Rating:            d.Rating,
		LARWTR:            loadAmplification(d.Rating.WTR),
		LARMTR:            loadAmplification(d.Rating.MTR),
		Locked:            len(d.RatedMotions) > 0,
		TotalCombinations: len(d.Combinations),
		Processed:         len(d.Processed),
		UniqueMotions:     len(d.UniqueMotions),
	}
	if !s.Locked {
		return s
	}

	sums := d.Rating.RowSums
	for i, sum := range sums {
		if sum == 0 {
			s.FreeMotions = append(s.FreeMotions, d.RatedMotions[i])
		}
	}
	if len(s.FreeMotions) > 0 {
		return s
	}

	w := floats.MinIdx(sums)
	s.Weakest = &MotionRow{Motion: d.RatedMotions[w], TotalResistance: sums[w]}
	s.Constraints = constraintStats(d.Set, d.Rating.Ri)
	return s
}

// SummarizeSpecified condenses the rating of caller-specified motions. There
// is no enumeration, so the combination counts stay 0.
func SummarizeSpecified(name string, set *constraint.Set, res *analysis.SpecmotResult) *Summary {
	return Summarize(name, &analysis.DetailedResult{
		Rating:       res.Rating,
		RatedMotions: res.Motions,
		Set:          set,
	})
}

// constraintStats works column-wise over the reciprocal table ri, one
// column per constraint.
func constraintStats(set *constraint.Set, ri [][]float64) []ConstraintStat {
	ix := constraint.NewIndex(set)
	n := ix.Total()
	nonZero := make([]float64, n)
	colSum := make([]float64, n)
	best := make([]float64, n)
	for _, row := range ri {
		for j, v := range row {
			if v != 0 {
				nonZero[j]++
				colSum[j] += v
			}
		}
		best[floats.MaxIdx(row)]++
	}

	motions := float64(len(ri))
	stats := make([]ConstraintStat, n)
	for j := range stats {
		k, i, _ := ix.Resolve(j + 1)
		st := ConstraintStat{
			Number:    j + 1,
			Label:     fmt.Sprintf("%s %d", k, i+1),
			ActivePct: nonZero[j] / motions * 100,
			BestPct:   best[j] / motions * 100,
		}
		if nonZero[j] > 0 {
			st.IndividualRating = colSum[j] / nonZero[j]
		}
		stats[j] = st
	}
	return stats
}

func loadAmplification(x float64) float64 {
	if x > 0 && !math.IsInf(x, 0) {
		return 1 / x
	}
	return math.Inf(1)
}

// WriteSummary prints s as styled text. Styling is dropped when w is not a
// terminal.
func WriteSummary(w io.Writer, s *Summary) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	heading := r.NewStyle().Bold(true).Underline(true)
	warn := r.NewStyle().Foreground(lipgloss.Color("#E74C3C"))

	var b strings.Builder
	name := "Constraint rating"
	if s.Name != "" {
		name += ": " + s.Name
	}
	fmt.Fprintln(&b, title.Render(name))
	fmt.Fprintf(&b, "Weakest Total Resistance (WTR): %.4f (LAR: %.3f)\n", s.Rating.WTR, s.LARWTR)
	fmt.Fprintf(&b, "Mean Redundancy Ratio (MRR):    %.4f\n", s.Rating.MRR)
	fmt.Fprintf(&b, "Mean Total Resistance (MTR):    %.4f (LAR: %.3f)\n", s.Rating.MTR, s.LARMTR)
	fmt.Fprintf(&b, "Trade-Off Ratio (TOR):          %.4f\n\n", s.Rating.TOR)

	switch {
	case !s.Locked:
		fmt.Fprintln(&b, warn.Render("No combination of constraints locks the body; every motion is free."))
	case len(s.FreeMotions) > 0:
		fmt.Fprintln(&b, heading.Render("Unconstrained motion"))
		rows := make([]MotionRow, len(s.FreeMotions))
		for i, m := range s.FreeMotions {
			rows[i] = MotionRow{Motion: m}
		}
		fmt.Fprintln(&b, motionTable(r, rows))
	default:
		fmt.Fprintln(&b, "There is no unconstrained motion.")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, heading.Render("Weakest constrained motion"))
		fmt.Fprintln(&b, motionTable(r, []MotionRow{*s.Weakest}))
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, heading.Render("Constraints"))
		fmt.Fprintln(&b, constraintTable(r, s.Constraints))
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Total possible combinations:    %d\n", s.TotalCombinations)
	fmt.Fprintf(&b, "Independent combinations used:  %d\n", s.Processed)
	fmt.Fprintf(&b, "Unique screw motions found:     %d\n", s.UniqueMotions)

	_, err := io.WriteString(w, b.String())
	return err
}

var motionHeaders = []string{
	"Om(x)", "Om(y)", "Om(z)", "Mu(x)", "Mu(y)", "Mu(z)",
	"Rho(x)", "Rho(y)", "Rho(z)", "Pitch", "Total Resistance",
}

// motionCells formats one motion the way both reports print it.
func motionCells(m MotionRow) []string {
	v := m.Motion.Vector()
	cells := make([]string, 0, len(motionHeaders))
	for _, x := range v[:9] {
		cells = append(cells, fmt.Sprintf("%.4f", x))
	}
	return append(cells, fmt.Sprintf("%.4f", v[9]), fmt.Sprintf("%.4f", m.TotalResistance))
}

func motionTable(r *lipgloss.Renderer, rows []MotionRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle()).
		Headers(motionHeaders...).
		StyleFunc(cellStyle(r))
	for _, m := range rows {
		t.Row(motionCells(m)...)
	}
	return t.String()
}

var constraintHeaders = []string{"CP#", "Constraint", "Individual Rating", "Active %", "Best Resistance %"}

func constraintCells(c ConstraintStat) []string {
	return []string{
		fmt.Sprintf("%d", c.Number),
		c.Label,
		fmt.Sprintf("%.4f", c.IndividualRating),
		fmt.Sprintf("%.1f%%", c.ActivePct),
		fmt.Sprintf("%.1f%%", c.BestPct),
	}
}

func constraintTable(r *lipgloss.Renderer, stats []ConstraintStat) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle()).
		Headers(constraintHeaders...).
		StyleFunc(cellStyle(r))
	for _, c := range stats {
		t.Row(constraintCells(c)...)
	}
	return t.String()
}

func cellStyle(r *lipgloss.Renderer) table.StyleFunc {
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	return func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		return cell
	}
}
