// Package analysis rates how well a set of contact constraints holds a rigid
// body. It enumerates candidate locking combinations, reconstructs the screw
// motion each one leaves free, rates every constraint against that motion
// and aggregates the resistances into the WTR, MRR, MTR and TOR metrics.
package analysis

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/user/kst_rating_go/internal/constraint"
	"github.com/user/kst_rating_go/internal/numerics"
)

// Analyze rates set and returns the assembly metrics.
func Analyze(set *constraint.Set, opts Options) (*RatingResults, error) {
	d, err := AnalyzeDetailed(set, opts)
	if err != nil {
		return nil, err
	}
	return &d.Rating, nil
}

// AnalyzeDetailed rates set and keeps the intermediates: unique motions,
// duplicate pointers, combinations and the cached wrench geometry.
func AnalyzeDetailed(set *constraint.Set, opts Options) (*DetailedResult, error) {
	log := opts.logger()
	sn := newSnapshot(set)
	log.WithFields(logrus.Fields{
		"constraints":  sn.ix.Total(),
		"combinations": len(sn.combos),
		"workers":      opts.workers(),
	}).Debug("starting analysis")

	outcomes, err := sn.sweep(opts.workers(), log)
	if err != nil {
		return nil, fmt.Errorf("combination sweep: %w", err)
	}

	table := newMotionTable(len(sn.combos))
	table.merge(sn, outcomes)
	log.WithFields(logrus.Fields{
		"rank5":  len(outcomes),
		"unique": len(table.motions),
	}).Debug("motions merged")

	res := &DetailedResult{
		Processed:     table.processed,
		DuplicateOf:   table.duplicateOf,
		Combinations:  sn.combos,
		Wrenches:      sn.cache,
		Set:           set,
		UniqueMotions: screws(table.motions),
	}

	if len(table.motions) == 0 {
		res.R = [][]float64{freeRow(sn.ix.Total())}
		res.Rating = Aggregate(res.R)
		res.Ri = res.Rating.Ri
		return res, nil
	}

	r, all := table.mirrored()
	res.R = r
	res.Ri = Reciprocal(r)
	res.AllMotions = screws(all)
	rows, kept := dedupe(r, all)
	res.Rating = Aggregate(rows)
	res.RatedMotions = screws(kept)
	log.WithFields(logrus.Fields{
		"WTR": res.Rating.WTR,
		"MRR": res.Rating.MRR,
		"MTR": res.Rating.MTR,
		"TOR": res.Rating.TOR,
	}).Debug("analysis done")
	return res, nil
}

// freeRow is the resistance row used when no combination locks the body:
// nothing resists, so every metric comes out 0.
func freeRow(total int) []float64 { return freeColumns(max(1, total)) }

// AnalyzeSpecifiedMotions rates set against caller-supplied motions given as
// [axis(3), reference(3), pitch] rows. Every row is checked before any work
// is done; a row of the wrong width fails with ErrMotionWidth.
func AnalyzeSpecifiedMotions(set *constraint.Set, motions [][]float64) (*SpecmotResult, error) {
	for i, row := range motions {
		if len(row) != 7 {
			return nil, fmt.Errorf("motion row %d has %d values: %w", i+1, len(row), ErrMotionWidth)
		}
	}

	ix := constraint.NewIndex(set)
	cache := BuildWrenches(set)
	rt := &rater{set: set, ix: ix}

	res := &SpecmotResult{}
	var forward, reverse [][]float64
	for _, row := range motions {
		s, err := SpecifiedScrew(row)
		if err != nil {
			return nil, err
		}
		pivot := reciprocalBasis(s)
		input, _ := InputWrench(s, cache.SamplePoints, cache.MaxDistance)
		f, r := rt.rateAll(s, pivot, input)
		forward = append(forward, f)
		reverse = append(reverse, r)
		res.Motions = append(res.Motions, s)
	}
	for _, row := range motions {
		rev := append([]float64{-row[0], -row[1], -row[2]}, row[3:]...)
		s, err := SpecifiedScrew(rev)
		if err != nil {
			return nil, err
		}
		res.Motions = append(res.Motions, s)
	}

	r := append(forward, reverse...)
	res.Ri = Reciprocal(r)
	res.Rating = Aggregate(r)
	return res, nil
}

// reciprocalBasis returns the wrenches reciprocal to s: the null space of
// its [moment, axis] row, one wrench per basis vector.
func reciprocalBasis(s ScrewMotion) []Wrench {
	row := NewWrench(s.Moment, s.Axis)
	ns := numerics.NullSpace(wrenchMatrix([]Wrench{row}))
	if ns == nil {
		return nil
	}
	_, k := ns.Dims()
	out := make([]Wrench, k)
	for j := 0; j < k; j++ {
		for i := 0; i < 6; i++ {
			out[j][i] = ns.At(i, j)
		}
	}
	return out
}

// RateMotionSet re-rates the constraints in subset (global 1-based numbers)
// against known motions. motions[i] must have been produced by combos[i].
// Each evaluated constraint is rated against the rows of its combination
// with its own rows removed, so perturbing one constraint does not need a
// new enumeration. Constraints outside a motion's combination stay +Inf.
//
// The result has 2·len(motions) rows, forward then reverse, and one column
// per subset entry. A nil cache is rebuilt from set.
func RateMotionSet(set *constraint.Set, cache *WrenchCache, combos []Combination, motions []ScrewMotion, subset []int) ([][]float64, error) {
	if len(combos) != len(motions) {
		return nil, fmt.Errorf("%d combinations for %d motions: %w", len(combos), len(motions), ErrShapeMismatch)
	}
	ix := constraint.NewIndex(set)
	for _, g := range subset {
		if _, _, err := ix.Resolve(g); err != nil {
			return nil, fmt.Errorf("rate motion set: %w", err)
		}
	}
	if cache == nil {
		cache = BuildWrenches(set)
	}
	rt := &rater{set: set, ix: ix}

	forward := make([][]float64, len(motions))
	reverse := make([][]float64, len(motions))
	for i, s := range motions {
		forward[i] = freeColumns(len(subset))
		reverse[i] = freeColumns(len(subset))

		input, _ := InputWrench(s, cache.SamplePoints, cache.MaxDistance)
		react := reactionRows(set, ix, combos[i], s.Reference)
		for j, g := range subset {
			lo, hi, ok := rowSpan(ix, combos[i], g)
			if !ok {
				continue
			}
			pivot := make([]Wrench, 0, len(react))
			pivot = append(pivot, react[:lo]...)
			pivot = append(pivot, react[hi:]...)
			if len(pivot) > 5 {
				pivot = pivot[:5]
			}
			m := wrenchMatrix(pivot)
			if m == nil || numerics.RelativeRank(m) != 5 {
				continue
			}
			forward[i][j], reverse[i][j] = rt.rate(g, s, pivot, input)
		}
	}
	return append(forward, reverse...), nil
}

// rowSpan locates the rows of constraint g inside the stacked rows of c.
func rowSpan(ix constraint.Index, c Combination, g int) (lo, hi int, ok bool) {
	for _, m := range c.Members() {
		n := ix.Rows(m)
		if m == g {
			return lo, lo + n, true
		}
		lo += n
	}
	return 0, 0, false
}

func freeColumns(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = inf
	}
	return row
}
