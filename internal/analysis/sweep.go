package analysis

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/user/kst_rating_go/internal/constraint"
	"github.com/user/kst_rating_go/internal/numerics"
)

// snapshot is the read-only state shared by every worker of one sweep.
type snapshot struct {
	set    *constraint.Set
	ix     constraint.Index
	cache  *WrenchCache
	combos []Combination
	rater  *rater
}

func newSnapshot(set *constraint.Set) *snapshot {
	ix := constraint.NewIndex(set)
	return &snapshot{
		set:    set,
		ix:     ix,
		cache:  BuildWrenches(set),
		combos: Enumerate(set),
		rater:  &rater{set: set, ix: ix},
	}
}

// outcome is the result of one rank-5 combination. forward and reverse are
// nil when the worker skipped rating a motion it had already rated.
type outcome struct {
	index   int
	key     MotionVector
	forward []float64
	reverse []float64
}

// rateMotion rates every constraint against s, using the members of c
// re-referenced to the motion's axis as the reciprocal basis.
func (sn *snapshot) rateMotion(c Combination, s ScrewMotion) (forward, reverse []float64) {
	input, _ := InputWrench(s, sn.cache.SamplePoints, sn.cache.MaxDistance)
	pivot := reactionRows(sn.set, sn.ix, c, s.Reference)
	return sn.rater.rateAll(s, pivot, input)
}

// processChunk reconstructs and rates combinations [lo, lo+len(chunk)).
// A motion already rated earlier in the same chunk is not rated again; the
// merge keeps only the first occurrence anyway.
func (sn *snapshot) processChunk(lo int, chunk []Combination) ([]outcome, error) {
	var out []outcome
	seen := make(map[MotionVector]struct{})
	for j, c := range chunk {
		rows := comboRows(sn.cache, c)
		a := wrenchMatrix(rows)
		if a == nil || numerics.MatlabRank(a) != 5 {
			continue
		}
		s, err := ReconstructScrew(rows)
		if err != nil {
			return nil, fmt.Errorf("combination %d %v: %w", lo+j+1, c.Members(), err)
		}
		o := outcome{index: lo + j, key: s.Vector()}
		if _, dup := seen[o.key]; !dup {
			seen[o.key] = struct{}{}
			o.forward, o.reverse = sn.rateMotion(c, s)
		}
		out = append(out, o)
	}
	return out, nil
}

// sweep runs processChunk over static contiguous chunks, one goroutine per
// chunk, and returns every outcome ordered by combination index.
func (sn *snapshot) sweep(workers int, log logrus.FieldLogger) ([]outcome, error) {
	n := len(sn.combos)
	if n == 0 {
		return nil, nil
	}
	workers = min(max(workers, 1), n)
	chunk := (n + workers - 1) / workers

	parts := make([][]outcome, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			continue
		}
		log.WithFields(logrus.Fields{"chunk": w, "from": lo + 1, "to": hi}).Debug("dispatching combinations")
		g.Go(func() error {
			out, err := sn.processChunk(lo, sn.combos[lo:hi])
			parts[w] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []outcome
	for _, p := range parts {
		all = append(all, p...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].index < all[j].index })
	return all, nil
}
