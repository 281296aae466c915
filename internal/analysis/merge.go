package analysis

// motionTable accumulates unique motions in combination order.
type motionTable struct {
	firstSeen   map[MotionVector]int
	motions     []MotionVector
	forward     [][]float64
	reverse     [][]float64
	processed   []ProcessedCombination
	duplicateOf []int
}

func newMotionTable(nCombos int) *motionTable {
	return &motionTable{
		firstSeen:   make(map[MotionVector]int),
		duplicateOf: make([]int, nCombos),
	}
}

// merge folds the sorted outcomes of a sweep into t. The first occurrence of
// every motion keeps its rows; later ones only record which motion they
// repeat. The lowest-index occurrence of a motion is always rated, since a
// worker only skips a motion it already rated earlier in its own chunk.
func (t *motionTable) merge(sn *snapshot, outcomes []outcome) {
	for _, o := range outcomes {
		if k, ok := t.firstSeen[o.key]; ok {
			t.duplicateOf[o.index] = k + 1
			continue
		}
		t.firstSeen[o.key] = len(t.motions)
		t.motions = append(t.motions, o.key)
		t.forward = append(t.forward, o.forward)
		t.reverse = append(t.reverse, o.reverse)
		t.processed = append(t.processed, ProcessedCombination{
			Index:       o.index + 1,
			Combination: sn.combos[o.index],
		})
	}
}

// mirrored returns the full resistance table, forward rows then reverse
// rows, with the matching motions: unique motions then their reversals.
func (t *motionTable) mirrored() ([][]float64, []MotionVector) {
	r := make([][]float64, 0, 2*len(t.motions))
	r = append(r, t.forward...)
	r = append(r, t.reverse...)

	all := make([]MotionVector, 0, 2*len(t.motions))
	all = append(all, t.motions...)
	for _, m := range t.motions {
		all = append(all, m.Screw().Reversed().Quantized().Vector())
	}
	return r, all
}

// dedupe drops rows whose motion already appeared earlier in motions and
// returns the kept rows with their motions.
func dedupe(r [][]float64, motions []MotionVector) ([][]float64, []MotionVector) {
	seen := make(map[MotionVector]struct{}, len(motions))
	out := make([][]float64, 0, len(r))
	kept := make([]MotionVector, 0, len(motions))
	for i, m := range motions {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, r[i])
		kept = append(kept, m)
	}
	return out, kept
}

func screws(vs []MotionVector) []ScrewMotion {
	out := make([]ScrewMotion, len(vs))
	for i, v := range vs {
		out[i] = v.Screw()
	}
	return out
}
