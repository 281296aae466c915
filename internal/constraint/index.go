package constraint

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for a global constraint number outside the set.
var ErrOutOfRange = errors.New("constraint number out of range")

// Index resolves global 1-based constraint numbers to a kind and a position
// within that kind's slice. It is the only place the per-kind offsets live.
type Index struct {
	// offsets[k] is the number of constraints preceding kind k.
	offsets [5]int
}

// NewIndex builds the prefix-sum offset table for s.
func NewIndex(s *Set) Index {
	var ix Index
	counts := [4]int{len(s.Points), len(s.Pins), len(s.Lines), len(s.Planes)}
	for k, n := range counts {
		ix.offsets[k+1] = ix.offsets[k] + n
	}
	return ix
}

// Total is the number of constraints covered by the index.
func (ix Index) Total() int { return ix.offsets[4] }

// Count returns how many constraints of kind k exist.
func (ix Index) Count(k Kind) int { return ix.offsets[k+1] - ix.offsets[k] }

// Span returns the 0-based half-open column range [lo, hi) occupied by kind k.
func (ix Index) Span(k Kind) (lo, hi int) { return ix.offsets[k], ix.offsets[k+1] }

// Resolve maps a global 1-based constraint number to its kind and 0-based
// position within that kind.
func (ix Index) Resolve(global int) (Kind, int, error) {
	if global < 1 || global > ix.Total() {
		return 0, 0, fmt.Errorf("constraint #%d not in [1, %d]: %w", global, ix.Total(), ErrOutOfRange)
	}
	col := global - 1
	for k := KindPoint; k <= KindPlane; k++ {
		if col < ix.offsets[k+1] {
			return k, col - ix.offsets[k], nil
		}
	}
	return 0, 0, fmt.Errorf("constraint #%d unresolved", global)
}

// Global returns the 1-based global number of the i-th constraint of kind k.
func (ix Index) Global(k Kind, i int) int { return ix.offsets[k] + i + 1 }

// Rows returns the number of wrench rows contributed by constraint #global,
// or 0 when the number is out of range.
func (ix Index) Rows(global int) int {
	k, _, err := ix.Resolve(global)
	if err != nil {
		return 0
	}
	return k.Rows()
}
