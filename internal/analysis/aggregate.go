package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/user/kst_rating_go/internal/numerics"
)

// maxRowFloor keeps the redundancy ratio finite for rows with no resistance.
const maxRowFloor = 1e-12

// Reciprocal returns quantized 1/R elementwise, 0 where R is infinite or the
// quotient is not finite.
func Reciprocal(r [][]float64) [][]float64 {
	ri := make([][]float64, len(r))
	for i, row := range r {
		ri[i] = make([]float64, len(row))
		for j, v := range row {
			q := 1 / v
			if !finite(q) {
				q = 0
			}
			ri[i][j] = numerics.Quantize(q)
		}
	}
	return ri
}

// Aggregate computes the four assembly metrics from the resistance table r.
// A motion whose reciprocal resistances sum to exactly 0 is unconstrained;
// the assembly is then free and every metric is 0.
func Aggregate(r [][]float64) RatingResults {
	res := RatingResults{R: r, Ri: Reciprocal(r)}
	if len(r) == 0 {
		return res
	}

	res.RowSums = make([]float64, len(res.Ri))
	ratios := make([]float64, len(res.Ri))
	for i, row := range res.Ri {
		res.RowSums[i] = floats.Sum(row)
		maxRow := maxRowFloor
		if len(row) > 0 {
			maxRow = math.Max(floats.Max(row), maxRowFloor)
		}
		ratios[i] = res.RowSums[i] / maxRow
	}

	wtr := floats.Min(res.RowSums)
	if wtr == 0 {
		return res
	}
	res.WTR = wtr
	res.MRR = stat.Mean(ratios, nil)
	res.MTR = stat.Mean(res.RowSums, nil)
	if res.MRR != 0 {
		res.TOR = res.MTR / res.MRR
	} else {
		res.TOR = math.Inf(1)
	}
	return res
}
