package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name               string
		r                  [][]float64
		wtr, mrr, mtr, tor float64
		rowSums            []float64
	}{
		{
			name:    "two motions two constraints",
			r:       [][]float64{{1, 2}, {2, 1}},
			wtr:     1.5,
			mrr:     1.5,
			mtr:     1.5,
			tor:     1,
			rowSums: []float64{1.5, 1.5},
		},
		{
			name:    "uneven rows",
			r:       [][]float64{{1, inf}, {0.5, 0.5}},
			wtr:     1,
			mrr:     1.5,
			mtr:     2.5,
			tor:     2.5 / 1.5,
			rowSums: []float64{1, 4},
		},
		{
			name:    "free motion",
			r:       [][]float64{{inf, inf}, {inf, inf}},
			rowSums: []float64{0, 0},
		},
		{
			name:    "one free row zeroes everything",
			r:       [][]float64{{1, 1}, {inf, inf}},
			rowSums: []float64{2, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.r)
			assert.Equal(t, tt.wtr, got.WTR)
			assert.Equal(t, tt.mrr, got.MRR)
			assert.Equal(t, tt.mtr, got.MTR)
			assert.InDelta(t, tt.tor, got.TOR, 1e-12)
			assert.Equal(t, tt.rowSums, got.RowSums)
		})
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	assert.Zero(t, got.WTR)
	assert.Zero(t, got.TOR)
	assert.Empty(t, got.Ri)
}

func TestReciprocal(t *testing.T) {
	ri := Reciprocal([][]float64{{inf, 3, 0, math.NaN(), -4}})
	assert.Equal(t, [][]float64{{0, 0.3333, 0, 0, -0.25}}, ri)
}

func TestFreeAssemblyRi(t *testing.T) {
	got := Aggregate([][]float64{freeRow(3)})
	assert.Equal(t, [][]float64{{0, 0, 0}}, got.Ri)
	assert.True(t, got.Free())
}
