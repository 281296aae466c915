package analysis

import (
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/kst_rating_go/internal/constraint"
)

func nPoints(n int) *constraint.Set {
	s := &constraint.Set{}
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, constraint.Point{
			Position: mgl64.Vec3{float64(i), 0, 0},
			Normal:   mgl64.Vec3{0, 0, 1},
		})
	}
	return s
}

func TestEnumeratePointsOnly(t *testing.T) {
	for _, n := range []int{4, 5, 7, 9} {
		combos := Enumerate(nPoints(n))
		require.Len(t, combos, Binomial(n, 5), "n=%d", n)
		for _, c := range combos {
			assert.Len(t, c.Members(), 5)
		}
		assert.True(t, sort.SliceIsSorted(combos, func(i, j int) bool {
			return lessCombination(combos[i], combos[j])
		}))
	}
}

func TestEnumerateWithPlanes(t *testing.T) {
	s := &constraint.Set{
		Points: []constraint.Point{{Normal: mgl64.Vec3{0, 0, 1}}, {Normal: mgl64.Vec3{0, 0, 1}}},
		Planes: []constraint.Plane{{Normal: mgl64.Vec3{0, 0, 1}, Shape: constraint.Circular, Radius: 1}},
	}
	want := []Combination{
		{1, 2, 0, 0, 0},
		{1, 2, 3, 0, 0},
		{1, 3, 0, 0, 0},
		{2, 3, 0, 0, 0},
	}
	assert.Equal(t, want, Enumerate(s))
}

func TestEnumerateWithPins(t *testing.T) {
	s := nPoints(3)
	s.Pins = []constraint.Pin{{Axis: mgl64.Vec3{0, 0, 1}}}
	combos := Enumerate(s)
	require.Len(t, combos, Binomial(4, 3)+Binomial(4, 4))
	assert.Equal(t, Combination{1, 2, 3, 0, 0}, combos[0])
	assert.Equal(t, Combination{1, 2, 3, 4, 0}, combos[1])
	assert.Equal(t, Combination{2, 3, 4, 0, 0}, combos[len(combos)-1])
}

func TestEnumerateTooFew(t *testing.T) {
	assert.Empty(t, Enumerate(nPoints(3)))
	assert.Empty(t, Enumerate(&constraint.Set{}))
}

func TestBinomial(t *testing.T) {
	tests := []struct{ n, k, want int }{
		{5, 5, 1},
		{6, 5, 6},
		{10, 5, 252},
		{20, 5, 15504},
		{3, 5, 0},
		{4, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Binomial(tt.n, tt.k), "C(%d,%d)", tt.n, tt.k)
	}
}
