package analysis

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/kst_rating_go/internal/constraint"
)

// lockingPoints returns five point contacts whose wrenches leave exactly a
// rotation about the z axis through the origin.
func lockingPoints() *constraint.Set {
	z := mgl64.Vec3{0, 0, 1}
	return &constraint.Set{Points: []constraint.Point{
		{Position: mgl64.Vec3{1, 0, 0}, Normal: z},
		{Position: mgl64.Vec3{0, 1, 0}, Normal: z},
		{Position: mgl64.Vec3{0, 0, 0}, Normal: z},
		{Position: mgl64.Vec3{0, 0, 0}, Normal: mgl64.Vec3{1, 0, 0}},
		{Position: mgl64.Vec3{0, 0, 0}, Normal: mgl64.Vec3{0, 1, 0}},
	}}
}

var zRotation = ScrewMotion{Axis: mgl64.Vec3{0, 0, 1}}

func TestBuildWrenchesPoints(t *testing.T) {
	cache := BuildWrenches(lockingPoints())
	require.Len(t, cache.Rows, 5)
	want := []Wrench{
		{0, 0, 1, 0, -1, 0},
		{0, 0, 1, 1, 0, 0},
		{0, 0, 1, 0, 0, 0},
		{1, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0},
	}
	for i, w := range want {
		require.Len(t, cache.Rows[i], 1)
		assert.Equal(t, w, cache.Rows[i][0], "row %d", i)
	}
	assert.Len(t, cache.SamplePoints, 5)
	assert.InDelta(t, math.Sqrt2, cache.MaxDistance, 1e-12)
}

func TestBuildWrenchesMixed(t *testing.T) {
	s := &constraint.Set{
		Pins: []constraint.Pin{{Center: mgl64.Vec3{0, 0, 1}, Axis: mgl64.Vec3{0, 0, 1}}},
		Lines: []constraint.Line{{
			Midpoint: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{1, 0, 0},
			ConstraintDir: mgl64.Vec3{0, 0, 1}, Length: 2,
		}},
		Planes: []constraint.Plane{
			{Midpoint: mgl64.Vec3{0, 0, 0}, Normal: mgl64.Vec3{0, 0, 1}, Shape: constraint.Circular, Radius: 1},
			{
				Midpoint: mgl64.Vec3{5, 0, 0}, Normal: mgl64.Vec3{0, 0, 1}, Shape: constraint.Rectangular,
				WidthDir: mgl64.Vec3{1, 0, 0}, Width: 2, HeightDir: mgl64.Vec3{0, 1, 0}, Height: 2,
			},
		},
	}
	cache := BuildWrenches(s)
	require.Len(t, cache.Rows, 4)

	// Pin at (0,0,1) about z: complement is e_x, e_y.
	assert.Equal(t, Wrench{1, 0, 0, 0, 1, 0}, cache.Rows[0][0])
	assert.Equal(t, Wrench{0, 1, 0, -1, 0, 0}, cache.Rows[0][1])

	// Line along x constrained along z.
	assert.Equal(t, Wrench{0, 0, 1, 0, 0, 0}, cache.Rows[1][0])
	assert.Equal(t, Wrench{0, 0, 0, 0, -1, 0}, cache.Rows[1][1])

	require.Len(t, cache.Rows[2], 3)
	assert.Equal(t, Wrench{0, 0, 0, 1, 0, 0}, cache.Rows[2][1])
	assert.Equal(t, Wrench{0, 0, 0, 0, 1, 0}, cache.Rows[2][2])

	// pin centre, two line ends, eight rim samples, four corners
	assert.Len(t, cache.SamplePoints, 1+2+8+4)
	assert.InDelta(t, mgl64.Vec3{6, 1, 0}.Sub(mgl64.Vec3{-1, 0, 0}).Len(), cache.MaxDistance, 1e-12)
}

func TestReconstructScrewRotation(t *testing.T) {
	cache := BuildWrenches(lockingPoints())
	s, err := ReconstructScrew(comboRows(cache, Combination{1, 2, 3, 4, 5}))
	require.NoError(t, err)
	assert.Equal(t, zRotation.Vector(), s.Vector())
	assert.False(t, s.IsTranslation())
}

func TestReconstructScrewTranslation(t *testing.T) {
	rows := []Wrench{
		{1, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 1},
	}
	s, err := ReconstructScrew(rows)
	require.NoError(t, err)
	assert.True(t, s.IsTranslation())
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, s.Moment)
	assert.Equal(t, mgl64.Vec3{}, s.Axis)
	assert.Equal(t, mgl64.Vec3{}, s.Reference)
}

func TestReconstructScrewFullRank(t *testing.T) {
	rows := make([]Wrench, 6)
	for i := range rows {
		rows[i][i] = 1
	}
	_, err := ReconstructScrew(rows)
	assert.ErrorIs(t, err, ErrNoReciprocalMotion)
}

func TestSpecifiedScrew(t *testing.T) {
	tests := []struct {
		name string
		row  []float64
		want ScrewMotion
	}{
		{
			name: "screw",
			row:  []float64{0, 0, 2, 1, 0, 0, 0.5},
			want: ScrewMotion{
				Axis:      mgl64.Vec3{0, 0, 1},
				Moment:    mgl64.Vec3{0, -1, 0.5},
				Reference: mgl64.Vec3{1, 0, 0},
				Pitch:     0.5,
			},
		},
		{
			name: "translation",
			row:  []float64{3, 0, 0, 1, 1, 1, math.Inf(1)},
			want: ScrewMotion{
				Moment:    mgl64.Vec3{1, 0, 0},
				Reference: mgl64.Vec3{1, 1, 1},
				Pitch:     math.Inf(1),
			},
		},
		{
			name: "zero axis",
			row:  []float64{0, 0, 0, 1, 2, 3, 0},
			want: ScrewMotion{Reference: mgl64.Vec3{1, 2, 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SpecifiedScrew(tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Vector(), got.Vector())
		})
	}

	_, err := SpecifiedScrew([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrMotionWidth)
}

func TestMotionVectorRoundTrip(t *testing.T) {
	s := ScrewMotion{
		Axis:      mgl64.Vec3{0, 0, 1},
		Moment:    mgl64.Vec3{1, 2, 3},
		Reference: mgl64.Vec3{4, 5, 6},
		Pitch:     0.25,
	}
	assert.Equal(t, s, s.Vector().Screw())

	r := s.Reversed()
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, r.Axis)
	assert.Equal(t, mgl64.Vec3{-1, -2, -3}, r.Moment)
	assert.Equal(t, s.Reference, r.Reference)
	assert.Equal(t, s.Pitch, r.Pitch)
}
