package constraint

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedSet() *Set {
	return &Set{
		Points: []Point{{}, {}},
		Pins:   []Pin{{}},
		Lines:  []Line{{}, {}},
		Planes: []Plane{{Shape: Rectangular}},
	}
}

func TestIndexResolve(t *testing.T) {
	ix := NewIndex(mixedSet())
	require.Equal(t, 6, ix.Total())

	tests := []struct {
		global   int
		wantKind Kind
		wantPos  int
		wantRows int
	}{
		{1, KindPoint, 0, 1},
		{2, KindPoint, 1, 1},
		{3, KindPin, 0, 2},
		{4, KindLine, 0, 2},
		{5, KindLine, 1, 2},
		{6, KindPlane, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.wantKind.String(), func(t *testing.T) {
			k, pos, err := ix.Resolve(tt.global)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, k)
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.wantRows, ix.Rows(tt.global))
			assert.Equal(t, tt.global, ix.Global(k, pos))
		})
	}
}

func TestIndexResolveOutOfRange(t *testing.T) {
	ix := NewIndex(mixedSet())
	for _, g := range []int{0, -1, 7} {
		_, _, err := ix.Resolve(g)
		assert.ErrorIs(t, err, ErrOutOfRange, "global %d", g)
		assert.Zero(t, ix.Rows(g))
	}
}

func TestIndexSpans(t *testing.T) {
	ix := NewIndex(mixedSet())
	lo, hi := ix.Span(KindLine)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 5, hi)
	assert.Equal(t, 1, ix.Count(KindPin))
	assert.Equal(t, 0, NewIndex(&Set{}).Total())
}

func TestLineEndpointsAndPlaneCorners(t *testing.T) {
	for _, dir := range []mgl64.Vec3{{0, 1, 0}, {0, 4, 0}} {
		l := Line{Midpoint: mgl64.Vec3{1, 0, 0}, Direction: dir, Length: 4}
		e1, e2 := l.Endpoints()
		assert.Equal(t, mgl64.Vec3{1, 2, 0}, e1)
		assert.Equal(t, mgl64.Vec3{1, -2, 0}, e2)
	}
	e1, e2 := Line{Midpoint: mgl64.Vec3{1, 0, 0}, Length: 4}.Endpoints()
	assert.Equal(t, e1, e2)

	p := Plane{
		WidthDir: mgl64.Vec3{1, 0, 0}, Width: 2,
		HeightDir: mgl64.Vec3{0, 1, 0}, Height: 4,
	}
	c := p.Corners()
	assert.Equal(t, mgl64.Vec3{1, 2, 0}, c[0])
	assert.Equal(t, mgl64.Vec3{1, -2, 0}, c[1])
	assert.Equal(t, mgl64.Vec3{-1, 2, 0}, c[2])
	assert.Equal(t, mgl64.Vec3{-1, -2, 0}, c[3])
}

func TestSetClone(t *testing.T) {
	s := mixedSet()
	c := s.Clone()
	c.Points[0].Position = mgl64.Vec3{9, 9, 9}
	assert.Equal(t, mgl64.Vec3{}, s.Points[0].Position)
	assert.True(t, s.HasPlanes())
	assert.True(t, s.HasPinsOrLines())
}
