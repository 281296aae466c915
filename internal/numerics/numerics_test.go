package numerics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"plain", 0.123456, 0.1235},
		{"integral", 3, 3},
		{"negative zero folds", -0.00001, 0},
		{"negative", -1.23456, -1.2346},
		{"inf passes", math.Inf(1), math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.Signbit(got) && got == 0)
		})
	}
	assert.True(t, math.IsNaN(Quantize(math.NaN())))
}

func TestEps(t *testing.T) {
	assert.Equal(t, MachineEpsilon, Eps(1))
	assert.Equal(t, 2*MachineEpsilon, Eps(2))
	assert.Equal(t, Eps(3), Eps(-3))
}

func TestRankRules(t *testing.T) {
	full := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	deficient := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		2, 4, 6,
		0, 0, 1,
	})
	for name, rank := range map[string]func(mat.Matrix) int{
		"matlab":    MatlabRank,
		"relative":  RelativeRank,
		"frobenius": FrobeniusRank,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 3, rank(full))
			assert.Equal(t, 2, rank(deficient))
		})
	}
}

func TestRankWide(t *testing.T) {
	// 5 wrench rows of a rank-5 locking set.
	w := mat.NewDense(5, 6, []float64{
		0, 0, 1, 0, -1, 0,
		0, 0, 1, 1, 0, 0,
		0, 0, 1, 0, 0, 0,
		1, 0, 0, 0, 0, 0,
		0, 1, 0, 0, 0, 0,
	})
	assert.Equal(t, 5, MatlabRank(w))

	ns := NullSpace(w)
	require.NotNil(t, ns)
	r, c := ns.Dims()
	require.Equal(t, 6, r)
	require.Equal(t, 1, c)
	want := []float64{0, 0, 0, 0, 0, 1}
	for i, v := range want {
		assert.InDelta(t, v, ns.At(i, 0), 1e-12)
	}
}

func TestNullSpaceSignConvention(t *testing.T) {
	// Null space is spanned by (1, -2, 0)/√5; the largest entry must be positive.
	a := mat.NewDense(2, 3, []float64{
		2, 1, 0,
		0, 0, 1,
	})
	ns := NullSpace(a)
	require.NotNil(t, ns)
	assert.InDelta(t, -1/math.Sqrt(5), ns.At(0, 0), 1e-12)
	assert.InDelta(t, 2/math.Sqrt(5), ns.At(1, 0), 1e-12)
	assert.InDelta(t, 0, ns.At(2, 0), 1e-12)
}

func TestNullSpaceTrivial(t *testing.T) {
	assert.Nil(t, NullSpace(mat.NewDense(2, 2, []float64{1, 0, 0, 1})))
}

func TestAxisComplement(t *testing.T) {
	tests := []struct {
		name   string
		axis   mgl64.Vec3
		v1, v2 mgl64.Vec3
	}{
		{"z axis", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{"x axis", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"negative y", mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{"zero", mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1, v2 := AxisComplement(tt.axis)
			assert.True(t, v1.ApproxEqual(tt.v1), "v1 = %v", v1)
			assert.True(t, v2.ApproxEqual(tt.v2), "v2 = %v", v2)
		})
	}
}

func TestAxisComplementOrthonormal(t *testing.T) {
	a := mgl64.Vec3{1, 2, 3}.Normalize()
	v1, v2 := AxisComplement(a)
	assert.InDelta(t, 1, v1.Len(), 1e-12)
	assert.InDelta(t, 1, v2.Len(), 1e-12)
	assert.InDelta(t, 0, v1.Dot(v2), 1e-12)
	assert.InDelta(t, 0, v1.Dot(a), 1e-12)
	assert.InDelta(t, 0, v2.Dot(a), 1e-12)
	// Smallest |a_i| is x, so v1 starts from e_x and keeps a positive x.
	assert.Greater(t, v1[0], 0.0)
}

func TestSolveSquare(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 0, 0, 4})
	x, ok := Solve(a, []float64{2, 2})
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{1, 0.5}, x, 1e-12)
}

func TestSolveSingularFallsBack(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	x, ok := Solve(a, []float64{2, 2})
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{1, 1}, x, 1e-12)
}

func TestLeastSquaresMinimumNorm(t *testing.T) {
	// Underdetermined: x + y = 2 → minimum norm (1, 1).
	a := mat.NewDense(1, 2, []float64{1, 1})
	x, ok := LeastSquares(a, []float64{2})
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{1, 1}, x, 1e-12)

	_, ok = LeastSquares(a, []float64{1, 2})
	assert.False(t, ok)
}
