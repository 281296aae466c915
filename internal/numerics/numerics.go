// Package numerics holds the reference linear-algebra routines the rating
// engine depends on. Rank tolerances and null-space sign rules are fixed here
// so the decomposition underneath can change without moving any rank or
// sign decision.
package numerics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// MachineEpsilon is the float64 unit roundoff used by the relative tolerances.
const MachineEpsilon = 2.220446049250313e-16

// QuantumDigits is the number of decimal places motions and reciprocal
// resistances are rounded to. Two screw motions that agree to this many
// places are the same motion.
const QuantumDigits = 4

// Quantum is 10^-QuantumDigits.
const Quantum = 1e-4

var quantumScale = math.Pow10(QuantumDigits)

// Quantize rounds x to QuantumDigits decimals, ties to even. Infinities and
// NaN pass through.
func Quantize(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	q := math.RoundToEven(x*quantumScale) / quantumScale
	if q == 0 {
		return 0 // fold -0
	}
	return q
}

// QuantizeAll rounds every element of xs in place and returns xs.
func QuantizeAll(xs []float64) []float64 {
	for i, x := range xs {
		xs[i] = Quantize(x)
	}
	return xs
}

// Eps returns the spacing between |x| and the next larger float64, the
// MATLAB eps(x).
func Eps(x float64) float64 {
	x = math.Abs(x)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return math.NaN()
	}
	return math.Nextafter(x, math.Inf(1)) - x
}

// SingularValues returns the singular values of a in descending order, or
// nil when the factorization fails or a is empty.
func SingularValues(a mat.Matrix) []float64 {
	r, c := a.Dims()
	if r == 0 || c == 0 {
		return nil
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return nil
	}
	return svd.Values(nil)
}

func countAbove(s []float64, tol float64) int {
	n := 0
	for _, v := range s {
		if v > tol {
			n++
		}
	}
	return n
}

// MatlabTolerance is max(m, n)·eps(σmax).
func MatlabTolerance(m, n int, sigmaMax float64) float64 {
	return float64(max(m, n)) * Eps(sigmaMax)
}

// MatlabRank counts singular values above MatlabTolerance. It decides which
// combinations form a locking set.
func MatlabRank(a mat.Matrix) int {
	s := SingularValues(a)
	if len(s) == 0 {
		return 0
	}
	m, n := a.Dims()
	return countAbove(s, MatlabTolerance(m, n, s[0]))
}

// RelativeRank counts singular values above σmax·max(m, n)·MachineEpsilon.
// Pin, line and plane ratings gate their solves on it.
func RelativeRank(a mat.Matrix) int {
	s := SingularValues(a)
	if len(s) == 0 {
		return 0
	}
	m, n := a.Dims()
	return countAbove(s, s[0]*float64(max(m, n))*MachineEpsilon)
}

// FrobeniusRank counts singular values above
// max(m, n)·MachineEpsilon·max(‖a‖F, 1). Point ratings gate their solve on it.
func FrobeniusRank(a mat.Matrix) int {
	s := SingularValues(a)
	if len(s) == 0 {
		return 0
	}
	m, n := a.Dims()
	tol := float64(max(m, n)) * MachineEpsilon * math.Max(mat.Norm(a, 2), 1)
	return countAbove(s, tol)
}

// NullSpace returns an orthonormal basis of the null space of a as the
// columns of an n×k matrix, or nil when the null space is trivial. Each
// right singular vector is flipped so that its largest-magnitude entry is
// positive before the null columns are taken.
func NullSpace(a mat.Matrix) *mat.Dense {
	m, n := a.Dims()
	if n == 0 {
		return nil
	}
	if m == 0 {
		return eye(n)
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFull) {
		return nil
	}
	s := svd.Values(nil)
	r := 0
	if len(s) > 0 {
		r = countAbove(s, MatlabTolerance(m, n, s[0]))
	}
	if r >= n {
		return nil
	}
	var v mat.Dense
	svd.VTo(&v)
	for col := 0; col < n; col++ {
		best, bestAbs := 0, -1.0
		for row := 0; row < n; row++ {
			if x := math.Abs(v.At(row, col)); x > bestAbs {
				best, bestAbs = row, x
			}
		}
		if v.At(best, col) < 0 {
			for row := 0; row < n; row++ {
				v.Set(row, col, -v.At(row, col))
			}
		}
	}
	out := mat.NewDense(n, n-r, nil)
	out.Copy(v.Slice(0, n, r, n))
	return out
}

func eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

// AxisComplement returns two orthonormal vectors spanning the plane
// orthogonal to axis. Coordinate axes are taken in ascending order of
// |axis_i| (ties keep index order) and orthogonalized by modified
// Gram-Schmidt, which fixes both the ordering and the signs.
func AxisComplement(axis mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	l := axis.Len()
	if l == 0 {
		return mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}
	}
	a := axis.Mul(1 / l)
	order := []int{0, 1, 2}
	sort.SliceStable(order, func(i, j int) bool {
		return math.Abs(a[order[i]]) < math.Abs(a[order[j]])
	})

	var v1 mgl64.Vec3
	v1[order[0]] = 1
	v1 = v1.Sub(a.Mul(v1.Dot(a)))
	v1 = v1.Mul(1 / v1.Len())

	var v2 mgl64.Vec3
	v2[order[1]] = 1
	v2 = v2.Sub(a.Mul(v2.Dot(a)))
	v2 = v2.Sub(v1.Mul(v2.Dot(v1)))
	v2 = v2.Mul(1 / v2.Len())
	return v1, v2
}
