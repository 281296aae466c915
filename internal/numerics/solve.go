package numerics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LeastSquares returns the minimum-norm least-squares solution of a·x = b,
// discarding singular values at or below σmax·max(m, n)·MachineEpsilon.
// ok is false when the factorization fails or the result is not finite.
func LeastSquares(a mat.Matrix, b []float64) (x []float64, ok bool) {
	m, n := a.Dims()
	if m == 0 || n == 0 || len(b) != m {
		return nil, false
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, false
	}
	s := svd.Values(nil)
	if len(s) == 0 {
		return nil, false
	}
	cutoff := s[0] * float64(max(m, n)) * MachineEpsilon

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	x = make([]float64, n)
	for k, sk := range s {
		if sk <= cutoff {
			continue
		}
		var ub float64
		for i := 0; i < m; i++ {
			ub += u.At(i, k) * b[i]
		}
		coef := ub / sk
		for j := 0; j < n; j++ {
			x[j] += coef * v.At(j, k)
		}
	}
	return x, allFinite(x)
}

// Solve solves a square system by LU decomposition. A rectangular or
// exactly singular system falls back to LeastSquares.
func Solve(a mat.Matrix, b []float64) (x []float64, ok bool) {
	m, n := a.Dims()
	if m != n || len(b) != m || m == 0 {
		return LeastSquares(a, b)
	}
	var xv mat.VecDense
	err := xv.SolveVec(a, mat.NewVecDense(m, append([]float64(nil), b...)))
	if err != nil {
		if cond, isCond := err.(mat.Condition); !isCond || math.IsInf(float64(cond), 1) {
			return LeastSquares(a, b)
		}
	}
	x = make([]float64, n)
	for i := range x {
		x[i] = xv.AtVec(i)
	}
	if !allFinite(x) {
		return LeastSquares(a, b)
	}
	return x, true
}

func allFinite(xs []float64) bool {
	for _, v := range xs {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
