package analysis

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/user/kst_rating_go/internal/numerics"
)

// Quantized rounds every component of s to numerics.Quantum.
func (s ScrewMotion) Quantized() ScrewMotion {
	v := s.Vector()
	numerics.QuantizeAll(v[:])
	return v.Screw()
}

// ReconstructScrew returns the screw motion reciprocal to a rank-5 stack of
// wrench rows. Callers check the rank first.
func ReconstructScrew(rows []Wrench) (ScrewMotion, error) {
	a := wrenchMatrix(rows)
	if a == nil {
		return ScrewMotion{}, ErrNoReciprocalMotion
	}
	ns := numerics.NullSpace(a)
	if ns == nil {
		return ScrewMotion{}, fmt.Errorf("reconstruct from %d rows: %w", len(rows), ErrNoReciprocalMotion)
	}

	var x [6]float64
	for i := range x {
		x[i] = numerics.Quantize(ns.At(i, 0))
	}
	mu := mgl64.Vec3{x[0], x[1], x[2]}
	om := mgl64.Vec3{x[3], x[4], x[5]}

	var s ScrewMotion
	if om.Len() == 0 {
		s = ScrewMotion{
			Axis:   om,
			Moment: mu.Mul(1 / mu.Len()),
			Pitch:  math.Inf(1),
		}
	} else {
		oo := om.Dot(om)
		s = ScrewMotion{
			Axis:      om.Mul(1 / om.Len()),
			Moment:    mu,
			Reference: om.Cross(mu).Mul(1 / oo),
			Pitch:     mu.Dot(om) / oo,
		}
	}
	return s.Quantized(), nil
}

// SpecifiedScrew builds a screw motion from an [axis(3), reference(3), pitch]
// row. The axis is normalized; an infinite pitch makes the row a pure
// translation along the given direction. The row is used as given, without
// quantization.
func SpecifiedScrew(row []float64) (ScrewMotion, error) {
	if len(row) != 7 {
		return ScrewMotion{}, fmt.Errorf("got %d values: %w", len(row), ErrMotionWidth)
	}
	dir := mgl64.Vec3{row[0], row[1], row[2]}
	rho := mgl64.Vec3{row[3], row[4], row[5]}
	h := row[6]

	if !finite(h) {
		return ScrewMotion{Moment: unit(dir), Reference: rho, Pitch: h}, nil
	}
	omu := unit(dir)
	return ScrewMotion{
		Axis:      omu,
		Moment:    omu.Mul(h).Add(rho.Cross(omu)),
		Reference: rho,
		Pitch:     h,
	}, nil
}

// unit normalizes v, leaving the zero vector alone.
func unit(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

func finite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }
