package analysis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MomentArm bounds the moment arm of a rotation about axis through rho: the
// largest distance of a sample point from the axis, capped at maxDist.
// It is 0 when there are no samples.
func MomentArm(axis, rho mgl64.Vec3, samples []mgl64.Vec3, maxDist float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var d float64
	for _, p := range samples {
		d = math.Max(d, axis.Cross(p.Sub(rho)).Len())
	}
	return math.Min(d, maxDist)
}

// InputWrench composes the unit test load for s and returns it with the
// moment arm used.
//
// Pure translations are loaded by a force along the motion. Otherwise the
// inverse pitch decides: when it reaches the moment arm the motion is
// rotation dominant and the load is a couple d·axis (with force h·d·axis,
// zero at h = 0); below it the load is a force along the axis with moment
// hw·axis.
func InputWrench(s ScrewMotion, samples []mgl64.Vec3, maxDist float64) (Wrench, float64) {
	h := s.Pitch
	if !finite(h) {
		return negate(NewWrench(s.Moment, mgl64.Vec3{})), math.Inf(1)
	}

	d := MomentArm(s.Axis, s.Reference, samples, maxDist)
	hw := math.Inf(1)
	if h != 0 {
		hw = 1 / h
	}

	var force, moment mgl64.Vec3
	if math.IsInf(hw, 0) || math.Abs(hw) >= d {
		force = s.Axis.Mul(h * d)
		moment = s.Axis.Mul(d)
	} else {
		force = s.Axis
		moment = s.Axis.Mul(hw)
	}
	return negate(NewWrench(force, moment)), d
}

func negate(w Wrench) Wrench {
	for i := range w {
		w[i] = -w[i]
	}
	return w
}
