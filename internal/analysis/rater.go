package analysis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	"github.com/user/kst_rating_go/internal/constraint"
	"github.com/user/kst_rating_go/internal/numerics"
)

// snapThreshold is the reaction magnitude below which a probe is treated as
// carrying no load before pooling.
const snapThreshold = 1e-4

// directionScale sets the grid (1e-5) the derived pin direction is rounded
// to before its zero test.
const directionScale = 1e5

var inf = math.Inf(1)

// rater rates every constraint of a set against one motion at a time.
type rater struct {
	set *constraint.Set
	ix  constraint.Index
}

// rateAll returns the forward and reverse resistance of every constraint, in
// global order, against motion s whose reciprocal wrench basis is pivot.
func (r *rater) rateAll(s ScrewMotion, pivot []Wrench, input Wrench) (forward, reverse []float64) {
	total := r.ix.Total()
	forward = make([]float64, total)
	reverse = make([]float64, total)
	for g := 1; g <= total; g++ {
		forward[g-1], reverse[g-1] = r.rate(g, s, pivot, input)
	}
	return forward, reverse
}

// rate returns the resistance of global constraint g. Pins resist both
// senses alike.
func (r *rater) rate(g int, s ScrewMotion, pivot []Wrench, input Wrench) (float64, float64) {
	kind, i, err := r.ix.Resolve(g)
	if err != nil {
		return inf, inf
	}
	switch kind {
	case constraint.KindPoint:
		return ratePoint(s, pivot, input, r.set.Points[i])
	case constraint.KindPin:
		v := ratePin(s, pivot, input, r.set.Pins[i])
		return v, v
	case constraint.KindLine:
		return rateLine(s, pivot, input, r.set.Lines[i])
	case constraint.KindPlane:
		p := r.set.Planes[i]
		if p.Shape == constraint.Rectangular {
			return rateRectPlane(s, pivot, input, p)
		}
		return rateCircPlane(s, pivot, input, p)
	}
	return inf, inf
}

// contactWrench is a unit normal reaction at pos with moment about rho.
func contactWrench(pos, normal, rho mgl64.Vec3) Wrench {
	return NewWrench(normal, pos.Sub(rho).Cross(normal))
}

func ratePoint(s ScrewMotion, pivot []Wrench, input Wrench, p constraint.Point) (float64, float64) {
	a := reactionMatrix(pivot, contactWrench(p.Position, p.Normal, s.Reference))
	if !matrixFinite(a) || !wrenchFinite(input) {
		return inf, inf
	}
	if numerics.FrobeniusRank(a) != 6 {
		return inf, inf
	}
	x, ok := numerics.Solve(a, input[:])
	if !ok {
		return inf, inf
	}
	v := x[len(x)-1]
	if v >= 0 {
		return v, inf
	}
	return inf, -v
}

func ratePin(s ScrewMotion, pivot []Wrench, input Wrench, p constraint.Pin) float64 {
	var action mgl64.Vec3
	if finite(s.Pitch) {
		if arm := p.Center.Sub(s.Reference); arm.Len() > 0 {
			action = s.Axis.Mul(s.Pitch).Add(s.Axis.Cross(arm))
		}
	} else {
		action = s.Moment
	}

	dir := p.Axis.Cross(action.Cross(p.Axis))
	for k := range dir {
		dir[k] = math.RoundToEven(dir[k]*directionScale) / directionScale
	}
	if dir.Len() == 0 {
		return inf
	}
	dir = dir.Mul(1 / dir.Len())

	v, ok := probe(pivot, input, contactWrench(p.Center, dir, s.Reference))
	if !ok {
		return inf
	}
	return math.Abs(v)
}

func rateLine(s ScrewMotion, pivot []Wrench, input Wrench, l constraint.Line) (float64, float64) {
	e1, e2 := l.Endpoints()
	return pool(probeAll(pivot, input, []mgl64.Vec3{e1, e2}, l.ConstraintDir, s.Reference), 1)
}

func rateRectPlane(s ScrewMotion, pivot []Wrench, input Wrench, p constraint.Plane) (float64, float64) {
	corners := p.Corners()
	return pool(probeAll(pivot, input, corners[:], p.Normal, s.Reference), 1)
}

// rateCircPlane probes the rim at the two points along the in-plane
// projection of the moment arm. Each probe stands for half the rim, hence
// the factor 2 when pooling.
func rateCircPlane(s ScrewMotion, pivot []Wrench, input Wrench, p constraint.Plane) (float64, float64) {
	e1, e2 := p.Midpoint, p.Midpoint
	if finite(s.Pitch) {
		var proj mgl64.Vec3
		if arm := p.Midpoint.Sub(s.Reference); arm.Len() > 0 {
			proj = p.Normal.Cross(arm.Cross(p.Normal))
		} else {
			proj = s.Axis.Cross(p.Normal)
		}
		proj = unit(proj)
		e1 = p.Midpoint.Add(proj.Mul(p.Radius))
		e2 = p.Midpoint.Sub(proj.Mul(p.Radius))
	}
	return pool(probeAll(pivot, input, []mgl64.Vec3{e1, e2}, p.Normal, s.Reference), 2)
}

// probe solves for the load carried by the probe wrench when it joins the
// pivot basis. ok is false when the stacked system is not of rank 6.
func probe(pivot []Wrench, input Wrench, w Wrench) (float64, bool) {
	if len(pivot)+1 < 6 {
		return 0, false
	}
	a := reactionMatrix(pivot, w)
	if !matrixFinite(a) || numerics.RelativeRank(a) != 6 {
		return 0, false
	}
	x, ok := numerics.LeastSquares(a, input[:])
	if !ok || len(x) == 0 {
		return 0, false
	}
	return x[len(x)-1], true
}

// probeAll probes a unit reaction along normal at every position; failed
// probes report +Inf.
func probeAll(pivot []Wrench, input Wrench, positions []mgl64.Vec3, normal, rho mgl64.Vec3) []float64 {
	out := make([]float64, len(positions))
	for k, pos := range positions {
		v, ok := probe(pivot, input, contactWrench(pos, normal, rho))
		if !ok {
			v = inf
		}
		out[k] = v
	}
	return out
}

// pool combines probe loads like springs in series, separately for the
// positive and the negative sense. Loads below snapThreshold carry nothing.
func pool(loads []float64, factor float64) (forward, reverse float64) {
	var posInv, negInv float64
	for _, m := range loads {
		if math.Abs(m) < snapThreshold {
			continue
		}
		switch {
		case m > 0:
			posInv += 1 / m
		case m < 0:
			negInv += 1 / -m
		}
	}
	return seriesResistance(posInv, factor), seriesResistance(negInv, factor)
}

func seriesResistance(inv, factor float64) float64 {
	r := 1 / (factor * inv)
	if !finite(r) {
		return inf
	}
	return r
}

func matrixFinite(a mat.Matrix) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !finite(a.At(i, j)) {
				return false
			}
		}
	}
	return true
}

func wrenchFinite(w Wrench) bool {
	for _, v := range w {
		if !finite(v) {
			return false
		}
	}
	return true
}
