package analysis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	"github.com/user/kst_rating_go/internal/constraint"
	"github.com/user/kst_rating_go/internal/numerics"
)

// BuildWrenches computes the wrench rows of every constraint, referenced to
// the origin, together with the sample points that bound moment arms.
func BuildWrenches(set *constraint.Set) *WrenchCache {
	ix := constraint.NewIndex(set)
	cache := &WrenchCache{Rows: make([][]Wrench, ix.Total())}
	for g := 1; g <= ix.Total(); g++ {
		cache.Rows[g-1] = constraintRows(set, ix, g, mgl64.Vec3{})
	}

	for _, p := range set.Points {
		cache.SamplePoints = append(cache.SamplePoints, p.Position)
	}
	for _, p := range set.Pins {
		cache.SamplePoints = append(cache.SamplePoints, p.Center)
	}
	for _, l := range set.Lines {
		e1, e2 := l.Endpoints()
		cache.SamplePoints = append(cache.SamplePoints, e1, e2)
	}
	for _, p := range set.Planes {
		cache.SamplePoints = append(cache.SamplePoints, planeSamples(p)...)
	}
	cache.MaxDistance = maxPairwiseDistance(cache.SamplePoints)
	return cache
}

// constraintRows returns the wrench rows of global constraint g with moments
// taken about rho. The second line row and the two plane translation rows
// are free vectors and do not depend on rho.
func constraintRows(set *constraint.Set, ix constraint.Index, g int, rho mgl64.Vec3) []Wrench {
	kind, i, err := ix.Resolve(g)
	if err != nil {
		return nil
	}
	switch kind {
	case constraint.KindPoint:
		p := set.Points[i]
		return []Wrench{NewWrench(p.Normal, p.Position.Sub(rho).Cross(p.Normal))}
	case constraint.KindPin:
		p := set.Pins[i]
		arm := p.Center.Sub(rho)
		e1, e2 := numerics.AxisComplement(p.Axis)
		return []Wrench{
			NewWrench(e1, arm.Cross(e1)),
			NewWrench(e2, arm.Cross(e2)),
		}
	case constraint.KindLine:
		l := set.Lines[i]
		return []Wrench{
			NewWrench(l.ConstraintDir, l.Midpoint.Sub(rho).Cross(l.ConstraintDir)),
			NewWrench(mgl64.Vec3{}, l.Direction.Cross(l.ConstraintDir)),
		}
	case constraint.KindPlane:
		p := set.Planes[i]
		e1, e2 := numerics.AxisComplement(p.Normal)
		return []Wrench{
			NewWrench(p.Normal, p.Midpoint.Sub(rho).Cross(p.Normal)),
			NewWrench(mgl64.Vec3{}, e1),
			NewWrench(mgl64.Vec3{}, e2),
		}
	}
	return nil
}

// comboRows stacks the cached rows of every member of c.
func comboRows(cache *WrenchCache, c Combination) []Wrench {
	var rows []Wrench
	for _, g := range c.Members() {
		if g-1 < len(cache.Rows) {
			rows = append(rows, cache.Rows[g-1]...)
		}
	}
	return rows
}

// reactionRows re-references the rows of every member of c to rho.
func reactionRows(set *constraint.Set, ix constraint.Index, c Combination, rho mgl64.Vec3) []Wrench {
	var rows []Wrench
	for _, g := range c.Members() {
		rows = append(rows, constraintRows(set, ix, g, rho)...)
	}
	return rows
}

// wrenchMatrix lays rows out as a len(rows)×6 matrix.
func wrenchMatrix(rows []Wrench) *mat.Dense {
	if len(rows) == 0 {
		return nil
	}
	data := make([]float64, 0, 6*len(rows))
	for _, w := range rows {
		data = append(data, w[:]...)
	}
	return mat.NewDense(len(rows), 6, data)
}

// reactionMatrix lays the pivot rows plus probe out column-wise: a 6×(k+1)
// matrix whose last column is the probe wrench.
func reactionMatrix(pivot []Wrench, probe Wrench) *mat.Dense {
	cols := len(pivot) + 1
	a := mat.NewDense(6, cols, nil)
	for j, w := range pivot {
		for i := 0; i < 6; i++ {
			a.Set(i, j, w[i])
		}
	}
	for i := 0; i < 6; i++ {
		a.Set(i, cols-1, probe[i])
	}
	return a
}

func planeSamples(p constraint.Plane) []mgl64.Vec3 {
	if p.Shape == constraint.Circular {
		e1, e2 := numerics.AxisComplement(p.Normal)
		r := p.Radius
		c := r * math.Cos(math.Pi/4)
		return []mgl64.Vec3{
			p.Midpoint.Add(e1.Mul(r)),
			p.Midpoint.Sub(e1.Mul(r)),
			p.Midpoint.Add(e2.Mul(r)),
			p.Midpoint.Sub(e2.Mul(r)),
			p.Midpoint.Add(e1.Mul(c)).Add(e2.Mul(c)),
			p.Midpoint.Add(e1.Mul(c)).Sub(e2.Mul(c)),
			p.Midpoint.Sub(e1.Mul(c)).Add(e2.Mul(c)),
			p.Midpoint.Sub(e1.Mul(c)).Sub(e2.Mul(c)),
		}
	}
	corners := p.Corners()
	return corners[:]
}

func maxPairwiseDistance(pts []mgl64.Vec3) float64 {
	var d float64
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d = math.Max(d, pts[i].Sub(pts[j]).Len())
		}
	}
	return d
}
