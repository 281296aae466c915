package constraint

import "github.com/go-gl/mathgl/mgl64"

// Kind tags a constraint with its geometric type.
type Kind int

const (
	KindPoint Kind = iota
	KindPin
	KindLine
	KindPlane
)

// kindRows is the number of wrench rows each kind contributes.
var kindRows = [...]int{KindPoint: 1, KindPin: 2, KindLine: 2, KindPlane: 3}

// Rows returns how many wrench rows a constraint of this kind contributes.
func (k Kind) Rows() int { return kindRows[k] }

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindPin:
		return "pin"
	case KindLine:
		return "line"
	case KindPlane:
		return "plane"
	}
	return "unknown"
}

// PlaneShape selects how a plane contact is discretized.
type PlaneShape int

const (
	Rectangular PlaneShape = 1
	Circular    PlaneShape = 2
)

// Point is a single point contact resisting motion along its normal.
type Point struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3 // unit
}

// Pin is a cylindrical pin resisting motion in the plane orthogonal to its axis.
type Pin struct {
	Center mgl64.Vec3
	Axis   mgl64.Vec3 // unit
}

// Line is a line contact of finite length.
type Line struct {
	Midpoint      mgl64.Vec3
	Direction     mgl64.Vec3 // along the line
	ConstraintDir mgl64.Vec3 // constraining normal
	Length        float64
}

// Endpoints returns the two physical ends of the segment. Direction need not
// be unit length; a zero direction collapses both ends onto the midpoint.
func (l Line) Endpoints() (mgl64.Vec3, mgl64.Vec3) {
	var half mgl64.Vec3
	if n := l.Direction.Len(); n > 0 {
		half = l.Direction.Mul(l.Length / (2 * n))
	}
	return l.Midpoint.Add(half), l.Midpoint.Sub(half)
}

// Plane is a planar contact patch. Rectangular patches use WidthDir/Width
// and HeightDir/Height; circular patches use Radius.
type Plane struct {
	Midpoint  mgl64.Vec3
	Normal    mgl64.Vec3 // unit
	Shape     PlaneShape
	WidthDir  mgl64.Vec3
	Width     float64
	HeightDir mgl64.Vec3
	Height    float64
	Radius    float64
}

// Corners returns the four corners of a rectangular patch in the order
// (+w,+h), (+w,-h), (-w,+h), (-w,-h).
func (p Plane) Corners() [4]mgl64.Vec3 {
	w := p.WidthDir.Mul(p.Width / 2)
	h := p.HeightDir.Mul(p.Height / 2)
	return [4]mgl64.Vec3{
		p.Midpoint.Add(w).Add(h),
		p.Midpoint.Add(w).Sub(h),
		p.Midpoint.Sub(w).Add(h),
		p.Midpoint.Sub(w).Sub(h),
	}
}

// Set groups all constraints of an assembly. The global 1-based constraint
// index is the position in Points ++ Pins ++ Lines ++ Planes.
type Set struct {
	Points []Point
	Pins   []Pin
	Lines  []Line
	Planes []Plane
}

// Total returns the number of constraints of all kinds.
func (s *Set) Total() int {
	return len(s.Points) + len(s.Pins) + len(s.Lines) + len(s.Planes)
}

// HasPlanes reports whether any plane contact is present.
func (s *Set) HasPlanes() bool { return len(s.Planes) > 0 }

// HasPinsOrLines reports whether any pin or line contact is present.
func (s *Set) HasPinsOrLines() bool { return len(s.Pins) > 0 || len(s.Lines) > 0 }

// Clone returns a deep copy so callers can perturb geometry without touching the source set.
func (s *Set) Clone() *Set {
	return &Set{
		Points: append([]Point(nil), s.Points...),
		Pins:   append([]Pin(nil), s.Pins...),
		Lines:  append([]Line(nil), s.Lines...),
		Planes: append([]Plane(nil), s.Planes...),
	}
}
