package analysis

import (
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/user/kst_rating_go/internal/constraint"
)

// Wrench is a generalized force: force (3) followed by moment (3).
type Wrench [6]float64

// NewWrench joins a force and a moment.
func NewWrench(force, moment mgl64.Vec3) Wrench {
	return Wrench{force[0], force[1], force[2], moment[0], moment[1], moment[2]}
}

func (w Wrench) Force() mgl64.Vec3  { return mgl64.Vec3{w[0], w[1], w[2]} }
func (w Wrench) Moment() mgl64.Vec3 { return mgl64.Vec3{w[3], w[4], w[5]} }

// Combination is a candidate locking set: up to five global 1-based
// constraint numbers, zero-padded at the end.
type Combination [5]int

// Members returns the non-padding entries.
func (c Combination) Members() []int {
	out := make([]int, 0, len(c))
	for _, g := range c {
		if g != 0 {
			out = append(out, g)
		}
	}
	return out
}

// ScrewMotion is an instantaneous rigid-body freedom.
type ScrewMotion struct {
	Axis      mgl64.Vec3 // unit rotation axis, zero for pure translation
	Moment    mgl64.Vec3 // moment vector, or translation direction when Pitch is +Inf
	Reference mgl64.Vec3 // point on the screw axis
	Pitch     float64    // 0 pure rotation, +Inf pure translation
}

// MotionVector is the flat [axis, moment, reference, pitch] form of a
// ScrewMotion. Quantized vectors are comparable and serve as map keys.
type MotionVector [10]float64

// Vector flattens s.
func (s ScrewMotion) Vector() MotionVector {
	var v MotionVector
	copy(v[0:3], s.Axis[:])
	copy(v[3:6], s.Moment[:])
	copy(v[6:9], s.Reference[:])
	v[9] = s.Pitch
	return v
}

// Screw rebuilds the structured form of v.
func (v MotionVector) Screw() ScrewMotion {
	return ScrewMotion{
		Axis:      mgl64.Vec3{v[0], v[1], v[2]},
		Moment:    mgl64.Vec3{v[3], v[4], v[5]},
		Reference: mgl64.Vec3{v[6], v[7], v[8]},
		Pitch:     v[9],
	}
}

// Reversed is the same freedom traversed the opposite way.
func (s ScrewMotion) Reversed() ScrewMotion {
	return ScrewMotion{
		Axis:      s.Axis.Mul(-1),
		Moment:    s.Moment.Mul(-1),
		Reference: s.Reference,
		Pitch:     s.Pitch,
	}
}

// IsTranslation reports whether s is a pure translation.
func (s ScrewMotion) IsTranslation() bool { return math.IsInf(s.Pitch, 1) }

// WrenchCache holds the geometry derived once per constraint set.
type WrenchCache struct {
	Rows         [][]Wrench   // wrench rows per constraint, global order
	SamplePoints []mgl64.Vec3 // extremal points used to bound moment arms
	MaxDistance  float64      // largest pairwise distance among SamplePoints
}

// RatingResults holds the whole-assembly metrics and the reciprocal
// resistance table they were computed from.
type RatingResults struct {
	WTR float64 // Weakest Total Resistance
	MRR float64 // Mean Redundancy Ratio
	MTR float64 // Mean Total Resistance
	TOR float64 // Trade-Off Ratio

	R       [][]float64 // resistance per motion (row) and constraint (column)
	Ri      [][]float64 // quantized 1/R, 0 where R is infinite
	RowSums []float64   // total resistance per motion
}

// Free reports whether some motion is not resisted at all.
func (r *RatingResults) Free() bool { return r.WTR == 0 }

// ProcessedCombination is a combination that produced a new unique motion.
type ProcessedCombination struct {
	Index       int // 1-based position in the combination list
	Combination Combination
}

// DetailedResult exposes the intermediates of an analysis so a caller can
// re-rate perturbed constraints without enumerating again.
type DetailedResult struct {
	Rating RatingResults // computed over the unique mirrored motions

	R  [][]float64 // forward rows then reverse rows, one pair per unique motion
	Ri [][]float64 // quantized 1/R over the same rows

	UniqueMotions []ScrewMotion // one per first-seen motion, in combination order
	AllMotions    []ScrewMotion // UniqueMotions followed by their reversals
	RatedMotions  []ScrewMotion // the motions of Rating's rows, AllMotions without repeats

	Processed    []ProcessedCombination
	DuplicateOf  []int // per combination: 1-based unique motion it repeats, 0 otherwise
	Combinations []Combination

	Wrenches *WrenchCache
	Set      *constraint.Set
}

// SpecmotResult is the rating of caller-specified motions.
type SpecmotResult struct {
	Rating  RatingResults
	Ri      [][]float64
	Motions []ScrewMotion // specified motions followed by their reversals
}

// Options tunes an analysis call. The zero value runs sequentially and
// discards log output.
type Options struct {
	Workers int
	Logger  logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}
