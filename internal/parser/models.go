package parser

import "github.com/user/kst_rating_go/internal/constraint"

// MotionColumns is the width of a specified-motion row:
// axis (3), reference point (3), pitch.
const MotionColumns = 7

// Document is the on-disk description of an assembly. Vectors are plain
// 3-element lists; directions need not be unit length.
type Document struct {
	Name    string        `yaml:"name"`
	Points  []PointDoc    `yaml:"points" validate:"dive"`
	Pins    []PinDoc      `yaml:"pins" validate:"dive"`
	Lines   []LineDoc     `yaml:"lines" validate:"dive"`
	Planes  []PlaneDoc    `yaml:"planes" validate:"dive"`
	Motions [][]float64   `yaml:"motions" validate:"dive,len=7"`
	Options DocumentFlags `yaml:"options"`
}

type PointDoc struct {
	Position []float64 `yaml:"position" validate:"len=3,dive,finite"`
	Normal   []float64 `yaml:"normal" validate:"len=3,nonzerovec,dive,finite"`
}

type PinDoc struct {
	Center []float64 `yaml:"center" validate:"len=3,dive,finite"`
	Axis   []float64 `yaml:"axis" validate:"len=3,nonzerovec,dive,finite"`
}

type LineDoc struct {
	Midpoint      []float64 `yaml:"midpoint" validate:"len=3,dive,finite"`
	Direction     []float64 `yaml:"direction" validate:"len=3,nonzerovec,dive,finite"`
	ConstraintDir []float64 `yaml:"constraint_dir" validate:"len=3,nonzerovec,dive,finite"`
	Length        float64   `yaml:"length" validate:"gt=0"`
}

// PlaneDoc describes a plane contact. Rectangular patches need the width
// and height fields, circular ones the radius.
type PlaneDoc struct {
	Midpoint  []float64 `yaml:"midpoint" validate:"len=3,dive,finite"`
	Normal    []float64 `yaml:"normal" validate:"len=3,nonzerovec,dive,finite"`
	Shape     string    `yaml:"shape" validate:"oneof=rectangular circular"`
	WidthDir  []float64 `yaml:"width_dir" validate:"required_if=Shape rectangular,omitempty,len=3,nonzerovec"`
	Width     float64   `yaml:"width" validate:"required_if=Shape rectangular,gte=0"`
	HeightDir []float64 `yaml:"height_dir" validate:"required_if=Shape rectangular,omitempty,len=3,nonzerovec"`
	Height    float64   `yaml:"height" validate:"required_if=Shape rectangular,gte=0"`
	Radius    float64   `yaml:"radius" validate:"required_if=Shape circular,gte=0"`
}

// DocumentFlags holds run defaults a command line may override.
type DocumentFlags struct {
	Workers int `yaml:"workers" validate:"gte=0"`
}

// ParsedAssembly is a validated document turned into typed constraints.
type ParsedAssembly struct {
	Name        string
	Set         *constraint.Set
	Motions     [][]float64
	Workers     int
	ParseErrors []string // non-fatal findings, such as directions that had to be normalized
}

// NewParsedAssembly returns an assembly with an empty constraint set.
func NewParsedAssembly() *ParsedAssembly {
	return &ParsedAssembly{
		Set:         &constraint.Set{},
		ParseErrors: make([]string, 0),
	}
}
