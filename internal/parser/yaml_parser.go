package parser

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/user/kst_rating_go/internal/constraint"
)

// unitTolerance is how far a direction's length may stray from 1 before the
// loader reports that it normalized it.
const unitTolerance = 1e-9

var docValidate *validator.Validate

func init() {
	v, err := newDocValidator()
	if err != nil {
		panic(err)
	}
	docValidate = v
}

// newDocValidator reports field errors under their YAML names and adds the
// finite and nonzerovec tags.
func newDocValidator() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("finite", validateFinite); err != nil {
		return nil, fmt.Errorf("register finite: %w", err)
	}
	if err := v.RegisterValidation("nonzerovec", validateNonZeroVec); err != nil {
		return nil, fmt.Errorf("register nonzerovec: %w", err)
	}
	return v, nil
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Float64 && f.Kind() != reflect.Float32 {
		return false
	}
	v := f.Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateNonZeroVec(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < f.Len(); i++ {
		if f.Index(i).Float() != 0 {
			return true
		}
	}
	return false
}

// ParseConstraintFile reads and validates a YAML constraint document.
func ParseConstraintFile(path string) (*ParsedAssembly, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open constraint file: %w", err)
	}
	defer file.Close()

	parsed, err := ParseConstraintDocument(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// ParseConstraintDocument decodes one YAML document from r, validates it and
// builds the typed constraint set. Direction vectors are normalized; every
// one that was not already unit length is noted in ParseErrors.
func ParseConstraintDocument(r io.Reader) (*ParsedAssembly, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to decode constraint document: %w", err)
	}
	if err := validateDocument(&doc); err != nil {
		return nil, err
	}

	parsed := NewParsedAssembly()
	parsed.Name = doc.Name
	parsed.Workers = doc.Options.Workers
	parsed.Motions = doc.Motions
	set := parsed.Set

	for i, p := range doc.Points {
		set.Points = append(set.Points, constraint.Point{
			Position: vec(p.Position),
			Normal:   parsed.direction(p.Normal, "point %d normal", i+1),
		})
	}
	for i, p := range doc.Pins {
		set.Pins = append(set.Pins, constraint.Pin{
			Center: vec(p.Center),
			Axis:   parsed.direction(p.Axis, "pin %d axis", i+1),
		})
	}
	for i, l := range doc.Lines {
		set.Lines = append(set.Lines, constraint.Line{
			Midpoint:      vec(l.Midpoint),
			Direction:     parsed.direction(l.Direction, "line %d direction", i+1),
			ConstraintDir: parsed.direction(l.ConstraintDir, "line %d constraint_dir", i+1),
			Length:        l.Length,
		})
	}
	for i, p := range doc.Planes {
		plane := constraint.Plane{
			Midpoint: vec(p.Midpoint),
			Normal:   parsed.direction(p.Normal, "plane %d normal", i+1),
		}
		if p.Shape == "circular" {
			plane.Shape = constraint.Circular
			plane.Radius = p.Radius
		} else {
			plane.Shape = constraint.Rectangular
			plane.WidthDir = parsed.direction(p.WidthDir, "plane %d width_dir", i+1)
			plane.Width = p.Width
			plane.HeightDir = parsed.direction(p.HeightDir, "plane %d height_dir", i+1)
			plane.Height = p.Height
			if math.Abs(plane.WidthDir.Dot(plane.Normal)) > unitTolerance {
				parsed.ParseErrors = append(parsed.ParseErrors, fmt.Sprintf("Warning: plane %d width_dir is not perpendicular to its normal.", i+1))
			}
		}
		set.Planes = append(set.Planes, plane)
	}

	if set.Total() == 0 {
		parsed.ParseErrors = append(parsed.ParseErrors, "Warning: document defines no constraints.")
	}
	return parsed, nil
}

// validateDocument runs the struct tags and folds every field failure into
// one ErrInvalidDocument.
func validateDocument(doc *Document) error {
	err := docValidate.Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Document.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

func vec(v []float64) mgl64.Vec3 {
	var out mgl64.Vec3
	copy(out[:], v)
	return out
}

// direction normalizes v and records a finding when it was not unit length.
func (p *ParsedAssembly) direction(v []float64, format string, args ...any) mgl64.Vec3 {
	d := vec(v)
	l := d.Len()
	if l == 0 {
		return d
	}
	if math.Abs(l-1) > unitTolerance {
		p.ParseErrors = append(p.ParseErrors, fmt.Sprintf("Warning: "+format+" had length %.6g, normalized.", append(args, l)...))
	}
	return d.Mul(1 / l)
}
