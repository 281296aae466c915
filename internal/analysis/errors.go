package analysis

import "errors"

var (
	// ErrMotionWidth is returned when a specified motion row does not hold
	// exactly seven numbers: axis (3), reference point (3), pitch.
	ErrMotionWidth = errors.New("specified motion must have 7 values: axis(3), reference(3), pitch(1)")

	// ErrNoReciprocalMotion means a rank-5 wrench matrix produced no null
	// space, which should not happen for finite input.
	ErrNoReciprocalMotion = errors.New("wrench matrix has no reciprocal motion")

	// ErrShapeMismatch is returned by RateMotionSet when motions and
	// combinations do not pair up.
	ErrShapeMismatch = errors.New("motions and combinations differ in length")
)
