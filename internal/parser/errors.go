package parser

import "errors"

var (
	// ErrEmptyDocument is returned when an input holds no YAML document.
	ErrEmptyDocument = errors.New("empty constraint document")

	// ErrInvalidDocument wraps every field-level validation failure.
	ErrInvalidDocument = errors.New("invalid constraint document")

	// ErrMalformedRow is returned for a motion CSV row that is not seven numbers.
	ErrMalformedRow = errors.New("malformed motion row")
)
