package chart

import "errors"

var (
	// ErrInvalidViewport is returned for a viewport dimension outside [1, MaxViewport]
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrMismatchedSampleLengths is returned when frequencies and gains differ in length
	ErrMismatchedSampleLengths = errors.New("mismatched sample lengths")
	// ErrInvalidSample is returned for a NaN or infinite sample, or one that
	// scales to a non-finite pixel coordinate
	ErrInvalidSample = errors.New("invalid sample")
	// ErrDegenerateRange is returned when a scale source interval has equal bounds
	ErrDegenerateRange = errors.New("degenerate range")
	// ErrInvalidDomain is returned when a Domain violates its invariants
	ErrInvalidDomain = errors.New("invalid axis domain")
)
