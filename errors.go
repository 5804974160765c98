package analphi

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName     = errors.New("invalid potential name")
	ErrInvalidParam    = errors.New("invalid potential parameter")
	ErrMissingCutoff   = errors.New("truncation requested without a positive cutoff radius")
	ErrBadSegments     = errors.New("bad segments")
	ErrNotConverged    = errors.New("not converged")
	ErrNonFinite       = errors.New("integrand returned NaN")
	ErrNoMinimum       = errors.New("potential has no minimum")
	ErrDegenerateWell  = errors.New("degenerate square well: 1 - exp(beta*eps) vanishes")
	ErrDomain          = errors.New("argument outside domain")
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrUnknownVolume   = errors.New("unknown volume element")
	ErrUnknownProperty = errors.New("unknown property")
)

// SegmentError reports which segment of an integration failed.
type SegmentError struct {
	Index        int
	Lower, Upper float64
	AbsErr       float64
	Err          error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d [%g, %g): %v (abserr %.3g)",
		e.Index, e.Lower, e.Upper, e.Err, e.AbsErr)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}
