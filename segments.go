package analphi

import (
	"fmt"
	"math"
	"slices"
)

// ValidateSegments checks that segments describe consecutive sub-intervals:
// at least two breakpoints, strictly increasing, no NaN, and infinities only
// at the extremes (-Inf first, +Inf last).
func ValidateSegments(segments []float64) error {
	if len(segments) < 2 {
		return fmt.Errorf("%w: need at least 2 breakpoints, got %d", ErrBadSegments, len(segments))
	}

	last := len(segments) - 1
	for i, x := range segments {
		switch {
		case math.IsNaN(x):
			return fmt.Errorf("%w: NaN at index %d", ErrBadSegments, i)
		case math.IsInf(x, -1) && i != 0:
			return fmt.Errorf("%w: -Inf at index %d", ErrBadSegments, i)
		case math.IsInf(x, 1) && i != last:
			return fmt.Errorf("%w: +Inf at index %d", ErrBadSegments, i)
		}
		if i > 0 && !(x > segments[i-1]) {
			return fmt.Errorf("%w: not strictly increasing at index %d (%g <= %g)",
				ErrBadSegments, i, x, segments[i-1])
		}
	}

	return nil
}

// CombineSegments returns the sorted union of two breakpoint sets with exact
// duplicates collapsed.
//
// Integrating two functions with different natural partitions over the
// combined set keeps every discontinuity of either function on a segment
// boundary.
func CombineSegments(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)

	return slices.Compact(out)
}

// clipSegments returns the breakpoints strictly below upper followed by upper.
func clipSegments(segments []float64, upper float64) []float64 {
	out := make([]float64, 0, len(segments)+1)
	for _, x := range segments {
		if x < upper {
			out = append(out, x)
		}
	}

	return append(out, upper)
}
