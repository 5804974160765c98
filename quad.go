package analphi

import (
	"container/heap"
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

// Integrand is a scalar function integrated by the quadrature engine.
//
// Integrands must return finite values or 0 at the limits they are asked
// about: an integrand of a decaying quantity returns 0 at r = +Inf, and an
// integrand that multiplies a hard-core potential by its Boltzmann factor
// returns 0 where the potential is +Inf instead of computing Inf*0.
type Integrand func(x float64) float64

// QuadConfig controls the segmented adaptive quadrature.
type QuadConfig struct {
	AbsTol     float64 // Absolute error tolerance per segment
	RelTol     float64 // Relative error tolerance per segment
	Limit      int     // Maximum number of panels per segment
	Order      int     // Points in the coarse Gauss-Legendre rule (fine rule: 2*Order+1)
	Errors     bool    // Report AbsErr. Estimates are always computed to drive refinement; false only zeroes them
	FullOutput bool    // Attach per-segment diagnostics; non-converged segments do not fail the call
}

// DefaultQuadConfig returns the QUADPACK defaults (epsabs = epsrel = 1.49e-8, limit = 50).
func DefaultQuadConfig() QuadConfig {
	return QuadConfig{
		AbsTol: 1.49e-8,
		RelTol: 1.49e-8,
		Limit:  50,
		Order:  10,
		Errors: true,
	}
}

func (c QuadConfig) withDefaults() QuadConfig {
	def := DefaultQuadConfig()
	if c.AbsTol <= 0 && c.RelTol <= 0 {
		c.AbsTol, c.RelTol = def.AbsTol, def.RelTol
	}
	if c.Limit <= 0 {
		c.Limit = def.Limit
	}
	if c.Order <= 0 {
		c.Order = def.Order
	}
	return c
}

func (c QuadConfig) tolerance(value float64) float64 {
	return math.Max(c.AbsTol, c.RelTol*math.Abs(value))
}

// SegmentResult is the outcome of integrating one segment.
type SegmentResult struct {
	Lower, Upper float64
	Value        float64
	AbsErr       float64
	Evaluations  int  // Integrand evaluations
	Subdivisions int  // Panel bisections performed
	Converged    bool // AbsErr met the tolerance before Limit was reached
}

// Integral is a value summed over all segments.
//
// Errors are summed linearly, which bounds rather than estimates the total.
type Integral struct {
	Value    float64
	AbsErr   float64
	Segments []SegmentResult // Only with QuadConfig.FullOutput
}

// IntegrateSegments integrates f over each [segments[i], segments[i+1]]
// independently and returns one result per segment.
//
// The first or last breakpoint may be infinite. A segment that fails to meet
// the tolerance fails the call with a *SegmentError wrapping ErrNotConverged,
// unless cfg.FullOutput is set, in which case it is reported through
// SegmentResult.Converged. An integrand returning NaN always fails.
func IntegrateSegments(f Integrand, segments []float64, cfg QuadConfig) ([]SegmentResult, error) {
	if err := ValidateSegments(segments); err != nil {
		return nil, err
	}

	cfg = cfg.withDefaults()
	rule := gaussRuleFor(cfg.Order)

	results := make([]SegmentResult, 0, len(segments)-1)
	for i := 0; i+1 < len(segments); i++ {
		lo, hi := segments[i], segments[i+1]

		res, err := rule.integrate(f, lo, hi, cfg)
		if err != nil {
			return nil, &SegmentError{Index: i, Lower: lo, Upper: hi, AbsErr: res.AbsErr, Err: err}
		}
		if !res.Converged && !cfg.FullOutput {
			return nil, &SegmentError{Index: i, Lower: lo, Upper: hi, AbsErr: res.AbsErr, Err: ErrNotConverged}
		}
		if !cfg.Errors {
			res.AbsErr = 0
		}

		results = append(results, res)
	}

	return results, nil
}

// QuadSegments integrates f over segments and sums values and errors.
func QuadSegments(f Integrand, segments []float64, cfg QuadConfig) (Integral, error) {
	results, err := IntegrateSegments(f, segments, cfg)
	if err != nil {
		return Integral{}, err
	}

	var out Integral
	for _, r := range results {
		out.Value += r.Value
		out.AbsErr += r.AbsErr
	}
	if cfg.FullOutput {
		out.Segments = results
	}

	return out, nil
}

// gaussRule holds a nested pair of Gauss-Legendre rules on [-1, 1].
// The difference between the two estimates drives panel refinement.
type gaussRule struct {
	xc, wc []float64
	xf, wf []float64
}

var gaussRules sync.Map // order -> *gaussRule

func gaussRuleFor(order int) *gaussRule {
	if r, ok := gaussRules.Load(order); ok {
		return r.(*gaussRule)
	}

	r := &gaussRule{
		xc: make([]float64, order),
		wc: make([]float64, order),
		xf: make([]float64, 2*order+1),
		wf: make([]float64, 2*order+1),
	}
	quad.Legendre{}.FixedLocations(r.xc, r.wc, -1, 1)
	quad.Legendre{}.FixedLocations(r.xf, r.wf, -1, 1)

	actual, _ := gaussRules.LoadOrStore(order, r)
	return actual.(*gaussRule)
}

type panel struct {
	a, b  float64
	value float64
	err   float64
}

// panelHeap is a max-heap on panel error.
type panelHeap []panel

func (h panelHeap) Len() int           { return len(h) }
func (h panelHeap) Less(i, j int) bool { return h[i].err > h[j].err }
func (h panelHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *panelHeap) Push(x any)        { *h = append(*h, x.(panel)) }
func (h *panelHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}

// evalPanel applies both rules on [a, b].
func (r *gaussRule) evalPanel(g func(float64) float64, a, b float64) (panel, int, error) {
	half := 0.5 * (b - a)
	mid := 0.5 * (a + b)

	var coarse, fine float64
	for i, x := range r.xc {
		coarse += r.wc[i] * g(mid+half*x)
	}
	for i, x := range r.xf {
		fine += r.wf[i] * g(mid+half*x)
	}
	coarse *= half
	fine *= half

	evals := len(r.xc) + len(r.xf)
	if math.IsNaN(coarse) || math.IsNaN(fine) {
		return panel{a: a, b: b}, evals, ErrNonFinite
	}

	return panel{a: a, b: b, value: fine, err: math.Abs(fine - coarse)}, evals, nil
}

// integrate runs adaptive bisection on one segment, worst panel first.
func (r *gaussRule) integrate(f Integrand, lo, hi float64, cfg QuadConfig) (SegmentResult, error) {
	res := SegmentResult{Lower: lo, Upper: hi}
	g, a, b := mapToFinite(f, lo, hi)

	first, n, err := r.evalPanel(g, a, b)
	res.Evaluations += n
	if err != nil {
		return res, err
	}

	h := &panelHeap{first}
	value, abserr := first.value, first.err

	for h.Len() < cfg.Limit && abserr > cfg.tolerance(value) {
		worst := heap.Pop(h).(panel)
		mid := 0.5 * (worst.a + worst.b)
		if !(mid > worst.a && mid < worst.b) {
			// Panel can no longer be split in floating point.
			heap.Push(h, worst)
			break
		}

		left, n1, err := r.evalPanel(g, worst.a, mid)
		res.Evaluations += n1
		if err != nil {
			return res, err
		}
		right, n2, err := r.evalPanel(g, mid, worst.b)
		res.Evaluations += n2
		if err != nil {
			return res, err
		}

		heap.Push(h, left)
		heap.Push(h, right)
		res.Subdivisions++

		value += left.value + right.value - worst.value
		abserr += left.err + right.err - worst.err
	}

	value, abserr = 0, 0
	for _, p := range *h {
		value += p.value
		abserr += p.err
	}

	res.Value = value
	res.AbsErr = abserr
	res.Converged = abserr <= cfg.tolerance(value)

	return res, nil
}

// mapToFinite maps an interval with infinite ends onto a finite one, using
// the same substitutions as quad.Fixed. Finite intervals pass through.
func mapToFinite(f Integrand, lo, hi float64) (func(float64) float64, float64, float64) {
	switch {
	case math.IsInf(lo, -1) && math.IsInf(hi, 1):
		// x = t/(1-t^2)
		return func(t float64) float64 {
			v := 1 - t*t
			return f(t/v) * (1 + t*t) / (v * v)
		}, -1, 1
	case math.IsInf(hi, 1):
		// x = lo + t/(1-t)
		return func(t float64) float64 {
			v := 1 - t
			return f(lo+t/v) / (v * v)
		}, 0, 1
	case math.IsInf(lo, -1):
		// x = hi - (1-t)/t
		return func(t float64) float64 {
			return f(hi-(1-t)/t) / (t * t)
		}, 0, 1
	default:
		return f, lo, hi
	}
}
