package analphi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// MinimizeConfig controls the minimum locator.
type MinimizeConfig struct {
	Bounds  []float64 // [lo, hi] for a bounded search; nil searches from r0 without bounds
	XTol    float64   // Absolute tolerance on the location (bounded search)
	FTol    float64   // Absolute tolerance on the value (unbounded search)
	MaxIter int       // Maximum iterations
}

// DefaultMinimizeConfig returns the scipy fminbound defaults.
func DefaultMinimizeConfig() MinimizeConfig {
	return MinimizeConfig{
		XTol:    1e-5,
		FTol:    1e-14,
		MaxIter: 500,
	}
}

// MinimumResult is the outcome of LocateMinimum.
type MinimumResult struct {
	R           float64 // Location of the minimum
	Phi         float64 // Value at R
	Iterations  int
	Evaluations int
	Status      string
}

// LocateMinimum finds a local minimum of phi.
//
// With cfg.Bounds set, a bounded Brent search (golden section with parabolic
// steps) runs on [lo, hi] and r0 is ignored. Otherwise Nelder-Mead starts
// from r0. +Inf values are treated as the largest finite float so hard
// cores steer the search away instead of poisoning it.
//
// On non-convergence the best point found is returned together with an
// error wrapping ErrNotConverged; callers decide whether that is fatal.
func LocateMinimum(phi PhiFunc, r0 float64, cfg MinimizeConfig) (MinimumResult, error) {
	def := DefaultMinimizeConfig()
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = def.MaxIter
	}
	if cfg.XTol <= 0 {
		cfg.XTol = def.XTol
	}
	if cfg.FTol <= 0 {
		cfg.FTol = def.FTol
	}

	f := func(r float64) float64 {
		v := phi(r)
		if math.IsInf(v, 1) {
			return math.MaxFloat64
		}
		return v
	}

	if cfg.Bounds != nil {
		if len(cfg.Bounds) != 2 || !(cfg.Bounds[1] > cfg.Bounds[0]) {
			return MinimumResult{}, fmt.Errorf("%w: bounds must be [lo, hi] with lo < hi, got %v",
				ErrInvalidParam, cfg.Bounds)
		}
		return minimizeBounded(f, cfg.Bounds[0], cfg.Bounds[1], cfg)
	}

	if math.IsNaN(r0) || math.IsInf(r0, 0) {
		return MinimumResult{}, fmt.Errorf("%w: starting point %g", ErrInvalidParam, r0)
	}
	return minimizeUnbounded(f, r0, cfg)
}

func minimizeUnbounded(f func(float64) float64, r0 float64, cfg MinimizeConfig) (MinimumResult, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return f(x[0])
		},
	}
	settings := optimize.Settings{
		MajorIterations: cfg.MaxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   cfg.FTol,
			Iterations: 50,
		},
	}

	result, err := optimize.Minimize(problem, []float64{r0}, &settings, &optimize.NelderMead{})
	if result == nil {
		return MinimumResult{}, fmt.Errorf("minimize from r0=%g: %w", r0, err)
	}

	out := MinimumResult{
		R:           result.X[0],
		Phi:         result.F,
		Iterations:  result.MajorIterations,
		Evaluations: result.FuncEvaluations,
		Status:      result.Status.String(),
	}
	if err != nil || result.Status.Early() {
		return out, fmt.Errorf("%w: nelder-mead from r0=%g stopped with %s", ErrNotConverged, r0, out.Status)
	}

	return out, nil
}

// minimizeBounded is Brent's bounded scalar minimization (as in fminbound).
func minimizeBounded(f func(float64) float64, lo, hi float64, cfg MinimizeConfig) (MinimumResult, error) {
	sqrtEps := math.Sqrt(2.2e-16)
	goldenMean := 0.5 * (3.0 - math.Sqrt(5.0))

	a, b := lo, hi
	// x: best point, w: second best, v: previous w
	v := a + goldenMean*(b-a)
	w, x := v, v
	fx := f(x)
	fv, fw := fx, fx
	evals := 1

	var d, e float64
	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(x) + cfg.XTol/3.0
	tol2 := 2.0 * tol1

	converged := true
	for math.Abs(x-xm) > tol2-0.5*(b-a) {
		golden := true

		if math.Abs(e) > tol1 {
			// Try a parabolic step through x, w, v.
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2.0 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = d

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-x) && p < q*(b-x) {
				golden = false
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = tol1 * signOrOne(xm-x)
				}
			}
		}

		if golden {
			if x >= xm {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenMean * e
		}

		u := x + signOrOne(d)*math.Max(math.Abs(d), tol1)
		fu := f(u)
		evals++

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(x) + cfg.XTol/3.0
		tol2 = 2.0 * tol1

		if evals >= cfg.MaxIter {
			converged = false
			break
		}
	}

	out := MinimumResult{R: x, Phi: fx, Iterations: evals, Evaluations: evals, Status: "Success"}
	if !converged {
		out.Status = "IterationLimit"
		return out, fmt.Errorf("%w: bounded search on [%g, %g] hit %d evaluations", ErrNotConverged, lo, hi, evals)
	}

	return out, nil
}

func signOrOne(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
