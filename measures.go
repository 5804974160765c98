package analphi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const twoPi = 2.0 * math.Pi

// boltzmann returns exp(-βφ), 0 for a hard core at any β.
func boltzmann(beta, v float64) float64 {
	if math.IsInf(v, 1) {
		return 0
	}
	return math.Exp(-beta * v)
}

// SecondVirial computes the second virial coefficient
//
//	B₂(β) = -2π ∫ r² (exp(-βφ(r)) - 1) dr
//
// summed over segments.
func SecondVirial(phi PhiFunc, beta float64, segments []float64, cfg QuadConfig) (Integral, error) {
	integrand := func(r float64) float64 {
		if math.IsInf(r, 1) {
			return 0
		}
		return twoPi * r * r * (1.0 - boltzmann(beta, phi(r)))
	}

	out, err := QuadSegments(integrand, segments, cfg)
	if err != nil {
		return out, fmt.Errorf("second virial at beta=%g: %w", beta, err)
	}
	return out, nil
}

// SecondVirialDBeta computes the β derivative of the second virial coefficient
//
//	dB₂/dβ = 2π ∫ r² φ(r) exp(-βφ(r)) dr
//
// A hard core contributes exactly 0 (the limit of x·exp(-βx) as x → ∞).
func SecondVirialDBeta(phi PhiFunc, beta float64, segments []float64, cfg QuadConfig) (Integral, error) {
	integrand := func(r float64) float64 {
		if math.IsInf(r, 1) {
			return 0
		}
		v := phi(r)
		if math.IsInf(v, 1) {
			return 0
		}
		return twoPi * r * r * v * math.Exp(-beta*v)
	}

	out, err := QuadSegments(integrand, segments, cfg)
	if err != nil {
		return out, fmt.Errorf("second virial dbeta at beta=%g: %w", beta, err)
	}
	return out, nil
}

// SecondVirialSW is the closed-form second virial coefficient of a square
// well with hard core σ, depth ε and width λ (φ = -ε on σ ≤ r < λσ):
//
//	B₂ = (2π/3) σ³ [1 + (1 - exp(βε)) (λ³ - 1)]
func SecondVirialSW(beta, sig, eps, lam float64) float64 {
	return twoPi / 3.0 * sig * sig * sig * (1.0 - math.Expm1(beta*eps)*(lam*lam*lam-1.0))
}

// Volume is the volume element applied inside continuous divergence integrals.
type Volume func(r float64) float64

// VolumeFor returns the volume element for "1d" (1), "2d" (2πr) or "3d" (4πr²).
func VolumeFor(dim string) (Volume, error) {
	switch dim {
	case "", "1d":
		return func(float64) float64 { return 1.0 }, nil
	case "2d":
		return func(r float64) float64 { return twoPi * r }, nil
	case "3d":
		return func(r float64) float64 { return 2.0 * twoPi * r * r }, nil
	}
	return nil, fmt.Errorf("%w: %q (want 1d, 2d or 3d)", ErrUnknownVolume, dim)
}

// DivergKLIntegrand is p·log(p/q), with 0·log(0/q) = 0 for any q.
func DivergKLIntegrand(p, q float64) float64 {
	if p == 0 {
		return 0
	}
	return p * math.Log(p/q)
}

// DivergJSIntegrand is the Jensen-Shannon integrand against m = (p+q)/2.
// Each term is non-negative; rounding below 0 is clamped.
func DivergJSIntegrand(p, q float64) float64 {
	m := 0.5 * (p + q)
	return math.Max(0, 0.5*(DivergKLIntegrand(p, m)+DivergKLIntegrand(q, m)))
}

// DivergKLDisc is the discrete Kullback-Leibler divergence Σ p log(p/q).
func DivergKLDisc(p, q []float64) (float64, error) {
	return divergDisc(p, q, DivergKLIntegrand)
}

// DivergJSDisc is the discrete Jensen-Shannon divergence.
// It is symmetric in p and q and non-negative for probability vectors.
func DivergJSDisc(p, q []float64) (float64, error) {
	return divergDisc(p, q, DivergJSIntegrand)
}

func divergDisc(p, q []float64, term func(p, q float64) float64) (float64, error) {
	if len(p) != len(q) {
		return 0, fmt.Errorf("%w: len(p)=%d len(q)=%d", ErrLengthMismatch, len(p), len(q))
	}

	terms := make([]float64, len(p))
	for i := range p {
		terms[i] = term(p[i], q[i])
	}
	return floats.Sum(terms), nil
}

// ContinuousOptions configures the continuous divergences.
type ContinuousOptions struct {
	SegmentsQ []float64  // Breakpoints of q, combined with those of p when set
	Volume    Volume     // Volume element; nil means 1d
	Quad      QuadConfig // Quadrature settings
}

// DivergKLCont is the continuous Kullback-Leibler divergence
//
//	∫ p(r) log(p(r)/q(r)) dV(r)
func DivergKLCont(p, q PhiFunc, segments []float64, opts ContinuousOptions) (Integral, error) {
	return divergCont(p, q, segments, opts, DivergKLIntegrand)
}

// DivergJSCont is the continuous Jensen-Shannon divergence.
func DivergJSCont(p, q PhiFunc, segments []float64, opts ContinuousOptions) (Integral, error) {
	return divergCont(p, q, segments, opts, DivergJSIntegrand)
}

func divergCont(p, q PhiFunc, segments []float64, opts ContinuousOptions, term func(p, q float64) float64) (Integral, error) {
	volume := opts.Volume
	if volume == nil {
		volume, _ = VolumeFor("1d")
	}

	if opts.SegmentsQ != nil {
		segments = CombineSegments(segments, opts.SegmentsQ)
	}

	integrand := func(r float64) float64 {
		t := term(p(r), q(r))
		if t == 0 {
			return 0
		}
		return t * volume(r)
	}

	return QuadSegments(integrand, segments, opts.Quad)
}
