package analphi

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
)

// NoroFrenkelPair maps a pair potential onto an effective square well
// (σ, ε, λ) that reproduces its second virial coefficient at each β.
//
// The potential is split at its minimum r_min. The repulsive branch
//
//	φ_rep(r) = φ(r) - φ_min  for r ≤ r_min
//	         = 0             for r > r_min
//
// gives the Barker-Henderson diameter σ(β), the depth is ε = -φ_min, and λ(β)
// follows from inverting the square-well B₂ in closed form.
//
// A NoroFrenkelPair is immutable; every method recomputes its integrals, so
// it may be shared across goroutines.
type NoroFrenkelPair struct {
	phi      PhiFunc
	segments []float64
	repSegs  []float64 // segments clipped to r_min
	rMin     float64
	phiMin   float64

	quad    QuadConfig
	logger  *slog.Logger
	workers int
}

// Option configures a NoroFrenkelPair.
type Option func(nf *NoroFrenkelPair)

// WithQuadConfig sets the quadrature settings used by every integral.
func WithQuadConfig(cfg QuadConfig) Option {
	return func(nf *NoroFrenkelPair) {
		nf.quad = cfg
	}
}

// WithLogger sets the logger for table progress (Debug level).
func WithLogger(logger *slog.Logger) Option {
	return func(nf *NoroFrenkelPair) {
		nf.logger = logger
	}
}

// WithWorkers bounds the number of table rows computed concurrently.
func WithWorkers(n int) Option {
	return func(nf *NoroFrenkelPair) {
		nf.workers = n
	}
}

// NewNoroFrenkelPair builds a reduction from a potential function, its
// segments, and its known minimum.
func NewNoroFrenkelPair(phi PhiFunc, segments []float64, rMin, phiMin float64, opts ...Option) (*NoroFrenkelPair, error) {
	if err := ValidateSegments(segments); err != nil {
		return nil, err
	}
	if !(rMin > segments[0]) || math.IsInf(rMin, 0) {
		return nil, fmt.Errorf("%w: r_min=%g outside segments starting at %g", ErrDomain, rMin, segments[0])
	}
	if math.IsNaN(phiMin) || math.IsInf(phiMin, 0) {
		return nil, fmt.Errorf("%w: phi_min=%g", ErrDomain, phiMin)
	}

	nf := &NoroFrenkelPair{
		phi:      phi,
		segments: append([]float64(nil), segments...),
		repSegs:  clipSegments(segments, rMin),
		rMin:     rMin,
		phiMin:   phiMin,
		quad:     DefaultQuadConfig(),
		logger:   slog.Default(),
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(nf)
	}
	if nf.workers < 1 {
		nf.workers = 1
	}

	return nf, nil
}

// NoroFrenkelFromPotential uses the potential's own segments and minimum.
func NoroFrenkelFromPotential(p Potential, opts ...Option) (*NoroFrenkelPair, error) {
	rMin, phiMin, err := p.Minimum()
	if err != nil {
		return nil, err
	}
	return NewNoroFrenkelPair(p.Phi, p.Segments(), rMin, phiMin, opts...)
}

// NoroFrenkelFromPhi locates the minimum numerically, starting at r0 or
// within mcfg.Bounds.
func NoroFrenkelFromPhi(phi PhiFunc, segments []float64, r0 float64, mcfg MinimizeConfig, opts ...Option) (*NoroFrenkelPair, error) {
	m, err := LocateMinimum(phi, r0, mcfg)
	if err != nil {
		return nil, fmt.Errorf("locate minimum: %w", err)
	}
	return NewNoroFrenkelPair(phi, segments, m.R, m.Phi, opts...)
}

// RMin returns the location of the potential minimum.
func (nf *NoroFrenkelPair) RMin() float64 { return nf.rMin }

// PhiMin returns the value of the potential at its minimum.
func (nf *NoroFrenkelPair) PhiMin() float64 { return nf.phiMin }

// PhiRep is the repulsive branch shifted to vanish at r_min.
func (nf *NoroFrenkelPair) PhiRep(r float64) float64 {
	if r > nf.rMin {
		return 0
	}
	return nf.phi(r) - nf.phiMin
}

// SecondVirial is B₂(β) of the full potential.
func (nf *NoroFrenkelPair) SecondVirial(beta float64) (float64, error) {
	out, err := SecondVirial(nf.phi, beta, nf.segments, nf.quad)
	return out.Value, err
}

// SecondVirialDBeta is dB₂/dβ of the full potential.
func (nf *NoroFrenkelPair) SecondVirialDBeta(beta float64) (float64, error) {
	out, err := SecondVirialDBeta(nf.phi, beta, nf.segments, nf.quad)
	return out.Value, err
}

// Sig is the effective hard-sphere diameter σ(β).
func (nf *NoroFrenkelPair) Sig(beta float64) (float64, error) {
	out, err := SigNF(nf.PhiRep, beta, nf.repSegs, nf.quad)
	return out.Value, err
}

// SigDBeta is dσ/dβ.
func (nf *NoroFrenkelPair) SigDBeta(beta float64) (float64, error) {
	out, err := SigNFDBeta(nf.PhiRep, beta, nf.repSegs, nf.quad)
	return out.Value, err
}

// Eps is the effective well depth, -φ_min, independent of β.
func (nf *NoroFrenkelPair) Eps() float64 {
	return -nf.phiMin
}

// Lam is the effective well width λ(β).
func (nf *NoroFrenkelPair) Lam(beta float64) (float64, error) {
	sig, b2, err := nf.sigB2(beta)
	if err != nil {
		return 0, err
	}
	return LamNF(beta, sig, nf.Eps(), b2)
}

// LamDBeta is dλ/dβ by implicit differentiation of the λ relation.
func (nf *NoroFrenkelPair) LamDBeta(beta float64) (float64, error) {
	sig, b2, err := nf.sigB2(beta)
	if err != nil {
		return 0, err
	}
	lam, err := LamNF(beta, sig, nf.Eps(), b2)
	if err != nil {
		return 0, err
	}
	b2d, err := nf.SecondVirialDBeta(beta)
	if err != nil {
		return 0, err
	}
	sigd, err := nf.SigDBeta(beta)
	if err != nil {
		return 0, err
	}
	return LamNFDBeta(beta, sig, nf.Eps(), lam, b2, b2d, sigd)
}

// SecondVirialSW is B₂ of the effective square well. It equals SecondVirial
// up to quadrature error.
func (nf *NoroFrenkelPair) SecondVirialSW(beta float64) (float64, error) {
	sig, b2, err := nf.sigB2(beta)
	if err != nil {
		return 0, err
	}
	lam, err := LamNF(beta, sig, nf.Eps(), b2)
	if err != nil {
		return 0, err
	}
	return SecondVirialSW(beta, sig, nf.Eps(), lam), nil
}

func (nf *NoroFrenkelPair) sigB2(beta float64) (sig, b2 float64, err error) {
	if sig, err = nf.Sig(beta); err != nil {
		return 0, 0, err
	}
	if b2, err = nf.SecondVirial(beta); err != nil {
		return 0, 0, err
	}
	return sig, b2, nil
}

// SigNF is the Barker-Henderson effective diameter
//
//	σ(β) = ∫ (1 - exp(-β φ_rep(r))) dr
func SigNF(phiRep PhiFunc, beta float64, segments []float64, cfg QuadConfig) (Integral, error) {
	integrand := func(r float64) float64 {
		return 1.0 - boltzmann(beta, phiRep(r))
	}

	out, err := QuadSegments(integrand, segments, cfg)
	if err != nil {
		return out, fmt.Errorf("effective diameter at beta=%g: %w", beta, err)
	}
	return out, nil
}

// SigNFDBeta is dσ/dβ = ∫ φ_rep(r) exp(-β φ_rep(r)) dr, 0 on a hard core.
func SigNFDBeta(phiRep PhiFunc, beta float64, segments []float64, cfg QuadConfig) (Integral, error) {
	integrand := func(r float64) float64 {
		v := phiRep(r)
		if math.IsInf(v, 1) {
			return 0
		}
		return v * math.Exp(-beta*v)
	}

	out, err := QuadSegments(integrand, segments, cfg)
	if err != nil {
		return out, fmt.Errorf("effective diameter dbeta at beta=%g: %w", beta, err)
	}
	return out, nil
}

// LamNF inverts the square-well B₂ for the well width:
//
//	λ = [(B₂* - 1) / (1 - exp(βε)) + 1]^(1/3),  B₂* = B₂ / ((2π/3) σ³)
//
// It fails with ErrDegenerateWell when 1 - exp(βε) is 0 (β = 0 or ε = 0),
// and with ErrDomain when the bracket is negative.
func LamNF(beta, sig, eps, b2 float64) (float64, error) {
	b2star := b2 / (twoPi / 3.0 * sig * sig * sig)

	denom := -math.Expm1(beta * eps)
	if denom == 0 || math.IsNaN(denom) {
		return 0, fmt.Errorf("%w: beta=%g eps=%g", ErrDegenerateWell, beta, eps)
	}

	lam3 := (b2star-1.0)/denom + 1.0
	if !(lam3 >= 0) || math.IsInf(lam3, 0) {
		return 0, fmt.Errorf("%w: lambda^3=%g at beta=%g (B2*=%g)", ErrDomain, lam3, beta, b2star)
	}

	return math.Cbrt(lam3), nil
}

// LamNFDBeta is dλ/dβ from known B₂, dB₂/dβ, σ, dσ/dβ and λ. With
// E = exp(-βε) and B₂_hs = (2π/3) σ³:
//
//	dB₂*/dβ = (dB₂/dβ - 3 B₂ σ'/σ) / B₂_hs
//	dλ/dβ   = [E dB₂*/dβ + ε (λ³ - 1)] / [3 λ² (E - 1)]
func LamNFDBeta(beta, sig, eps, lam, b2, b2dbeta, sigdbeta float64) (float64, error) {
	b2hs := twoPi / 3.0 * sig * sig * sig
	dB2star := (b2dbeta - 3.0*b2*sigdbeta/sig) / b2hs

	e := math.Exp(-beta * eps)
	em1 := math.Expm1(-beta * eps)
	if em1 == 0 || lam == 0 {
		return 0, fmt.Errorf("%w: beta=%g eps=%g lam=%g", ErrDegenerateWell, beta, eps, lam)
	}

	return (e*dB2star + eps*(lam*lam*lam-1.0)) / (3.0 * lam * lam * em1), nil
}
