package analphi

import (
	"fmt"
	"math"
)

// PhiFunc is a pair potential as a plain function of separation.
type PhiFunc func(r float64) float64

// Potential is the contract every pair potential satisfies.
//
// Implementations are immutable after construction and safe for concurrent use.
type Potential interface {
	// Phi returns φ(r). A hard core evaluates to +Inf.
	Phi(r float64) float64

	// PhiDPhi returns φ(r) and dphi = -(1/r) dφ/dr.
	// phi is identical to Phi(r).
	PhiDPhi(r float64) (phi, dphi float64)

	// Segments returns ascending breakpoints partitioning the domain into
	// regular pieces. The first may be 0 and the last may be +Inf.
	Segments() []float64

	// Minimum returns the location and value of the potential minimum,
	// or ErrNoMinimum.
	Minimum() (rMin, phiMin float64, err error)
}

// Evaluate returns Phi at every r.
func Evaluate(p Potential, rs []float64) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = p.Phi(r)
	}
	return out
}

// Cut truncates a potential at RCut:
//
//	φ_cut(r) = φ(r)  for r < rcut
//	         = 0     for r ≥ rcut
type Cut struct {
	Base Potential
	RCut float64
}

// NewCut wraps base with a hard cutoff at rcut.
func NewCut(base Potential, rcut float64) (*Cut, error) {
	if err := checkCutoff(rcut); err != nil {
		return nil, err
	}
	return &Cut{Base: base, RCut: rcut}, nil
}

func (c *Cut) Phi(r float64) float64 {
	if r >= c.RCut {
		return 0
	}
	return c.Base.Phi(r)
}

func (c *Cut) PhiDPhi(r float64) (float64, float64) {
	if r >= c.RCut {
		return 0, 0
	}
	return c.Base.PhiDPhi(r)
}

func (c *Cut) Segments() []float64 {
	return clipSegments(c.Base.Segments(), c.RCut)
}

func (c *Cut) Minimum() (float64, float64, error) {
	rMin, phiMin, err := c.Base.Minimum()
	if err != nil {
		return 0, 0, err
	}
	if rMin >= c.RCut {
		return 0, 0, fmt.Errorf("%w: base minimum %g beyond cutoff %g", ErrNoMinimum, rMin, c.RCut)
	}
	return rMin, phiMin, nil
}

// LFS applies a linear force shift at RCut, so both φ and the force vanish
// continuously at the cutoff:
//
//	φ_lfs(r) = φ(r) - φ(rc) - (r - rc) φ'(rc)  for r < rc
//	         = 0                                for r ≥ rc
type LFS struct {
	Base Potential
	RCut float64

	phiCut  float64 // φ(rc)
	dphiCut float64 // -(1/rc) φ'(rc)
}

// NewLFS wraps base with a linear force shift at rcut.
func NewLFS(base Potential, rcut float64) (*LFS, error) {
	if err := checkCutoff(rcut); err != nil {
		return nil, err
	}

	phiCut, dphiCut := base.PhiDPhi(rcut)
	if math.IsInf(phiCut, 0) || math.IsNaN(phiCut) || math.IsNaN(dphiCut) {
		return nil, fmt.Errorf("%w: potential not finite at cutoff %g", ErrDomain, rcut)
	}

	return &LFS{Base: base, RCut: rcut, phiCut: phiCut, dphiCut: dphiCut}, nil
}

func (l *LFS) Phi(r float64) float64 {
	v, _ := l.PhiDPhi(r)
	return v
}

// PhiDPhi uses φ'(rc) = -rc·dphi(rc).
func (l *LFS) PhiDPhi(r float64) (float64, float64) {
	if r >= l.RCut {
		return 0, 0
	}

	v, dv := l.Base.PhiDPhi(r)
	if math.IsInf(v, 1) {
		return v, dv
	}

	v = v - l.phiCut + (r-l.RCut)*l.RCut*l.dphiCut
	dv = dv - l.RCut*l.dphiCut/r

	return v, dv
}

func (l *LFS) Segments() []float64 {
	return clipSegments(l.Base.Segments(), l.RCut)
}

// Minimum searches numerically, since the shift moves the base minimum.
func (l *LFS) Minimum() (float64, float64, error) {
	r0, _, err := l.Base.Minimum()
	if err != nil {
		return 0, 0, err
	}
	if r0 >= l.RCut {
		return 0, 0, fmt.Errorf("%w: base minimum %g beyond cutoff %g", ErrNoMinimum, r0, l.RCut)
	}

	cfg := DefaultMinimizeConfig()
	cfg.Bounds = []float64{0.5 * r0, l.RCut}

	res, err := LocateMinimum(l.Phi, r0, cfg)
	if err != nil {
		return 0, 0, err
	}

	// A hard-cored base keeps its minimum at the contact point, which the
	// bounded search can only approach from above.
	if v := l.Phi(r0); v <= res.Phi {
		return r0, v, nil
	}

	return res.R, res.Phi, nil
}

func checkCutoff(rcut float64) error {
	if !(rcut > 0) || math.IsInf(rcut, 0) {
		return fmt.Errorf("%w: rcut=%g", ErrMissingCutoff, rcut)
	}
	return nil
}
