package analphi

import (
	"fmt"
	"math"
)

// LJ is the Lennard-Jones potential:
//
//	φ(r) = 4ε [(σ/r)¹² - (σ/r)⁶]
type LJ struct {
	Sig float64
	Eps float64
}

// NewLJ returns a Lennard-Jones potential.
func NewLJ(sig, eps float64) (LJ, error) {
	if err := checkPositive("sig", sig); err != nil {
		return LJ{}, err
	}
	return LJ{Sig: sig, Eps: eps}, nil
}

func (p LJ) Phi(r float64) float64 {
	x2 := p.Sig * p.Sig / (r * r)
	x6 := x2 * x2 * x2
	return 4.0 * p.Eps * x6 * (x6 - 1.0)
}

func (p LJ) PhiDPhi(r float64) (float64, float64) {
	rinvsq := 1.0 / (r * r)
	x2 := p.Sig * p.Sig * rinvsq
	x6 := x2 * x2 * x2

	fourEps := 4.0 * p.Eps
	phi := fourEps * x6 * (x6 - 1.0)
	dphi := 12.0 * fourEps * x6 * (x6 - 0.5) * rinvsq
	return phi, dphi
}

func (p LJ) Segments() []float64 { return []float64{0, math.Inf(1)} }

// Minimum is closed form: r_min = σ·2^(1/6), φ_min = -ε.
func (p LJ) Minimum() (float64, float64, error) {
	return p.Sig * math.Pow(2.0, 1.0/6.0), -p.Eps, nil
}

// NM is the generalized Lennard-Jones (Mie) potential, normalized so the
// well depth is ε:
//
//	φ(r) = ε n/(n-m) (n/m)^(m/(n-m)) [(σ/r)ⁿ - (σ/r)ᵐ]
type NM struct {
	N, M int
	Sig  float64
	Eps  float64
}

// NewNM returns an n-m potential. Requires n > m > 0.
func NewNM(n, m int, sig, eps float64) (NM, error) {
	if !(n > m && m > 0) {
		return NM{}, fmt.Errorf("%w: need n > m > 0, got n=%d m=%d", ErrInvalidParam, n, m)
	}
	if err := checkPositive("sig", sig); err != nil {
		return NM{}, err
	}
	return NM{N: n, M: m, Sig: sig, Eps: eps}, nil
}

func (p NM) prefac() float64 {
	n, m := float64(p.N), float64(p.M)
	return p.Eps * (n / (n - m)) * math.Pow(n/m, m/(n-m))
}

func (p NM) Phi(r float64) float64 {
	x := p.Sig / r
	return p.prefac() * (math.Pow(x, float64(p.N)) - math.Pow(x, float64(p.M)))
}

func (p NM) PhiDPhi(r float64) (float64, float64) {
	x := p.Sig / r
	xn := math.Pow(x, float64(p.N))
	xm := math.Pow(x, float64(p.M))
	prefac := p.prefac()

	// dphi = x dφ/dx / r²
	return prefac * (xn - xm), prefac * (float64(p.N)*xn - float64(p.M)*xm) / (r * r)
}

func (p NM) Segments() []float64 { return []float64{0, math.Inf(1)} }

func (p NM) Minimum() (float64, float64, error) {
	n, m := float64(p.N), float64(p.M)
	return p.Sig * math.Pow(n/m, 1.0/(n-m)), -p.Eps, nil
}

// SW is the square-well potential with hard core σ, depth ε and width λ:
//
//	φ(r) = +∞   r < σ
//	     = -ε   σ ≤ r < λσ
//	     = 0    λσ ≤ r
type SW struct {
	Sig float64
	Eps float64
	Lam float64
}

// NewSW returns a square-well potential. Requires λ > 1.
func NewSW(sig, eps, lam float64) (SW, error) {
	if err := checkPositive("sig", sig); err != nil {
		return SW{}, err
	}
	if !(lam > 1) {
		return SW{}, fmt.Errorf("%w: lam must exceed 1, got %g", ErrInvalidParam, lam)
	}
	return SW{Sig: sig, Eps: eps, Lam: lam}, nil
}

func (p SW) Phi(r float64) float64 {
	switch {
	case r < p.Sig:
		return math.Inf(1)
	case r < p.Lam*p.Sig:
		return -p.Eps
	default:
		return 0
	}
}

func (p SW) PhiDPhi(r float64) (float64, float64) { return p.Phi(r), 0 }

func (p SW) Segments() []float64 { return []float64{0, p.Sig, p.Sig * p.Lam} }

func (p SW) Minimum() (float64, float64, error) { return p.Sig, -p.Eps, nil }

// HS is the hard-sphere potential of diameter σ.
type HS struct {
	Sig float64
}

// NewHS returns a hard-sphere potential.
func NewHS(sig float64) (HS, error) {
	if err := checkPositive("sig", sig); err != nil {
		return HS{}, err
	}
	return HS{Sig: sig}, nil
}

func (p HS) Phi(r float64) float64 {
	if r < p.Sig {
		return math.Inf(1)
	}
	return 0
}

func (p HS) PhiDPhi(r float64) (float64, float64) { return p.Phi(r), 0 }

func (p HS) Segments() []float64 { return []float64{0, p.Sig} }

func (p HS) Minimum() (float64, float64, error) {
	return 0, 0, fmt.Errorf("%w: hard sphere", ErrNoMinimum)
}

// Yukawa is a hard core plus attractive Yukawa tail, with x = r/σ:
//
//	φ(r) = +∞                     r < σ
//	     = -ε exp(-z(x - 1)) / x  r ≥ σ
type Yukawa struct {
	Z   float64
	Sig float64
	Eps float64
}

// NewYukawa returns a hard-core Yukawa potential.
func NewYukawa(z, sig, eps float64) (Yukawa, error) {
	if err := checkPositive("sig", sig); err != nil {
		return Yukawa{}, err
	}
	return Yukawa{Z: z, Sig: sig, Eps: eps}, nil
}

func (p Yukawa) Phi(r float64) float64 {
	if r < p.Sig {
		return math.Inf(1)
	}
	x := r / p.Sig
	return -p.Eps * math.Exp(-p.Z*(x-1.0)) / x
}

func (p Yukawa) PhiDPhi(r float64) (float64, float64) {
	if r < p.Sig {
		return math.Inf(1), 0
	}
	x := r / p.Sig
	phi := -p.Eps * math.Exp(-p.Z*(x-1.0)) / x
	return phi, phi * (p.Z*x + 1.0) / (x * r * p.Sig)
}

func (p Yukawa) Segments() []float64 { return []float64{0, p.Sig, math.Inf(1)} }

func (p Yukawa) Minimum() (float64, float64, error) { return p.Sig, -p.Eps, nil }

func checkPositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidParam, name, v)
	}
	return nil
}
