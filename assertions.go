package analphi

import (
	"fmt"
	"math"
	"testing"
)

// AssertionConfig contains tolerances for potential and reduction checks.
type AssertionConfig struct {
	// Relative step in r for finite differences of φ
	PhiStep float64

	// Relative step in β for finite differences of λ
	BetaStep float64

	// Relative tolerance for analytic vs finite-difference derivatives
	DerivativeTol float64

	// Relative tolerance for B₂ round trips through the effective square well
	RoundTripTol float64
}

// DefaultAssertionConfig returns tolerances suited to the default quadrature.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		PhiStep:       1e-5,
		BetaStep:      1e-3,
		DerivativeTol: 1e-5,
		RoundTripTol:  1e-7,
	}
}

// AssertPhiDPhiConsistent verifies PhiDPhi against Phi at every r.
//
// Mathematical property:
//
//	dphi(r) = -(1/r) dφ/dr ≈ -(φ(r+h) - φ(r-h)) / (2hr)
func AssertPhiDPhiConsistent(t *testing.T, p Potential, rs []float64, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for _, r := range rs {
		v, dv := p.PhiDPhi(r)
		if want := p.Phi(r); v != want && !(math.IsInf(v, 1) && math.IsInf(want, 1)) {
			failures = append(failures, fmt.Sprintf("  r=%g: PhiDPhi value %g != Phi %g", r, v, want))
			continue
		}
		if math.IsInf(v, 0) {
			continue
		}

		h := cfg.PhiStep * r
		fd := -(p.Phi(r+h) - p.Phi(r-h)) / (2 * h * r)
		if !closeRel(dv, fd, cfg.DerivativeTol) {
			failures = append(failures, fmt.Sprintf("  r=%g: dphi=%.10g, finite difference %.10g", r, dv, fd))
		}
	}

	if len(failures) > 0 {
		t.Errorf("PhiDPhi inconsistent with Phi:\n%v", failures)
		return
	}

	t.Logf("✓ PhiDPhi consistent at %d radii (tol %.0e)", len(rs), cfg.DerivativeTol)
}

// AssertB2RoundTrip verifies that the effective square well reproduces B₂.
//
// Mathematical property:
//
//	B₂,SW(β, σ(β), ε, λ(β)) = B₂(β)
func AssertB2RoundTrip(t *testing.T, nf *NoroFrenkelPair, beta float64, cfg AssertionConfig) {
	t.Helper()

	b2, err := nf.SecondVirial(beta)
	if err != nil {
		t.Fatalf("B2 at beta=%g: %v", beta, err)
	}
	b2sw, err := nf.SecondVirialSW(beta)
	if err != nil {
		t.Fatalf("B2_sw at beta=%g: %v", beta, err)
	}

	if !closeRel(b2sw, b2, cfg.RoundTripTol) {
		t.Errorf("B2 round trip failed at beta=%g: B2=%.12g, B2_sw=%.12g", beta, b2, b2sw)
		return
	}

	t.Logf("✓ B2 round trip at beta=%g: %.10f", beta, b2)
}

// AssertLamDBetaFiniteDifference verifies the analytic dλ/dβ against a
// central difference of λ(β).
func AssertLamDBetaFiniteDifference(t *testing.T, nf *NoroFrenkelPair, beta float64, cfg AssertionConfig) {
	t.Helper()

	analytic, err := nf.LamDBeta(beta)
	if err != nil {
		t.Fatalf("lam_dbeta at beta=%g: %v", beta, err)
	}

	h := cfg.BetaStep * beta
	lp, err := nf.Lam(beta + h)
	if err != nil {
		t.Fatalf("lam at beta+h: %v", err)
	}
	lm, err := nf.Lam(beta - h)
	if err != nil {
		t.Fatalf("lam at beta-h: %v", err)
	}
	fd := (lp - lm) / (2 * h)

	if !closeAbsRel(analytic, fd, cfg.DerivativeTol) {
		t.Errorf("dlam/dbeta at beta=%g: analytic %.10g, finite difference %.10g", beta, analytic, fd)
		return
	}

	t.Logf("✓ dlam/dbeta at beta=%g: %.8f (finite difference %.8f)", beta, analytic, fd)
}

// AssertReduction runs all reduction assertions at each β with default config.
func AssertReduction(t *testing.T, nf *NoroFrenkelPair, betas []float64) {
	t.Helper()

	cfg := DefaultAssertionConfig()
	for _, beta := range betas {
		beta := beta
		t.Run(fmt.Sprintf("beta=%g", beta), func(t *testing.T) {
			AssertB2RoundTrip(t, nf, beta, cfg)
			AssertLamDBetaFiniteDifference(t, nf, beta, cfg)
		})
	}
}

// PrintReduction logs the effective parameters at each β.
func PrintReduction(t *testing.T, nf *NoroFrenkelPair, betas []float64) {
	t.Helper()

	t.Logf("\n=== Noro-Frenkel Reduction ===")
	t.Logf("  r_min = %.6f, phi_min = %.6f", nf.RMin(), nf.PhiMin())
	t.Logf("  beta      B2            sigma       lambda")
	t.Logf("  --------  ------------  ----------  ----------")
	for _, beta := range betas {
		b2, err := nf.SecondVirial(beta)
		if err != nil {
			t.Fatalf("B2 at beta=%g: %v", beta, err)
		}
		sig, err := nf.Sig(beta)
		if err != nil {
			t.Fatalf("sig at beta=%g: %v", beta, err)
		}
		lam, err := nf.Lam(beta)
		if err != nil {
			t.Fatalf("lam at beta=%g: %v", beta, err)
		}
		t.Logf("  %-8.3f  %12.6f  %10.6f  %10.6f", beta, b2, sig, lam)
	}
}

func closeRel(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Max(math.Abs(want), math.SmallestNonzeroFloat64)
}

// closeAbsRel accepts either absolute or relative agreement, for values near 0.
func closeAbsRel(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Max(1, math.Abs(want))
}
