package analphi

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLJ_ClosedForm(t *testing.T) {
	lj, err := NewLJ(1.0, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, lj.Phi(1.0), "φ(σ) = 0")

	rMin, phiMin, err := lj.Minimum()
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(2, 1.0/6.0), rMin, 1e-15)
	assert.Equal(t, -1.0, phiMin)
	assert.InDelta(t, -1.0, lj.Phi(rMin), 1e-14)

	_, dphi := lj.PhiDPhi(rMin)
	assert.InDelta(t, 0.0, dphi, 1e-12, "force vanishes at the minimum")

	t.Logf("✓ LJ minimum at r=%.10f, φ=%.1f", rMin, phiMin)
}

func TestPotentials_PhiDPhiConsistent(t *testing.T) {
	cfg := DefaultAssertionConfig()

	lj, _ := NewLJ(1.0, 1.0)
	nm, _ := NewNM(10, 5, 1.2, 0.8)
	yk, _ := NewYukawa(1.8, 1.0, 1.0)

	// Radii avoid the minimum, where dphi crosses zero.
	AssertPhiDPhiConsistent(t, lj, []float64{0.9, 1.0, 1.5, 2.0, 3.0}, cfg)
	AssertPhiDPhiConsistent(t, nm, []float64{1.1, 1.2, 2.0, 3.0}, cfg)
	AssertPhiDPhiConsistent(t, yk, []float64{1.1, 1.5, 2.5}, cfg)
}

func TestNM_ReducesToLJ(t *testing.T) {
	lj, _ := NewLJ(1.1, 0.7)
	nm, err := NewNM(12, 6, 1.1, 0.7)
	require.NoError(t, err)

	for _, r := range []float64{0.95, 1.1, 1.3, 2.0, 4.0} {
		assert.InDelta(t, lj.Phi(r), nm.Phi(r), 1e-12, "r=%g", r)
	}

	rLJ, _, _ := lj.Minimum()
	rNM, phiNM, _ := nm.Minimum()
	assert.InDelta(t, rLJ, rNM, 1e-14)
	assert.InDelta(t, -0.7, nm.Phi(rNM), 1e-12)
	assert.Equal(t, -0.7, phiNM)

	t.Logf("✓ NM(12, 6) matches LJ")
}

func TestPotentials_InvalidParams(t *testing.T) {
	_, err := NewNM(6, 12, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewSW(1, 1, 1.0)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewLJ(0, 1)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewHS(math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestHardCores(t *testing.T) {
	sw, _ := NewSW(1.0, 1.0, 1.5)
	hs, _ := NewHS(1.0)
	yk, _ := NewYukawa(1.8, 1.0, 1.0)

	for _, p := range []Potential{sw, hs, yk} {
		assert.True(t, math.IsInf(p.Phi(0.5), 1), "%T inside core", p)
	}

	assert.Equal(t, -1.0, sw.Phi(1.0))
	assert.Equal(t, -1.0, sw.Phi(1.49))
	assert.Equal(t, 0.0, sw.Phi(1.5))
	assert.Equal(t, []float64{0, 1, 1.5}, sw.Segments())

	assert.Equal(t, 0.0, hs.Phi(1.0))
	_, _, err := hs.Minimum()
	assert.ErrorIs(t, err, ErrNoMinimum)

	assert.InDelta(t, -1.0, yk.Phi(1.0), 1e-15)
	assert.Equal(t, []float64{0, 1, math.Inf(1)}, yk.Segments())
}

func TestEvaluate(t *testing.T) {
	hs, _ := NewHS(1.0)
	out := Evaluate(hs, []float64{0.5, 1.0, 2.0})

	require.Len(t, out, 3)
	assert.True(t, math.IsInf(out[0], 1))
	assert.Equal(t, []float64{0, 0}, out[1:])
}

func TestCut(t *testing.T) {
	lj, _ := NewLJ(1.0, 1.0)
	cut, err := NewCut(lj, 2.5)
	require.NoError(t, err)

	assert.Equal(t, lj.Phi(2.0), cut.Phi(2.0))
	assert.Equal(t, 0.0, cut.Phi(2.5))
	assert.Equal(t, 0.0, cut.Phi(10))
	assert.Equal(t, []float64{0, 2.5}, cut.Segments())

	rMin, phiMin, err := cut.Minimum()
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(2, 1.0/6.0), rMin, 1e-15)
	assert.Equal(t, -1.0, phiMin)

	short, _ := NewCut(lj, 1.0)
	_, _, err = short.Minimum()
	assert.ErrorIs(t, err, ErrNoMinimum)

	_, err = NewCut(lj, 0)
	assert.ErrorIs(t, err, ErrMissingCutoff)

	t.Logf("✓ Cut at 2.5: φ(2.499)=%.6f, φ(2.5)=0", cut.Phi(2.499))
}

func TestLFS_ContinuousAtCutoff(t *testing.T) {
	lj, _ := NewLJ(1.0, 1.0)
	rc := 2.5
	lfs, err := NewLFS(lj, rc)
	require.NoError(t, err)

	below := rc * (1 - 1e-9)
	v, dv := lfs.PhiDPhi(below)
	assert.InDelta(t, 0.0, v, 1e-9, "φ → 0 at the cutoff")
	assert.InDelta(t, 0.0, dv, 1e-8, "force → 0 at the cutoff")

	v, dv = lfs.PhiDPhi(rc)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, 0.0, dv)

	assert.Equal(t, []float64{0, rc}, lfs.Segments())
	AssertPhiDPhiConsistent(t, lfs, []float64{0.9, 1.0, 1.5, 2.0, 2.4}, DefaultAssertionConfig())

	rMin, phiMin, err := lfs.Minimum()
	require.NoError(t, err)
	assert.InDelta(t, 1.12, rMin, 0.05)
	assert.Greater(t, phiMin, -1.0, "the shift makes the well shallower")
	assert.Less(t, phiMin, -0.85)

	t.Logf("✓ LFS at %.1f: minimum φ(%.5f) = %.6f", rc, rMin, phiMin)
}

func TestLFS_HardCoreBase(t *testing.T) {
	yk, _ := NewYukawa(1.8, 1.0, 1.0)
	lfs, err := NewLFS(yk, 3.0)
	require.NoError(t, err)

	assert.True(t, math.IsInf(lfs.Phi(0.5), 1))

	rMin, phiMin, err := lfs.Minimum()
	require.NoError(t, err)
	assert.Equal(t, 1.0, rMin, "minimum stays at contact")
	assert.Equal(t, lfs.Phi(1.0), phiMin)
}

func TestLFS_NonFiniteCutoff(t *testing.T) {
	hs, _ := NewHS(1.0)
	_, err := NewLFS(hs, 0.5)
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestCubicTable_MatchesLJ(t *testing.T) {
	lj, _ := NewLJ(1.0, 1.0)

	table, err := CubicTableFromPhi(lj.Phi, 0.8, 3.0, 1e-4)
	require.NoError(t, err)

	smin, smax := table.Bounds()
	assert.InDelta(t, 0.64, smin, 1e-15)
	assert.InDelta(t, 9.0, smax, 1e-15)
	assert.Greater(t, table.Len(), 80000)
	assert.InDeltaSlice(t, []float64{0.8, 3.0}, table.Segments(), 1e-15)

	for _, r := range []float64{0.9, 1.0, 1.2, 1.7, 2.5} {
		want, wantD := lj.PhiDPhi(r)
		got, gotD := table.PhiDPhi(r)
		assert.InDelta(t, want, got, 1e-6*math.Max(1, math.Abs(want)), "phi at r=%g", r)
		assert.InDelta(t, wantD, gotD, 1e-3*math.Max(1, math.Abs(wantD)), "dphi at r=%g", r)
	}

	assert.Equal(t, 0.0, table.Phi(3.5), "zero beyond the table")

	rMin, phiMin, err := table.Minimum()
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(2, 1.0/6.0), rMin, 1e-4)
	assert.InDelta(t, -1.0, phiMin, 1e-6)

	t.Logf("✓ Cubic table of %d entries, minimum φ(%.6f) = %.8f", table.Len(), rMin, phiMin)
}

func TestCubicTable_Invalid(t *testing.T) {
	_, err := NewCubicTable(0, 1, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewCubicTable(1, 0, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewCubicTable(0, 1, []float64{1, math.Inf(1)})
	assert.ErrorIs(t, err, ErrDomain)

	_, err = CubicTableFromPhi(func(float64) float64 { return 0 }, 1, 2, 10)
	assert.ErrorIs(t, err, ErrInvalidParam)
}
