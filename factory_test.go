package analphi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	tests := map[string]Family{
		"lj":   FamilyLJ,
		"LJ":   FamilyLJ,
		"Nm":   FamilyNM,
		" sw ": FamilySW,
		"HS":   FamilyHS,
		"yk":   FamilyYK,
	}

	for name, want := range tests {
		got, err := ParseFamily(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFamily("morse")
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.Equal(t, "yk", FamilyYK.String())
	assert.Equal(t, "Family(42)", Family(42).String())
}

func TestNewPotential_Families(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		want   Potential
	}{
		{"lj", nil, LJ{Sig: 1, Eps: 1}},
		{"LJ", map[string]any{"sig": "1.5", "EPS": 2}, LJ{Sig: 1.5, Eps: 2}},
		{"nm", map[string]any{"n": "10", "m": 5.0}, NM{N: 10, M: 5, Sig: 1, Eps: 1}},
		{"sw", map[string]any{"lam": 1.25}, SW{Sig: 1, Eps: 1, Lam: 1.25}},
		{"hs", map[string]any{"sig": 2}, HS{Sig: 2}},
		{"yk", map[string]any{"z": "1.8"}, Yukawa{Z: 1.8, Sig: 1, Eps: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPotential(tt.name, tt.params, Truncation{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}

	t.Logf("✓ %d families built from untyped parameters", len(tests))
}

func TestNewPotential_Truncation(t *testing.T) {
	p, err := NewPotential("lj", nil, Truncation{Cut: true, RCut: 2.5})
	require.NoError(t, err)
	assert.IsType(t, &Cut{}, p)

	p, err = NewPotential("lj", nil, Truncation{LFS: true, RCut: 2.5})
	require.NoError(t, err)
	assert.IsType(t, &LFS{}, p)

	p, err = NewPotential("lj", nil, Truncation{Cut: true, LFS: true, RCut: 2.5})
	require.NoError(t, err)
	assert.IsType(t, &Cut{}, p, "cut takes precedence")

	// Failed truncations return an untyped nil, not a nil *Cut or *LFS.
	p, err = NewPotential("lj", nil, Truncation{Cut: true})
	assert.ErrorIs(t, err, ErrMissingCutoff)
	assert.True(t, p == nil, "got %#v", p)

	p, err = NewPotential("sw", nil, Truncation{LFS: true})
	assert.ErrorIs(t, err, ErrMissingCutoff)
	assert.True(t, p == nil, "got %#v", p)

	p, err = NewPotential("hs", nil, Truncation{LFS: true, RCut: 0.5})
	assert.ErrorIs(t, err, ErrDomain)
	assert.True(t, p == nil, "got %#v", p)
}

func TestNewPotential_Errors(t *testing.T) {
	_, err := NewPotential("morse", nil, Truncation{})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewPotential("lj", map[string]any{"lam": 1.5}, Truncation{})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewPotential("lj", map[string]any{"sig": "wide"}, Truncation{})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewPotential("nm", map[string]any{"n": 6, "m": 12}, Truncation{})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewPotential("sw", map[string]any{"lam": 0.9}, Truncation{})
	assert.ErrorIs(t, err, ErrInvalidParam)

	// Exponents are never rounded
	for _, raw := range []any{12.5, "6.2", math.Inf(1), math.NaN()} {
		p, err := NewPotential("nm", map[string]any{"n": raw}, Truncation{})
		assert.ErrorIs(t, err, ErrInvalidParam, "n=%v", raw)
		assert.True(t, p == nil, "n=%v built %#v", raw, p)
	}

	p, err := NewPotential("nm", map[string]any{"n": 12.0, "m": "6"}, Truncation{})
	require.NoError(t, err)
	assert.Equal(t, NM{N: 12, M: 6, Sig: 1, Eps: 1}, p)
}
