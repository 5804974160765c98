package analphi

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Family identifies a potential formula.
type Family int

const (
	FamilyLJ Family = iota // Lennard-Jones
	FamilyNM               // n-m (Mie)
	FamilySW               // square well
	FamilyHS               // hard sphere
	FamilyYK               // hard-core Yukawa
)

var familyNames = map[Family]string{
	FamilyLJ: "lj",
	FamilyNM: "nm",
	FamilySW: "sw",
	FamilyHS: "hs",
	FamilyYK: "yk",
}

// familyParams lists accepted parameters and their defaults.
var familyParams = map[Family]map[string]float64{
	FamilyLJ: {"sig": 1.0, "eps": 1.0},
	FamilyNM: {"n": 12, "m": 6, "sig": 1.0, "eps": 1.0},
	FamilySW: {"sig": 1.0, "eps": 1.0, "lam": 1.5},
	FamilyHS: {"sig": 1.0},
	FamilyYK: {"z": 1.0, "sig": 1.0, "eps": 1.0},
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily maps a case-insensitive name (lj, nm, sw, hs, yk) to a Family.
func ParseFamily(name string) (Family, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for f, n := range familyNames {
		if n == lower {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q must be one of lj, nm, sw, hs, yk", ErrInvalidName, name)
}

// Truncation selects an optional cutoff decorator.
// Cut takes precedence when both flags are set.
type Truncation struct {
	Cut  bool
	LFS  bool
	RCut float64
}

// NewPotential builds a potential by family name.
//
// params holds family-specific values keyed by parameter name (sig, eps,
// lam, n, m, z). Values may be any type spf13/cast converts to a number, so
// YAML or flag strings pass through unchanged. Missing parameters take their
// defaults; unknown ones are rejected.
func NewPotential(name string, params map[string]any, trunc Truncation) (Potential, error) {
	family, err := ParseFamily(name)
	if err != nil {
		return nil, err
	}

	vals, err := resolveParams(family, params)
	if err != nil {
		return nil, err
	}

	var phi Potential
	switch family {
	case FamilyLJ:
		phi, err = NewLJ(vals["sig"], vals["eps"])
	case FamilyNM:
		phi, err = NewNM(int(vals["n"]), int(vals["m"]), vals["sig"], vals["eps"])
	case FamilySW:
		phi, err = NewSW(vals["sig"], vals["eps"], vals["lam"])
	case FamilyHS:
		phi, err = NewHS(vals["sig"])
	case FamilyYK:
		phi, err = NewYukawa(vals["z"], vals["sig"], vals["eps"])
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidName, family)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", family, err)
	}

	switch {
	case trunc.Cut:
		c, err := NewCut(phi, trunc.RCut)
		if err != nil {
			return nil, err
		}
		return c, nil
	case trunc.LFS:
		l, err := NewLFS(phi, trunc.RCut)
		if err != nil {
			return nil, err
		}
		return l, nil
	}

	return phi, nil
}

func resolveParams(family Family, params map[string]any) (map[string]float64, error) {
	defaults := familyParams[family]

	vals := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		vals[k] = v
	}

	for key, raw := range params {
		k := strings.ToLower(key)
		if _, ok := defaults[k]; !ok {
			return nil, fmt.Errorf("%w: %s does not take %q (accepts %s)",
				ErrInvalidParam, family, key, strings.Join(paramNames(defaults), ", "))
		}

		x, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%v: %v", ErrInvalidParam, key, raw, err)
		}
		// Exponents are integers; 12.5 is an error, not 12.
		if (k == "n" || k == "m") && (x != math.Trunc(x) || math.IsInf(x, 0)) {
			return nil, fmt.Errorf("%w: %s=%v is not an integer", ErrInvalidParam, key, raw)
		}
		vals[k] = x
	}

	return vals, nil
}

func paramNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
