package analphi

import (
	"fmt"
	"math"
)

// CubicTable is a potential tabulated on a uniform grid in s = r².
//
// Sampling in r² keeps the spacing fine where a steep repulsive core lives
// and avoids a square root in the evaluation path. Values are interpolated
// from the three nearest entries with forward differences; beyond the
// upper bound the potential is 0.
type CubicTable struct {
	smin, smax float64
	values     []float64
	dsinv      float64
}

// NewCubicTable builds a table from values sampled at s = smin + i·ds,
// where ds = (smax - smin)/(len(values) - 1).
func NewCubicTable(smin, smax float64, values []float64) (*CubicTable, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: cubic table needs at least 2 values, got %d", ErrInvalidParam, len(values))
	}
	if !(smin >= 0 && smax > smin) || math.IsInf(smax, 0) {
		return nil, fmt.Errorf("%w: cubic table bounds [%g, %g]", ErrInvalidParam, smin, smax)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: cubic table value %d is %g", ErrDomain, i, v)
		}
	}

	size := len(values) - 1
	t := &CubicTable{
		smin:   smin,
		smax:   smax,
		values: append([]float64(nil), values...),
		dsinv:  float64(size) / (smax - smin),
	}
	return t, nil
}

// CubicTableFromPhi samples phi between rmin and rmax with spacing close to
// ds in r². The spacing is shrunk so the range holds a whole number of steps.
func CubicTableFromPhi(phi PhiFunc, rmin, rmax, ds float64) (*CubicTable, error) {
	if !(rmax > rmin && rmin >= 0 && ds > 0) {
		return nil, fmt.Errorf("%w: rmin=%g rmax=%g ds=%g", ErrInvalidParam, rmin, rmax, ds)
	}

	smin, smax := rmin*rmin, rmax*rmax
	delta := smax - smin

	size := int(delta / ds)
	if size < 1 {
		return nil, fmt.Errorf("%w: ds=%g larger than table span %g", ErrInvalidParam, ds, delta)
	}
	ds = delta / float64(size)

	values := make([]float64, size+1)
	for i := range values {
		values[i] = phi(math.Sqrt(float64(i)*ds + smin))
	}

	return NewCubicTable(smin, smax, values)
}

// Len returns the number of table entries.
func (t *CubicTable) Len() int { return len(t.values) }

// Bounds returns the table limits in s = r².
func (t *CubicTable) Bounds() (smin, smax float64) { return t.smin, t.smax }

func (t *CubicTable) at(k int) float64 {
	if k < 0 {
		k = 0
	}
	if k > len(t.values)-1 {
		k = len(t.values) - 1
	}
	return t.values[k]
}

func (t *CubicTable) PhiDPhi(r float64) (float64, float64) {
	s := r * r
	if s > t.smax {
		return 0, 0
	}

	sds := (s - t.smin) * t.dsinv
	k := int(sds)
	if k < 0 {
		k = 0
	}
	xi := sds - float64(k)

	t0, t1, t2 := t.at(k), t.at(k+1), t.at(k+2)
	dt := t1 - t0
	ddt := (t2 - t1) - dt

	v := t0 + xi*(dt+0.5*(xi-1.0)*ddt)
	dv := -2.0 * t.dsinv * (dt + (xi-0.5)*ddt)

	return v, dv
}

func (t *CubicTable) Phi(r float64) float64 {
	v, _ := t.PhiDPhi(r)
	return v
}

func (t *CubicTable) Segments() []float64 {
	return []float64{math.Sqrt(t.smin), math.Sqrt(t.smax)}
}

// Minimum is found with a bounded search over the table range.
func (t *CubicTable) Minimum() (float64, float64, error) {
	cfg := DefaultMinimizeConfig()
	cfg.Bounds = t.Segments()

	res, err := LocateMinimum(t.Phi, 0, cfg)
	if err != nil {
		return 0, 0, err
	}
	return res.R, res.Phi, nil
}
