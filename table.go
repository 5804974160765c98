package analphi

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Property names a column of the effective-parameter table.
type Property string

const (
	PropB2       Property = "B2"        // Second virial coefficient
	PropB2DBeta  Property = "B2_dbeta"  // dB₂/dβ
	PropSig      Property = "sig"       // Effective diameter σ(β)
	PropSigDBeta Property = "sig_dbeta" // dσ/dβ
	PropEps      Property = "eps"       // Effective depth ε
	PropLam      Property = "lam"       // Effective width λ(β)
	PropLamDBeta Property = "lam_dbeta" // dλ/dβ
	PropB2SW     Property = "B2_sw"     // B₂ of the effective square well
)

// DefaultProperties are the columns produced when none are requested.
var DefaultProperties = []Property{PropB2, PropSig, PropEps, PropLam}

var allProperties = []Property{
	PropB2, PropB2DBeta, PropSig, PropSigDBeta, PropEps, PropLam, PropLamDBeta, PropB2SW,
}

// ParseProperty matches a property name, ignoring case.
func ParseProperty(name string) (Property, error) {
	for _, p := range allProperties {
		if strings.EqualFold(string(p), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProperty, name)
}

// TableConfig selects table columns.
type TableConfig struct {
	Props     []Property // Columns to compute; nil means DefaultProperties
	KeyFormat string     // fmt pattern with one %s for column keys; "" means "%s"
}

// Table is column oriented: each key maps to values aligned with "beta".
type Table map[string][]float64

// Eval computes one property at β.
func (nf *NoroFrenkelPair) Eval(prop Property, beta float64) (float64, error) {
	switch prop {
	case PropB2:
		return nf.SecondVirial(beta)
	case PropB2DBeta:
		return nf.SecondVirialDBeta(beta)
	case PropSig:
		return nf.Sig(beta)
	case PropSigDBeta:
		return nf.SigDBeta(beta)
	case PropEps:
		return nf.Eps(), nil
	case PropLam:
		return nf.Lam(beta)
	case PropLamDBeta:
		return nf.LamDBeta(beta)
	case PropB2SW:
		return nf.SecondVirialSW(beta)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProperty, prop)
}

// Table evaluates the requested properties at every β.
//
// Rows share no state, so they are computed concurrently on up to the
// configured number of workers. The first failure cancels the remaining
// rows and is returned.
func (nf *NoroFrenkelPair) Table(ctx context.Context, betas []float64, cfg TableConfig) (Table, error) {
	requested := cfg.Props
	if len(requested) == 0 {
		requested = DefaultProperties
	}
	props := make([]Property, len(requested))
	for i, p := range requested {
		parsed, err := ParseProperty(string(p))
		if err != nil {
			return nil, err
		}
		props[i] = parsed
	}

	keyFormat := cfg.KeyFormat
	if keyFormat == "" {
		keyFormat = "%s"
	}

	columns := make([][]float64, len(props))
	for i := range columns {
		columns[i] = make([]float64, len(betas))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(nf.workers)

	for row, beta := range betas {
		row, beta := row, beta
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for col, prop := range props {
				v, err := nf.Eval(prop, beta)
				if err != nil {
					return fmt.Errorf("%s at beta=%g: %w", prop, beta, err)
				}
				columns[col][row] = v
			}
			nf.logger.Debug("noro-frenkel row", "beta", beta, "props", len(props))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := Table{"beta": append([]float64(nil), betas...)}
	for col, prop := range props {
		table[fmt.Sprintf(keyFormat, prop)] = columns[col]
	}

	nf.logger.Debug("noro-frenkel table", "rows", len(betas), "columns", len(props))
	return table, nil
}
