// Package analphi analyzes pair potentials from statistical mechanics.
//
// # Overview
//
// analphi evaluates integral properties of a pair potential φ(r): the second
// virial coefficient B₂(β) and its temperature derivative, information
// divergences between distributions, and the Noro-Frenkel reduction of an
// arbitrary attractive-repulsive potential to an effective square well.
// Everything is deterministic numerical evaluation; nothing is sampled.
//
// # Architecture
//
// The package components:
//
//   - potential.go   - Potential contract, Cut and LFS truncations
//   - potentials.go  - LJ, NM, SW, HS, Yukawa
//   - cubic.go       - CubicTable, a tabulated potential
//   - factory.go     - NewPotential by family name
//   - segments.go    - breakpoint validation and combination
//   - quad.go        - segmented adaptive quadrature
//   - minimize.go    - minimum locator
//   - measures.go    - B₂, dB₂/dβ, KL and JS divergences
//   - norofrenkel.go - effective σ, ε, λ and their β derivatives
//   - table.go       - parallel effective-parameter tables
//   - assertions.go  - test helpers for potentials and reductions
//   - errors.go      - sentinel errors
//
// The analphi command (cmd/analphi) exposes tables, B₂ and minima from the
// shell.
//
// # Quick Start
//
// Second virial coefficient of a Lennard-Jones fluid:
//
//	lj, _ := analphi.NewLJ(1.0, 1.0)
//
//	b2, err := analphi.SecondVirial(lj.Phi, 1.0, lj.Segments(), analphi.DefaultQuadConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("B2 = %.6f ± %.1e\n", b2.Value, b2.AbsErr)
//
// # Segments
//
// Potentials report breakpoints where their functional form changes: a hard
// core, the edge of a square well, a cutoff. The quadrature engine integrates
// each segment independently, so discontinuities never fall inside a panel.
// The first breakpoint may be 0 and the last may be +Inf:
//
//	sw, _ := analphi.NewSW(1.0, 1.0, 1.5)
//	sw.Segments() // [0 1 1.5]
//
// A hard core evaluates to +Inf. Integrands treat that as a defined value
// (Boltzmann factor 0, φ·exp(-βφ) = 0) rather than producing NaN.
//
// # Noro-Frenkel
//
// The reduction splits φ at its minimum. The repulsive branch gives the
// Barker-Henderson diameter
//
//	σ(β) = ∫ (1 - exp(-β φ_rep(r))) dr
//
// the depth is ε = -φ_min, and the width comes from matching B₂ to the
// square-well form
//
//	B₂ = (2π/3) σ³ [1 + (1 - exp(βε)) (λ³ - 1)]
//
// which inverts for λ in closed form:
//
//	nf, _ := analphi.NoroFrenkelFromPotential(lj)
//
//	table, err := nf.Table(ctx, []float64{0.5, 1.0, 2.0}, analphi.TableConfig{
//	    Props: []analphi.Property{analphi.PropSig, analphi.PropLam, analphi.PropLamDBeta},
//	})
//
// dλ/dβ is exact: implicit differentiation through B₂, dB₂/dβ, σ and dσ/dβ,
// not a finite difference.
//
// # Errors
//
// Configuration errors (unknown family, missing cutoff, bad segments) are
// returned immediately. Quadrature or minimizer non-convergence wraps
// ErrNotConverged; set QuadConfig.FullOutput to get per-segment diagnostics
// instead of a failure. Nothing is retried: the computation is deterministic.
//
// # Concurrency
//
// Potentials and NoroFrenkelPair are immutable after construction and safe
// to share across goroutines. Table rows are independent and run in parallel.
package analphi
