package analphi

import (
	"context"
	"testing"
)

func BenchmarkSecondVirial_LJ(b *testing.B) {
	lj, _ := NewLJ(1.0, 1.0)
	cfg := DefaultQuadConfig()

	for i := 0; i < b.N; i++ {
		if _, err := SecondVirial(lj.Phi, 1.0, lj.Segments(), cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLamDBeta_LJ(b *testing.B) {
	lj, _ := NewLJ(1.0, 1.0)
	nf, err := NoroFrenkelFromPotential(lj)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		if _, err := nf.LamDBeta(1.0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTable_LJ(b *testing.B) {
	lj, _ := NewLJ(1.0, 1.0)
	nf, err := NoroFrenkelFromPotential(lj)
	if err != nil {
		b.Fatal(err)
	}

	betas := make([]float64, 32)
	for i := range betas {
		betas[i] = 0.25 + 0.05*float64(i)
	}
	cfg := TableConfig{Props: []Property{PropB2, PropSig, PropLam, PropLamDBeta}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := nf.Table(context.Background(), betas, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCubicTable_PhiDPhi(b *testing.B) {
	lj, _ := NewLJ(1.0, 1.0)
	table, err := CubicTableFromPhi(lj.Phi, 0.8, 3.0, 1e-4)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.PhiDPhi(1.0 + float64(i%1000)*1e-3)
	}
}
