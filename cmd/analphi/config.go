package main

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/alexshd/analphi"
)

// RunConfig describes one CLI run. It is read from YAML and then overlaid
// with command-line flags.
type RunConfig struct {
	Potential PotentialConfig `yaml:"potential"`
	Betas     []float64       `yaml:"betas"`
	BetaRange *BetaRange      `yaml:"beta_range"`
	Props     []string        `yaml:"props"`
	KeyFormat string          `yaml:"key_format"`
	Quad      QuadConfig      `yaml:"quad"`
	Minimize  MinimizeConfig  `yaml:"minimize"`
	Workers   int             `yaml:"workers"`
	Output    string          `yaml:"output"`
}

type PotentialConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
	Cut    bool           `yaml:"cut"`
	LFS    bool           `yaml:"lfs"`
	RCut   float64        `yaml:"rcut"`
}

// BetaRange is an evenly spaced grid of inverse temperatures, endpoints included.
type BetaRange struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Num   int     `yaml:"num"`
}

type QuadConfig struct {
	AbsTol float64 `yaml:"abs_tol"`
	RelTol float64 `yaml:"rel_tol"`
	Limit  int     `yaml:"limit"`
	Order  int     `yaml:"order"`
}

type MinimizeConfig struct {
	R0     float64   `yaml:"r0"`
	Bounds []float64 `yaml:"bounds"`
}

// DefaultRunConfig returns a Lennard-Jones run at β = 1.
func DefaultRunConfig() RunConfig {
	q := analphi.DefaultQuadConfig()
	return RunConfig{
		Potential: PotentialConfig{Name: "lj"},
		Betas:     []float64{1.0},
		Quad: QuadConfig{
			AbsTol: q.AbsTol,
			RelTol: q.RelTol,
			Limit:  q.Limit,
			Order:  q.Order,
		},
		Output: "tsv",
	}
}

// LoadConfig reads a YAML run file over the defaults.
func LoadConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports configuration errors before any computation runs.
func (c RunConfig) Validate() error {
	if c.Potential.Name == "" {
		return fmt.Errorf("potential.name is required")
	}
	if _, err := analphi.ParseFamily(c.Potential.Name); err != nil {
		return err
	}
	if (c.Potential.Cut || c.Potential.LFS) && !(c.Potential.RCut > 0) {
		return fmt.Errorf("%w: potential.rcut", analphi.ErrMissingCutoff)
	}
	if r := c.BetaRange; r != nil && r.Num < 2 {
		return fmt.Errorf("beta_range.num must be at least 2, got %d", r.Num)
	}
	for _, p := range c.Props {
		if _, err := analphi.ParseProperty(p); err != nil {
			return err
		}
	}
	switch c.Output {
	case "", "tsv", "yaml":
	default:
		return fmt.Errorf("output must be tsv or yaml, got %q", c.Output)
	}
	return nil
}

// BetaValues expands BetaRange when set, otherwise returns Betas.
func (c RunConfig) BetaValues() []float64 {
	if r := c.BetaRange; r != nil && r.Num >= 2 {
		return floats.Span(make([]float64, r.Num), r.Start, r.Stop)
	}
	return c.Betas
}

// Properties returns the parsed property list.
func (c RunConfig) Properties() ([]analphi.Property, error) {
	props := make([]analphi.Property, 0, len(c.Props))
	for _, name := range c.Props {
		p, err := analphi.ParseProperty(name)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

// QuadSettings converts to the library settings, keeping defaults for unset fields.
func (c RunConfig) QuadSettings() analphi.QuadConfig {
	q := analphi.DefaultQuadConfig()
	if c.Quad.AbsTol > 0 {
		q.AbsTol = c.Quad.AbsTol
	}
	if c.Quad.RelTol > 0 {
		q.RelTol = c.Quad.RelTol
	}
	if c.Quad.Limit > 0 {
		q.Limit = c.Quad.Limit
	}
	if c.Quad.Order > 0 {
		q.Order = c.Quad.Order
	}
	return q
}

// BuildPotential constructs the configured potential.
func (c RunConfig) BuildPotential() (analphi.Potential, error) {
	return analphi.NewPotential(c.Potential.Name, c.Potential.Params, analphi.Truncation{
		Cut:  c.Potential.Cut,
		LFS:  c.Potential.LFS,
		RCut: c.Potential.RCut,
	})
}
