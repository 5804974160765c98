// Command analphi evaluates second virial coefficients and Noro-Frenkel
// effective square-well parameters of pair potentials.
//
// Example:
//
//	analphi table --potential lj --beta 0.5,1,2 --props B2,sig,lam
//	analphi table -c run.yaml --output yaml
//	analphi b2 --potential sw --param lam=1.5 --beta 1
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexshd/analphi"
)

// Version is set via ldflags during build.
var Version = "dev"

type flags struct {
	configPath string
	logLevel   string
	noColor    bool

	potential string
	params    map[string]string
	cut       bool
	lfs       bool
	rcut      float64
	betas     []float64
	props     []string
	keyFormat string
	workers   int
	output    string
	r0        float64
	bounds    []float64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:     "analphi",
		Short:   "Pair potential analysis: B2, divergences, Noro-Frenkel reduction",
		Version: Version,
		Long: `analphi maps pair potentials onto effective square wells.

Runs are described by a YAML file (--config) and/or flags; flags win.

Example:
  analphi table --potential lj --beta 0.5,1,2
  analphi table --potential nm --param n=10 --param m=5 --lfs --rcut 3
  analphi minimum --potential lj --lfs --rcut 2.5`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd.ErrOrStderr(), f.logLevel, f.noColor)
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Path to YAML run file")
	pf.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&f.noColor, "no-color", false, "Disable colored log output")
	pf.StringVarP(&f.potential, "potential", "p", "", "Potential family: lj, nm, sw, hs, yk")
	pf.StringToStringVar(&f.params, "param", nil, "Potential parameter key=value (repeatable)")
	pf.BoolVar(&f.cut, "cut", false, "Truncate at --rcut")
	pf.BoolVar(&f.lfs, "lfs", false, "Linear force shift at --rcut")
	pf.Float64Var(&f.rcut, "rcut", 0, "Cutoff radius")
	pf.Float64SliceVarP(&f.betas, "beta", "b", nil, "Inverse temperatures")
	pf.StringVarP(&f.output, "output", "o", "", "Output format: tsv, yaml")
	pf.Float64Var(&f.r0, "r0", 0, "Start the minimum search at r0 instead of using the closed form")
	pf.Float64SliceVar(&f.bounds, "bounds", nil, "Bounded minimum search lo,hi")

	root.AddCommand(newTableCmd(f), newB2Cmd(f), newMinimumCmd(f))
	return root
}

func newTableCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Tabulate effective square-well parameters over beta",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			nf, err := buildPair(cfg)
			if err != nil {
				return err
			}

			props, err := cfg.Properties()
			if err != nil {
				return err
			}
			if len(props) == 0 {
				props = analphi.DefaultProperties
			}

			betas := cfg.BetaValues()
			slog.Info("computing table", "potential", cfg.Potential.Name, "rows", len(betas), "props", len(props))

			table, err := nf.Table(cmd.Context(), betas, analphi.TableConfig{Props: props, KeyFormat: cfg.KeyFormat})
			if err != nil {
				return err
			}

			return writeTable(cmd.OutOrStdout(), cfg.Output, tableColumns(props, cfg.KeyFormat), table)
		},
	}

	cmd.Flags().StringSliceVar(&f.props, "props", nil, "Columns: B2, B2_dbeta, sig, sig_dbeta, eps, lam, lam_dbeta, B2_sw")
	cmd.Flags().StringVar(&f.keyFormat, "key-format", "", "Column key pattern with one %s")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Rows computed concurrently (default: GOMAXPROCS)")
	return cmd
}

func newB2Cmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "b2",
		Short: "Second virial coefficient and its beta derivative",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			p, err := cfg.BuildPotential()
			if err != nil {
				return err
			}

			quad := cfg.QuadSettings()
			table := analphi.Table{}
			for _, beta := range cfg.BetaValues() {
				b2, err := analphi.SecondVirial(p.Phi, beta, p.Segments(), quad)
				if err != nil {
					return err
				}
				d, err := analphi.SecondVirialDBeta(p.Phi, beta, p.Segments(), quad)
				if err != nil {
					return err
				}
				table["beta"] = append(table["beta"], beta)
				table["B2"] = append(table["B2"], b2.Value)
				table["B2_abserr"] = append(table["B2_abserr"], b2.AbsErr)
				table["B2_dbeta"] = append(table["B2_dbeta"], d.Value)
			}

			return writeTable(cmd.OutOrStdout(), cfg.Output, []string{"beta", "B2", "B2_abserr", "B2_dbeta"}, table)
		},
	}
}

func newMinimumCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "minimum",
		Short: "Locate the potential minimum",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			nf, err := buildPair(cfg)
			if err != nil {
				return err
			}

			table := analphi.Table{
				"r_min":   {nf.RMin()},
				"phi_min": {nf.PhiMin()},
			}
			return writeTable(cmd.OutOrStdout(), cfg.Output, []string{"r_min", "phi_min"}, table)
		},
	}
}

// resolveConfig loads the run file, if any, and overlays the flags that were set.
func resolveConfig(cmd *cobra.Command, f *flags) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = LoadConfig(f.configPath); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("potential") {
		cfg.Potential.Name = f.potential
	}
	if changed("param") {
		if cfg.Potential.Params == nil {
			cfg.Potential.Params = make(map[string]any, len(f.params))
		}
		for k, v := range f.params {
			cfg.Potential.Params[k] = v
		}
	}
	if changed("cut") {
		cfg.Potential.Cut = f.cut
	}
	if changed("lfs") {
		cfg.Potential.LFS = f.lfs
	}
	if changed("rcut") {
		cfg.Potential.RCut = f.rcut
	}
	if changed("beta") {
		cfg.Betas = f.betas
		cfg.BetaRange = nil
	}
	if changed("props") {
		cfg.Props = f.props
	}
	if changed("key-format") {
		cfg.KeyFormat = f.keyFormat
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("r0") {
		cfg.Minimize.R0 = f.r0
	}
	if changed("bounds") {
		cfg.Minimize.Bounds = f.bounds
	}

	return cfg, cfg.Validate()
}

// buildPair uses the potential's own minimum unless a numerical search was requested.
func buildPair(cfg RunConfig) (*analphi.NoroFrenkelPair, error) {
	p, err := cfg.BuildPotential()
	if err != nil {
		return nil, err
	}

	opts := []analphi.Option{
		analphi.WithQuadConfig(cfg.QuadSettings()),
		analphi.WithLogger(slog.Default()),
	}
	if cfg.Workers > 0 {
		opts = append(opts, analphi.WithWorkers(cfg.Workers))
	}

	if cfg.Minimize.R0 == 0 && cfg.Minimize.Bounds == nil {
		return analphi.NoroFrenkelFromPotential(p, opts...)
	}

	mcfg := analphi.DefaultMinimizeConfig()
	mcfg.Bounds = cfg.Minimize.Bounds
	nf, err := analphi.NoroFrenkelFromPhi(p.Phi, p.Segments(), cfg.Minimize.R0, mcfg, opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("numerical minimum", "r_min", nf.RMin(), "phi_min", nf.PhiMin())
	return nf, nil
}

func setupLogger(w io.Writer, level string, noColor bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}

	if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		noColor = true
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: "15:04:05",
			NoColor:    noColor,
		}),
	))
	return nil
}
