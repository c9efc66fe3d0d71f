package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/catalog"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/settings"
	"github.com/dd0wney/cluso-genenet/pkg/wiring"
)

type solveOptions struct {
	settingsPath string
	mode         string
	seed         uint64
	maxSolutions int
	out          string
}

func newSolveCmd(a *app) *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Wire a template and print the resulting devices",
		Long: `Loads the circuit settings, the template they name and the catalog, then
searches for wirings and prints one device per line.

Modes:
  first   the first device in search order
  random  the first device after shuffling every candidate pool
  all     every device of every wiring`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				a.cfg.Seed = opts.seed
			}
			if cmd.Flags().Changed("max") {
				a.cfg.MaxSolutions = opts.maxSolutions
			}
			return runSolve(cmd, a, opts)
		},
	}
	cmd.Flags().StringVar(&opts.settingsPath, "settings", "", "circuit settings file")
	cmd.Flags().StringVar(&opts.mode, "mode", wiring.ModeFirst, "first, random or all")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from GENENET_SEED)")
	cmd.Flags().IntVar(&opts.maxSolutions, "max", 0, "stop after this many wirings in all mode, 0 for no cap")
	cmd.Flags().StringVar(&opts.out, "out", "", "write devices to this file instead of stdout")
	_ = cmd.MarkFlagRequired("settings")
	return cmd
}

// newSolver loads everything a wiring search needs from a settings file
func (a *app) newSolver(settingsPath string) (*wiring.Solver, *catalog.Catalog, error) {
	doc, err := settings.LoadFile(settingsPath)
	if err != nil {
		return nil, nil, err
	}
	tmpl, err := a.loadTemplate(doc.Template)
	if err != nil {
		return nil, nil, err
	}
	cat, err := a.loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	set, err := doc.Resolve(tmpl, cat)
	if err != nil {
		return nil, nil, err
	}
	s, err := wiring.NewSolver(tmpl, cat, set,
		wiring.WithSeed(a.cfg.Seed),
		wiring.WithMaxSolutions(a.cfg.MaxSolutions),
		wiring.WithLogger(a.logger),
		wiring.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, nil, err
	}
	return s, cat, nil
}

func runSolve(cmd *cobra.Command, a *app, opts *solveOptions) error {
	s, _, err := a.newSolver(opts.settingsPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var devices []*biopart.Device
	switch opts.mode {
	case wiring.ModeFirst, wiring.ModeRandom:
		var d *biopart.Device
		if opts.mode == wiring.ModeFirst {
			d, err = s.FirstDevice(ctx)
		} else {
			d, err = s.RandomDevice(ctx)
		}
		if d != nil {
			devices = append(devices, d)
		}
	case wiring.ModeAll:
		devices, err = s.AllDevices(ctx)
	default:
		return fmt.Errorf("unknown mode %q (want first, random or all)", opts.mode)
	}
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		a.logger.Info("no device found", logging.Template(s.Template().ID), logging.Mode(opts.mode))
		fmt.Fprintln(cmd.ErrOrStderr(), "no device found")
		return nil
	}

	w := cmd.OutOrStdout()
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.out, err)
		}
		defer f.Close()
		w = f
	}
	if err := writeDevices(w, devices); err != nil {
		return err
	}
	a.logger.Info("devices written", logging.Count(len(devices)), logging.Mode(opts.mode))
	return nil
}

func writeDevices(w io.Writer, devices []*biopart.Device) error {
	for _, d := range devices {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return fmt.Errorf("write devices: %w", err)
		}
	}
	return nil
}
