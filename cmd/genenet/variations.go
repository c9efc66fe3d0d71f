package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/wiring"
)

// Mutation kinds
const (
	mutateRBS      = "rbs"
	mutatePromoter = "promoter"
	mutateTF       = "tf"
)

func newVariationsCmd(a *app) *cobra.Command {
	var (
		settingsPath string
		text         string
		mutate       string
		seed         uint64
	)
	cmd := &cobra.Command{
		Use:   "variations",
		Short: "List part variations of a device, or apply one random mutation",
		Long: `Without --mutate, prints every device that differs from the given one in
a single gene's promoter (within its library) or RBS.

With --mutate rbs|promoter|tf, prints one randomly mutated device. A tf
mutation rewires one expressed TF and re-derives the affected promoters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				a.cfg.Seed = seed
			}
			s, cat, err := a.newSolver(settingsPath)
			if err != nil {
				return err
			}
			d, err := biopart.ParseDevice(text, cat)
			if err != nil {
				return err
			}

			if mutate == "" {
				return writeDevices(cmd.OutOrStdout(), s.Variations(d))
			}
			m, changed, err := applyMutation(s, d, mutate)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.ErrOrStderr(), "no mutation possible")
				return nil
			}
			return writeDevices(cmd.OutOrStdout(), []*biopart.Device{m})
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", "", "circuit settings file")
	cmd.Flags().StringVar(&text, "device", "", "device text")
	cmd.Flags().StringVar(&mutate, "mutate", "", "rbs, promoter or tf")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default from GENENET_SEED)")
	_ = cmd.MarkFlagRequired("settings")
	_ = cmd.MarkFlagRequired("device")
	return cmd
}

func applyMutation(s *wiring.Solver, d *biopart.Device, kind string) (*biopart.Device, bool, error) {
	switch kind {
	case mutateRBS:
		m, ok := s.MutateRBS(d)
		return m, ok, nil
	case mutatePromoter:
		m, ok := s.MutatePromoterStrength(d)
		return m, ok, nil
	case mutateTF:
		m, ok := s.MutateTF(d)
		return m, ok, nil
	}
	return nil, false, fmt.Errorf("unknown mutation %q (want rbs, promoter or tf)", kind)
}
