package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/constraints"
)

func newReportCmd(a *app) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Describe a device and check it against the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			d, err := biopart.ParseDevice(text, cat)
			if err != nil {
				return err
			}
			result, err := constraints.NewDeviceValidator(cat).Validate(d)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, d.Report())
			fmt.Fprintln(out, "Check:")
			fmt.Fprintln(out, result.String())
			if !result.Valid {
				return fmt.Errorf("device %s failed %d check(s)", d.Name,
					len(result.GetViolationsBySeverity(constraints.Error)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "device", "", "device text")
	_ = cmd.MarkFlagRequired("device")
	return cmd
}
