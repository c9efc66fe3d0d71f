package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/catalog"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and convert the part catalog",
	}
	cmd.AddCommand(newCatalogInfoCmd(a), newCatalogSnapshotCmd(a))
	return cmd
}

func newCatalogInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print part counts per kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range biopart.Kinds() {
				fmt.Fprintf(out, "%-15s %d\n", k, c.Len(k))
			}
			fmt.Fprintf(out, "%-15s %d\n", "libraries", len(c.Libraries()))
			return nil
		},
	}
}

func newCatalogSnapshotCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write the catalog as a compressed snapshot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog()
			if err != nil {
				return err
			}
			if err := catalog.SaveSnapshot(c, out); err != nil {
				return err
			}
			a.logger.Info("snapshot written", logging.Path(out))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "snapshot path, conventionally ending in .snap")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
