package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTemplateCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Load a template and print its flattened graph and feedback loops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTemplate(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, t.String())

			loops := t.FeedbackLoops()
			fmt.Fprintf(out, "feedback loops: %d\n", len(loops))
			for _, loop := range loops {
				fmt.Fprintf(out, "  %s -> %s\n", strings.Join(loop, " -> "), loop[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "template id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
