package commands

import (
	"fmt"

	"github.com/de-tools/gym-reports/pkg/services/report"
	"github.com/spf13/cobra"
)

func NewFamiliesCmd(registry report.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the available report families",
		RunE: func(cmd *cobra.Command, _ []string) error {
			families := registry.Families()
			if len(families) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No report families registered")
				return nil
			}
			for _, f := range families {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}
