package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"campaign-ids/internal/db"
)

func newSeedCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("invalid --count %d", count)
			}
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			records, err := db.Seed(cmd.Context(), svc, count)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), records, recordHeader, recordRows(records))
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of campaigns to generate")
	return cmd
}
