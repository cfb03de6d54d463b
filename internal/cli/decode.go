package cli

import (
	"github.com/spf13/cobra"

	"campaign-ids/internal/core/idcode"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <campaign-id>",
		Short: "Decode the platform, objective and time of a campaign ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := idcode.Decode(args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), parts,
				[]string{"Platform", "Objective", "Created", "Suffix"},
				[][]string{{
					string(parts.Platform),
					string(parts.Objective),
					parts.CreatedAt.Format("2006-01-02 15:04:05"),
					parts.Suffix,
				}},
			)
		},
	}
}
