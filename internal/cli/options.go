package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"campaign-ids/internal/core/domain"
)

type options struct {
	Platforms     map[string]string `json:"platforms"`
	Objectives    map[string]string `json:"objectives"`
	Genders       []string          `json:"genders"`
	Devices       []string          `json:"devices"`
	LocationTypes []string          `json:"location_types"`
	MinAge        int               `json:"min_age"`
	MaxAge        int               `json:"max_age"`
}

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List recognized platforms, objectives and targeting values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options{
				Platforms:     make(map[string]string, len(domain.Platforms)),
				Objectives:    make(map[string]string, len(domain.Objectives)),
				Genders:       domain.Genders,
				Devices:       domain.Devices,
				LocationTypes: domain.LocationTypes,
				MinAge:        domain.MinAge,
				MaxAge:        domain.MaxAge,
			}
			var rows [][]string
			for _, p := range domain.Platforms {
				opts.Platforms[p.Code()] = string(p)
				rows = append(rows, []string{"platform", p.Code(), string(p)})
			}
			for _, o := range domain.Objectives {
				opts.Objectives[o.Code()] = string(o)
				rows = append(rows, []string{"objective", o.Code(), string(o)})
			}
			rows = append(rows,
				[]string{"gender", "", join(domain.Genders)},
				[]string{"device", "", join(domain.Devices)},
				[]string{"location type", "", join(domain.LocationTypes)},
				[]string{"age", "", fmt.Sprintf("%d-%d", domain.MinAge, domain.MaxAge)},
			)
			return a.print(cmd.OutOrStdout(), opts, []string{"Kind", "Code", "Values"}, rows)
		},
	}
}
