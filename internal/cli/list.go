package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"campaign-ids/internal/core/domain"
)

// filterFlags holds the search flags shared by list and export.
type filterFlags struct {
	platforms  []string
	objectives []string
	query      string
	createdBy  string
	interests  []string
	locations  []string
	languages  []string
	devices    []string
	custom     map[string]string
	from       string
	to         string
	limit      int
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&ff.platforms, "platform", "p", nil, "Filter by platform")
	f.StringSliceVarP(&ff.objectives, "objective", "o", nil, "Filter by objective")
	f.StringVarP(&ff.query, "query", "q", "", "Substring of the ID or platform")
	f.StringVarP(&ff.createdBy, "created-by", "m", "", "Filter by marketing manager")
	f.StringSliceVar(&ff.interests, "interest", nil, "Filter by interest")
	f.StringSliceVar(&ff.locations, "location", nil, "Filter by location")
	f.StringSliceVar(&ff.languages, "language", nil, "Filter by language")
	f.StringSliceVar(&ff.devices, "device", nil, "Filter by device")
	f.StringToStringVar(&ff.custom, "custom", nil, "Filter by custom key=value criteria")
	f.StringVar(&ff.from, "from", "", "Created at or after (RFC3339 or YYYY-MM-DD)")
	f.StringVar(&ff.to, "to", "", "Created at or before (RFC3339 or YYYY-MM-DD)")
	f.IntVarP(&ff.limit, "limit", "l", 0, "Max results (0 for all)")
}

func (ff *filterFlags) filter() (domain.Filter, error) {
	f := domain.Filter{
		Query:     ff.query,
		CreatedBy: ff.createdBy,
		Interests: ff.interests,
		Locations: ff.locations,
		Languages: ff.languages,
		Devices:   ff.devices,
		Custom:    ff.custom,
		Limit:     ff.limit,
	}
	for _, v := range ff.platforms {
		p, err := domain.ParsePlatform(v)
		if err != nil {
			return f, err
		}
		f.Platforms = append(f.Platforms, p)
	}
	for _, v := range ff.objectives {
		o, err := domain.ParseObjective(v)
		if err != nil {
			return f, err
		}
		f.Objectives = append(f.Objectives, o)
	}
	var err error
	if ff.from != "" {
		if f.CreatedFrom, err = domain.ParseBound(ff.from, false); err != nil {
			return f, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if ff.to != "" {
		if f.CreatedTo, err = domain.ParseBound(ff.to, true); err != nil {
			return f, fmt.Errorf("invalid --to: %w", err)
		}
	}
	if f.Limit < 0 {
		return f, fmt.Errorf("invalid --limit %d", f.Limit)
	}
	return f, nil
}

func newListCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"search", "ls"},
		Short:   "List recorded campaigns",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			records, err := svc.Search(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			return a.print(cmd.OutOrStdout(), records, recordHeader, recordRows(records))
		},
	}
	ff.register(cmd)
	return cmd
}
