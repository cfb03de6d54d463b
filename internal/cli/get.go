package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"campaign-ids/internal/core/domain"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <campaign-id>",
		Short: "Show a recorded campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			rec, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			return a.print(cmd.OutOrStdout(), rec, []string{"Field", "Value"}, detailRows(*rec))
		},
	}
}

type deleteResult struct {
	OK bool   `json:"ok"`
	ID string `json:"campaign_id"`
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <campaign-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a recorded campaign",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			if err = svc.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			res := deleteResult{OK: true, ID: args[0]}
			return a.print(cmd.OutOrStdout(), res, []string{"Deleted"}, [][]string{{res.ID}})
		},
	}
}

func detailRows(rec domain.CampaignRecord) [][]string {
	c := rec.Criteria
	t := c.Targeting
	rows := [][]string{
		{"ID", rec.ID},
		{"Created", rec.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Manager", c.CreatedBy},
		{"Platform", string(c.Platform)},
		{"Objective", string(c.Objective)},
		{"Budget", fmt.Sprint(c.Budget)},
		{"Start", c.StartDate.String()},
		{"End", c.EndDate.String()},
		{"Age", t.AgeRange()},
		{"Genders", join(t.Genders)},
		{"Languages", join(t.Languages)},
		{"Location type", t.LocationType},
		{"Locations", join(t.Locations)},
		{"Interests", join(t.Interests)},
		{"Behaviors", join(t.Behaviors)},
		{"Devices", join(t.Devices)},
		{"Custom audience", t.CustomAudience},
		{"Additional", t.Additional},
	}
	for _, k := range slices.Sorted(maps.Keys(t.Custom)) {
		rows = append(rows, []string{"Custom " + k, t.Custom[k]})
	}
	return rows
}
