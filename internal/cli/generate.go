package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"campaign-ids/internal/core/domain"
)

var recordHeader = []string{"ID", "Created", "Manager", "Platform", "Objective", "Budget", "Start", "End"}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		c         domain.Criteria
		start     string
		end       string
		genders   string
		languages string
		locations string
		interests string
		behaviors string
		devices   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a campaign ID",
		Long:  "Generate a campaign ID from targeting criteria and record it. List flags take comma separated values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if c.StartDate, err = domain.ParseDate(start); err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			if c.EndDate, err = domain.ParseDate(end); err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			c.Targeting.Genders = domain.SplitList(genders)
			c.Targeting.Languages = domain.SplitList(languages)
			c.Targeting.Locations = domain.SplitList(locations)
			c.Targeting.Interests = domain.SplitList(interests)
			c.Targeting.Behaviors = domain.SplitList(behaviors)
			c.Targeting.Devices = domain.SplitList(devices)

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			rec, err := svc.Generate(cmd.Context(), c)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			return a.print(cmd.OutOrStdout(), rec, recordHeader, [][]string{recordRow(*rec)})
		},
	}

	f := cmd.Flags()
	f.StringVarP((*string)(&c.Platform), "platform", "p", "", "Advertising platform (required)")
	f.StringVarP((*string)(&c.Objective), "objective", "o", "", "Campaign objective (required)")
	f.StringVarP(&c.CreatedBy, "created-by", "m", "", "Marketing manager (required)")
	f.Int64Var(&c.Budget, "budget", 0, "Budget in minor currency units")
	f.StringVar(&start, "start", "", "Start date, YYYY-MM-DD")
	f.StringVar(&end, "end", "", "End date, YYYY-MM-DD")
	f.IntVar(&c.Targeting.AgeMin, "age-min", 0, "Minimum audience age")
	f.IntVar(&c.Targeting.AgeMax, "age-max", 0, "Maximum audience age")
	f.StringVar(&genders, "genders", "", "Genders: Male, Female, All")
	f.StringVar(&languages, "languages", "", "Languages")
	f.StringVar(&c.Targeting.LocationType, "location-type", "", "Location type: Countries, Regions, Cities, Radius, Custom")
	f.StringVar(&locations, "locations", "", "Locations")
	f.StringVar(&interests, "interests", "", "Interests")
	f.StringVar(&behaviors, "behaviors", "", "Behaviors")
	f.StringVar(&devices, "devices", "", "Devices: Desktop, Mobile, Tablet, All")
	f.StringVar(&c.Targeting.CustomAudience, "custom-audience", "", "Custom audience name")
	f.StringVar(&c.Targeting.Additional, "additional", "", "Additional targeting notes")
	f.StringToStringVar(&c.Targeting.Custom, "custom", nil, "Custom key=value criteria")

	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("objective")
	_ = cmd.MarkFlagRequired("created-by")
	return cmd
}

func recordRow(rec domain.CampaignRecord) []string {
	c := rec.Criteria
	return []string{
		rec.ID,
		rec.CreatedAt.Format("2006-01-02 15:04:05"),
		c.CreatedBy,
		string(c.Platform),
		string(c.Objective),
		strconv.FormatInt(c.Budget, 10),
		c.StartDate.String(),
		c.EndDate.String(),
	}
}

func recordRows(records []domain.CampaignRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, recordRow(rec))
	}
	return rows
}
