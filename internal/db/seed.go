package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"campaign-ids/internal/core/domain"
	"campaign-ids/internal/core/port"
)

// Seed generates n demo campaigns through svc, picking platforms, objectives
// and targeting at random. It returns the generated records.
func Seed(ctx context.Context, svc port.CampaignUseCase, n int) ([]domain.CampaignRecord, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	pick := func(from []string, k int) []string {
		out := make([]string, 0, k)
		for _, i := range r.Perm(len(from))[:k] {
			out = append(out, from[i])
		}
		return out
	}

	managers := []string{"Ana Ruiz", "Ben Okafor", "Chen Wei", "Dana Levi"}
	interests := []string{"Technology", "Fashion", "Sports", "Gaming", "Travel", "Music"}
	locations := []string{"USA", "Canada", "UK", "Germany", "Japan"}
	today := domain.DateOf(time.Now())

	out := make([]domain.CampaignRecord, 0, n)
	for i := 0; i < n; i++ {
		ageMin := domain.MinAge + r.Intn(20)
		c := domain.Criteria{
			Platform:  domain.Platforms[r.Intn(len(domain.Platforms))],
			Objective: domain.Objectives[r.Intn(len(domain.Objectives))],
			CreatedBy: managers[r.Intn(len(managers))],
			Budget:    int64(100+r.Intn(50)) * 10000,
			StartDate: today,
			EndDate:   domain.DateOf(today.Time().AddDate(0, 1, 0)),
			Targeting: domain.Targeting{
				AgeMin:       ageMin,
				AgeMax:       ageMin + 10 + r.Intn(20),
				Genders:      []string{"All"},
				Languages:    []string{"English"},
				LocationType: "Countries",
				Locations:    pick(locations, 1+r.Intn(3)),
				Interests:    pick(interests, 1+r.Intn(3)),
				Devices:      []string{"All"},
			},
		}
		rec, err := svc.Generate(ctx, c)
		if err != nil {
			return out, fmt.Errorf("seeding campaign %d: %w", i+1, err)
		}
		out = append(out, *rec)
	}
	return out, nil
}
