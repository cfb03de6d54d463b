package domain

import (
	"fmt"
	"strings"
)

// Criteria is everything a marketing manager supplies when requesting a
// campaign ID. Platform and Objective must be recognized values; Targeting
// may be empty. Budget is stored in integer minor units (e.g. cents).
type Criteria struct {
	Platform  Platform  `json:"platform"`
	Objective Objective `json:"campaign_objective"`
	Targeting Targeting `json:"targeting"`
	CreatedBy string    `json:"created_by"`
	Budget    int64     `json:"budget"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
}

// Normalize resolves platform and objective aliases, validates every field
// and returns the canonical form of c. The returned error is always an
// *InvalidCriteriaError.
func (c Criteria) Normalize() (Criteria, error) {
	platform, err := ParsePlatform(string(c.Platform))
	if err != nil {
		return Criteria{}, err
	}
	objective, err := ParseObjective(string(c.Objective))
	if err != nil {
		return Criteria{}, err
	}
	createdBy := strings.TrimSpace(c.CreatedBy)
	if createdBy == "" {
		return Criteria{}, &InvalidCriteriaError{Field: "created_by", Reason: "marketing manager is required"}
	}
	if c.Budget < 0 {
		return Criteria{}, &InvalidCriteriaError{Field: "budget", Value: fmt.Sprint(c.Budget), Reason: "must not be negative"}
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return Criteria{}, &InvalidCriteriaError{Field: "end_date", Value: c.EndDate.String(), Reason: "must not be before start_date"}
	}
	if err = c.Targeting.Validate(); err != nil {
		return Criteria{}, err
	}
	return Criteria{
		Platform:  platform,
		Objective: objective,
		Targeting: c.Targeting.Normalize(),
		CreatedBy: createdBy,
		Budget:    c.Budget,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}, nil
}

// Validate reports whether c would normalize without error.
func (c Criteria) Validate() error {
	_, err := c.Normalize()
	return err
}
