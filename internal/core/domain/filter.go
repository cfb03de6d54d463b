package domain

import (
	"slices"
	"strings"
	"time"
)

// Filter selects campaign records. Every non-empty field narrows the result;
// list fields match when any of their values is present on the record. The
// zero Filter matches everything.
type Filter struct {
	Platforms   []Platform
	Objectives  []Objective
	CreatedBy   string
	Query       string // case-insensitive substring of the ID or platform name
	Interests   []string
	Locations   []string
	Languages   []string
	Devices     []string
	Custom      map[string]string // every pair must be present
	CreatedFrom time.Time         // inclusive
	CreatedTo   time.Time         // inclusive
	Limit       int               // 0 means unlimited
}

// Matches reports whether rec satisfies every predicate in f. Limit is not
// considered here.
func (f Filter) Matches(rec CampaignRecord) bool {
	c := rec.Criteria
	if len(f.Platforms) > 0 && !slices.Contains(f.Platforms, c.Platform) {
		return false
	}
	if len(f.Objectives) > 0 && !slices.Contains(f.Objectives, c.Objective) {
		return false
	}
	if f.CreatedBy != "" && !strings.EqualFold(strings.TrimSpace(f.CreatedBy), c.CreatedBy) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(rec.ID), q) &&
			!strings.Contains(strings.ToLower(string(c.Platform)), q) {
			return false
		}
	}
	if !f.CreatedFrom.IsZero() && rec.CreatedAt.Before(f.CreatedFrom) {
		return false
	}
	if !f.CreatedTo.IsZero() && rec.CreatedAt.After(f.CreatedTo) {
		return false
	}
	t := c.Targeting
	if len(f.Interests) > 0 && !containsFold(t.Interests, f.Interests) {
		return false
	}
	if len(f.Locations) > 0 && !containsFold(t.Locations, f.Locations) {
		return false
	}
	if len(f.Languages) > 0 && !containsFold(t.Languages, f.Languages) {
		return false
	}
	if len(f.Devices) > 0 && !containsFold(t.Devices, f.Devices) {
		return false
	}
	for k, v := range f.Custom {
		if got, ok := t.Custom[k]; !ok || !strings.EqualFold(got, v) {
			return false
		}
	}
	return true
}

// ParseBound parses a creation time bound given as RFC3339 or YYYY-MM-DD.
// With endOfDay set, a bare date covers the whole day.
func ParseBound(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Second)
	}
	return d, nil
}
