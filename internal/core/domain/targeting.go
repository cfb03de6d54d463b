package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Age bounds accepted by the ad platforms.
const (
	MinAge = 13
	MaxAge = 65
)

// Recognized values for the constrained targeting fields.
var (
	Genders       = []string{"Male", "Female", "All"}
	Devices       = []string{"Desktop", "Mobile", "Tablet", "All"}
	LocationTypes = []string{"Countries", "Regions", "Cities", "Radius", "Custom"}
)

// Targeting describes who should see a campaign. Every field is optional;
// the zero value targets everyone.
type Targeting struct {
	AgeMin         int               `json:"age_min,omitempty"`
	AgeMax         int               `json:"age_max,omitempty"`
	Genders        []string          `json:"genders,omitempty"`
	Languages      []string          `json:"languages,omitempty"`
	LocationType   string            `json:"location_type,omitempty"`
	Locations      []string          `json:"locations,omitempty"`
	Interests      []string          `json:"interests,omitempty"`
	Behaviors      []string          `json:"behaviors,omitempty"`
	Devices        []string          `json:"devices,omitempty"`
	CustomAudience string            `json:"custom_audience,omitempty"`
	Additional     string            `json:"additional,omitempty"`
	Custom         map[string]string `json:"custom,omitempty"`
}

// UnmarshalJSON accepts every list field either as an array of strings or
// as one comma separated string, the way the generation form submits them.
func (t *Targeting) UnmarshalJSON(b []byte) error {
	type plain Targeting
	aux := struct {
		*plain
		Genders   stringList `json:"genders"`
		Languages stringList `json:"languages"`
		Locations stringList `json:"locations"`
		Interests stringList `json:"interests"`
		Behaviors stringList `json:"behaviors"`
		Devices   stringList `json:"devices"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.Genders = aux.Genders
	t.Languages = aux.Languages
	t.Locations = aux.Locations
	t.Interests = aux.Interests
	t.Behaviors = aux.Behaviors
	t.Devices = aux.Devices
	return nil
}

// stringList decodes a JSON array of strings or a comma separated string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = SplitList(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// AgeRange renders the age bounds as "min-max", filling unset bounds with
// the platform limits.
func (t Targeting) AgeRange() string {
	lo, hi := t.AgeMin, t.AgeMax
	if lo == 0 {
		lo = MinAge
	}
	if hi == 0 {
		hi = MaxAge
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

// Validate checks the constrained fields of t.
func (t Targeting) Validate() error {
	for _, age := range []struct {
		field string
		v     int
	}{{"age_min", t.AgeMin}, {"age_max", t.AgeMax}} {
		if age.v != 0 && (age.v < MinAge || age.v > MaxAge) {
			return &InvalidCriteriaError{
				Field:  age.field,
				Value:  fmt.Sprint(age.v),
				Reason: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge),
			}
		}
	}
	if t.AgeMin != 0 && t.AgeMax != 0 && t.AgeMin > t.AgeMax {
		return &InvalidCriteriaError{Field: "age_max", Value: fmt.Sprint(t.AgeMax), Reason: "must not be below age_min"}
	}
	if err := checkAllowed("genders", t.Genders, Genders); err != nil {
		return err
	}
	if err := checkAllowed("devices", t.Devices, Devices); err != nil {
		return err
	}
	if t.LocationType != "" {
		if _, ok := canonical(t.LocationType, LocationTypes); !ok {
			return &InvalidCriteriaError{Field: "location_type", Value: t.LocationType, Reason: "unrecognized location type"}
		}
	}
	for k := range t.Custom {
		if strings.TrimSpace(k) == "" {
			return &InvalidCriteriaError{Field: "custom", Reason: "empty key"}
		}
	}
	return nil
}

// Normalize returns a copy of t with trimmed, de-duplicated and sorted lists
// and constrained values in their canonical spelling. Two targeting values
// that differ only by ordering or case of list entries normalize equally.
func (t Targeting) Normalize() Targeting {
	out := Targeting{
		AgeMin:         t.AgeMin,
		AgeMax:         t.AgeMax,
		Genders:        normalizeAllowed(t.Genders, Genders),
		Languages:      normalizeList(t.Languages),
		Locations:      normalizeList(t.Locations),
		Interests:      normalizeList(t.Interests),
		Behaviors:      normalizeList(t.Behaviors),
		Devices:        normalizeAllowed(t.Devices, Devices),
		CustomAudience: strings.TrimSpace(t.CustomAudience),
		Additional:     strings.TrimSpace(t.Additional),
	}
	if lt, ok := canonical(t.LocationType, LocationTypes); ok {
		out.LocationType = lt
	}
	if len(t.Custom) > 0 {
		out.Custom = make(map[string]string, len(t.Custom))
		for k, v := range t.Custom {
			out.Custom[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return out
}

// Equal reports whether two targeting values are identical field by field.
func (t Targeting) Equal(o Targeting) bool {
	return t.AgeMin == o.AgeMin &&
		t.AgeMax == o.AgeMax &&
		slices.Equal(t.Genders, o.Genders) &&
		slices.Equal(t.Languages, o.Languages) &&
		t.LocationType == o.LocationType &&
		slices.Equal(t.Locations, o.Locations) &&
		slices.Equal(t.Interests, o.Interests) &&
		slices.Equal(t.Behaviors, o.Behaviors) &&
		slices.Equal(t.Devices, o.Devices) &&
		t.CustomAudience == o.CustomAudience &&
		t.Additional == o.Additional &&
		maps.Equal(t.Custom, o.Custom)
}

// SplitList splits a comma separated form value such as "USA, Canada, UK".
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return normalizeList(strings.Split(s, ","))
}

func normalizeList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}

func normalizeAllowed(in, allowed []string) []string {
	mapped := make([]string, 0, len(in))
	for _, v := range in {
		if c, ok := canonical(v, allowed); ok {
			mapped = append(mapped, c)
		}
	}
	return normalizeList(mapped)
}

func checkAllowed(field string, values, allowed []string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := canonical(v, allowed); !ok {
			return &InvalidCriteriaError{Field: field, Value: v, Reason: "unrecognized value"}
		}
	}
	return nil
}

func canonical(v string, allowed []string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(a, v) {
			return a, true
		}
	}
	return "", false
}

// containsFold reports whether any of want appears in have, ignoring case.
func containsFold(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
