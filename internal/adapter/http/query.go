package httpadapter

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"campaign-ids/internal/core/domain"
)

// parseFilter builds a domain.Filter from query parameters. List parameters
// (platform, objective, interest, location, language, device) may repeat or
// hold comma separated values. `from` and `to` accept RFC3339 timestamps or
// YYYY-MM-DD dates; a bare `to` date covers the whole day.
func parseFilter(q url.Values) (domain.Filter, error) {
	var (
		f   domain.Filter
		err error
	)
	for _, v := range listParam(q, "platform") {
		p, err := domain.ParsePlatform(v)
		if err != nil {
			return f, err
		}
		f.Platforms = append(f.Platforms, p)
	}
	for _, v := range listParam(q, "objective") {
		o, err := domain.ParseObjective(v)
		if err != nil {
			return f, err
		}
		f.Objectives = append(f.Objectives, o)
	}
	f.Query = q.Get("q")
	f.CreatedBy = q.Get("created_by")
	f.Interests = listParam(q, "interest")
	f.Locations = listParam(q, "location")
	f.Languages = listParam(q, "language")
	f.Devices = listParam(q, "device")

	if s := q.Get("from"); s != "" {
		if f.CreatedFrom, err = domain.ParseBound(s, false); err != nil {
			return f, errors.New("invalid 'from' timestamp")
		}
	}
	if s := q.Get("to"); s != "" {
		if f.CreatedTo, err = domain.ParseBound(s, true); err != nil {
			return f, errors.New("invalid 'to' timestamp")
		}
	}
	if s := q.Get("limit"); s != "" {
		if f.Limit, err = strconv.Atoi(s); err != nil || f.Limit < 0 {
			return f, errors.New("invalid limit")
		}
	}
	return f, nil
}

func listParam(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
