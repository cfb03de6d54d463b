// Package export encodes campaign records as flat CSV or JSON documents and
// parses them back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"time"

	"campaign-ids/internal/core/domain"
)

var (
	// ErrUnsupportedFormat is returned for formats other than csv and json.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrMalformed wraps every parse failure reported by Read.
	ErrMalformed = errors.New("malformed export")
)

// Format is an export encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat validates a user supplied format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == JSON {
		return "application/json"
	}
	return "text/csv"
}

// Header lists the CSV columns in output order.
var Header = []string{
	"campaign_id",
	"creation_date",
	"created_by",
	"platform",
	"campaign_objective",
	"targeting_criteria",
	"budget",
	"start_date",
	"end_date",
}

// Write streams records to w in format f. It stops at the first error the
// sequence yields.
func Write(w io.Writer, f Format, records iter.Seq2[domain.CampaignRecord, error]) error {
	switch f {
	case CSV:
		return writeCSV(w, records)
	case JSON:
		return writeJSON(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Read parses a document produced by Write. Parse failures wrap
// ErrMalformed; a record naming an unknown platform or objective also
// unwraps to domain.ErrInvalidCriteria.
func Read(r io.Reader, f Format) ([]domain.CampaignRecord, error) {
	var (
		out []domain.CampaignRecord
		err error
	)
	switch f {
	case CSV:
		out, err = readCSV(r)
	case JSON:
		if err = json.NewDecoder(r).Decode(&out); err != nil {
			err = fmt.Errorf("decoding json export: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return out, nil
}

func writeCSV(w io.Writer, records iter.Seq2[domain.CampaignRecord, error]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for rec, err := range records {
		if err != nil {
			return err
		}
		targeting, err := json.Marshal(rec.Criteria.Targeting)
		if err != nil {
			return fmt.Errorf("encoding targeting of %s: %w", rec.ID, err)
		}
		c := rec.Criteria
		row := []string{
			rec.ID,
			rec.CreatedAt.UTC().Format(time.RFC3339),
			c.CreatedBy,
			string(c.Platform),
			string(c.Objective),
			string(targeting),
			strconv.FormatInt(c.Budget, 10),
			c.StartDate.String(),
			c.EndDate.String(),
		}
		if err = cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, records iter.Seq2[domain.CampaignRecord, error]) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	n := 0
	for rec, err := range records {
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(rec, "  ", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", rec.ID, err)
		}
		sep := "\n  "
		if n > 0 {
			sep = ",\n  "
		}
		if _, err = io.WriteString(w, sep); err != nil {
			return err
		}
		if _, err = w.Write(b); err != nil {
			return err
		}
		n++
	}
	tail := "]\n"
	if n > 0 {
		tail = "\n]\n"
	}
	_, err := io.WriteString(w, tail)
	return err
}

func readCSV(r io.Reader) ([]domain.CampaignRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"campaign_id", "platform", "campaign_objective"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv export is missing column %q", required)
		}
	}
	get := func(row []string, name string) string {
		if i, ok := col[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	var out []domain.CampaignRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		rec, err := parseRow(row, get)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		out = append(out, rec)
	}
}

func parseRow(row []string, get func([]string, string) string) (domain.CampaignRecord, error) {
	var (
		rec domain.CampaignRecord
		err error
	)
	rec.ID = get(row, "campaign_id")
	if rec.ID == "" {
		return rec, errors.New("empty campaign_id")
	}
	if rec.Criteria.Platform, err = domain.ParsePlatform(get(row, "platform")); err != nil {
		return rec, err
	}
	if rec.Criteria.Objective, err = domain.ParseObjective(get(row, "campaign_objective")); err != nil {
		return rec, err
	}
	rec.Criteria.CreatedBy = get(row, "created_by")
	if s := get(row, "creation_date"); s != "" {
		if rec.CreatedAt, err = time.Parse(time.RFC3339, s); err != nil {
			return rec, fmt.Errorf("creation_date: %w", err)
		}
	}
	if s := get(row, "targeting_criteria"); s != "" {
		if err = json.Unmarshal([]byte(s), &rec.Criteria.Targeting); err != nil {
			return rec, fmt.Errorf("targeting_criteria: %w", err)
		}
	}
	if s := get(row, "budget"); s != "" {
		if rec.Criteria.Budget, err = strconv.ParseInt(s, 10, 64); err != nil {
			return rec, fmt.Errorf("budget: %w", err)
		}
	}
	if rec.Criteria.StartDate, err = domain.ParseDate(get(row, "start_date")); err != nil {
		return rec, fmt.Errorf("start_date: %w", err)
	}
	if rec.Criteria.EndDate, err = domain.ParseDate(get(row, "end_date")); err != nil {
		return rec, fmt.Errorf("end_date: %w", err)
	}
	return rec, nil
}
