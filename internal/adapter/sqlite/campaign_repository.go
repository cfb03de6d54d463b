package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"campaign-ids/internal/core/domain"
)

const selectColumns = `id, created_by, platform, objective, targeting, budget, start_date, end_date, created_at`

// CampaignRepository implements port.CampaignRepository on a SQLite
// database opened with the modernc.org/sqlite driver.
type CampaignRepository struct {
	db *sql.DB
}

// NewCampaignRepository wraps an open, migrated database.
func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Insert(ctx context.Context, rec domain.CampaignRecord) error {
	targeting, err := json.Marshal(rec.Criteria.Targeting)
	if err != nil {
		return fmt.Errorf("encoding targeting: %w", err)
	}
	c := rec.Criteria
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, created_by, platform, objective, targeting, budget, start_date, end_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, c.CreatedBy, string(c.Platform), string(c.Objective), string(targeting), c.Budget,
		c.StartDate.String(), c.EndDate.String(), rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateIDError{ID: rec.ID}
		}
		return fmt.Errorf("inserting campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.CampaignRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM campaigns WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List runs the query once per range. Timestamps are stored as RFC3339 UTC
// strings, so the creation range compares lexically.
func (r *CampaignRepository) List(ctx context.Context, filter domain.Filter) iter.Seq2[domain.CampaignRecord, error] {
	query, args := listQuery(filter)
	return func(yield func(domain.CampaignRecord, error) bool) {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(domain.CampaignRecord{}, fmt.Errorf("listing campaigns: %w", err))
			return
		}
		defer rows.Close()

		n := 0
		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				yield(domain.CampaignRecord{}, err)
				return
			}
			if !filter.Matches(rec) {
				continue
			}
			if !yield(rec, nil) {
				return
			}
			n++
			if filter.Limit > 0 && n >= filter.Limit {
				return
			}
		}
		if err = rows.Err(); err != nil {
			yield(domain.CampaignRecord{}, fmt.Errorf("listing campaigns: %w", err))
		}
	}
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *CampaignRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM campaigns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting campaigns: %w", err)
	}
	return n, nil
}

func listQuery(f domain.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if len(f.Platforms) > 0 {
		where = append(where, `platform IN (`+placeholders(len(f.Platforms))+`)`)
		for _, p := range f.Platforms {
			args = append(args, string(p))
		}
	}
	if len(f.Objectives) > 0 {
		where = append(where, `objective IN (`+placeholders(len(f.Objectives))+`)`)
		for _, o := range f.Objectives {
			args = append(args, string(o))
		}
	}
	if !f.CreatedFrom.IsZero() {
		where = append(where, `created_at >= ?`)
		args = append(args, f.CreatedFrom.UTC().Format(time.RFC3339))
	}
	if !f.CreatedTo.IsZero() {
		where = append(where, `created_at <= ?`)
		args = append(args, f.CreatedTo.UTC().Format(time.RFC3339))
	}
	query := `SELECT ` + selectColumns + ` FROM campaigns`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	return query + ` ORDER BY seq`, args
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (domain.CampaignRecord, error) {
	var (
		rec                       domain.CampaignRecord
		platform, objective       string
		targeting                 string
		startDate, endDate, stamp string
	)
	err := row.Scan(
		&rec.ID,
		&rec.Criteria.CreatedBy,
		&platform,
		&objective,
		&targeting,
		&rec.Criteria.Budget,
		&startDate,
		&endDate,
		&stamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scanning campaign: %w", err)
	}
	rec.Criteria.Platform = domain.Platform(platform)
	rec.Criteria.Objective = domain.Objective(objective)
	if err = json.Unmarshal([]byte(targeting), &rec.Criteria.Targeting); err != nil {
		return rec, fmt.Errorf("decoding targeting of %s: %w", rec.ID, err)
	}
	if rec.Criteria.StartDate, err = domain.ParseDate(startDate); err != nil {
		return rec, fmt.Errorf("parsing start_date of %s: %w", rec.ID, err)
	}
	if rec.Criteria.EndDate, err = domain.ParseDate(endDate); err != nil {
		return rec, fmt.Errorf("parsing end_date of %s: %w", rec.ID, err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, stamp); err != nil {
		return rec, fmt.Errorf("parsing created_at of %s: %w", rec.ID, err)
	}
	return rec, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
