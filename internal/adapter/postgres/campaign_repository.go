package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-ids/internal/core/domain"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const selectColumns = `id, created_by, platform, objective, targeting, budget, start_date, end_date, created_at`

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. The UNIQUE constraint on id enforces uniqueness, so inserts
// from several processes stay safe.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Insert stores rec, mapping a unique violation to DuplicateIDError.
func (r *CampaignRepository) Insert(ctx context.Context, rec domain.CampaignRecord) error {
	targeting, err := json.Marshal(rec.Criteria.Targeting)
	if err != nil {
		return fmt.Errorf("encoding targeting: %w", err)
	}
	c := rec.Criteria
	_, err = r.pool.Exec(ctx, `
        INSERT INTO campaigns (id, created_by, platform, objective, targeting, budget, start_date, end_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, c.CreatedBy, string(c.Platform), string(c.Objective), targeting, c.Budget,
		datePtr(c.StartDate), datePtr(c.EndDate), rec.CreatedAt.UTC(),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &domain.DuplicateIDError{ID: rec.ID}
	}
	if err != nil {
		return fmt.Errorf("inserting campaign: %w", err)
	}
	return nil
}

// Get returns a campaign by id.
func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.CampaignRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM campaigns WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List pushes platform, objective and creation range predicates into SQL and
// applies the targeting filters in Go, the same way the JSONB targeting was
// filtered for ad selection. Each range runs the query again.
func (r *CampaignRepository) List(ctx context.Context, filter domain.Filter) iter.Seq2[domain.CampaignRecord, error] {
	query, args := listQuery(filter)
	return func(yield func(domain.CampaignRecord, error) bool) {
		rows, err := r.pool.Query(ctx, query, args...)
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

// Delete removes a campaign by id.
func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of stored campaigns.
func (r *CampaignRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM campaigns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting campaigns: %w", err)
	}
	return n, nil
}

func listQuery(f domain.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if len(f.Platforms) > 0 {
		add("platform = ANY($%d)", toStrings(f.Platforms))
	}
	if len(f.Objectives) > 0 {
		add("objective = ANY($%d)", toStrings(f.Objectives))
	}
	if !f.CreatedFrom.IsZero() {
		add("created_at >= $%d", f.CreatedFrom.UTC())
	}
	if !f.CreatedTo.IsZero() {
		add("created_at <= $%d", f.CreatedTo.UTC())
	}
	query := `SELECT ` + selectColumns + ` FROM campaigns`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	return query + ` ORDER BY seq`, args
}

func scanRecord(row pgx.Row) (domain.CampaignRecord, error) {
	var (
		rec                 domain.CampaignRecord
		platform, objective string
		targeting           []byte
		startDate, endDate  *time.Time
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
		&rec.CreatedAt,
	)
	if err != nil {
		return rec, err
	}
	rec.Criteria.Platform = domain.Platform(platform)
	rec.Criteria.Objective = domain.Objective(objective)
	if err = json.Unmarshal(targeting, &rec.Criteria.Targeting); err != nil {
		return rec, fmt.Errorf("decoding targeting of %s: %w", rec.ID, err)
	}
	if startDate != nil {
		rec.Criteria.StartDate = domain.DateOf(*startDate)
	}
	if endDate != nil {
		rec.Criteria.EndDate = domain.DateOf(*endDate)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

func datePtr(d domain.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
