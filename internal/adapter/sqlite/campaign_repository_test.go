package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-ids/internal/config/configs"
	"campaign-ids/internal/core/domain"
	"campaign-ids/internal/db"
)

func newTestRepo(t *testing.T) *CampaignRepository {
	t.Helper()
	cfg := configs.SQLite{Path: filepath.Join(t.TempDir(), "test.db")}
	conn, err := db.OpenSQLite(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.MigrateSQLite(cfg.Path))
	return NewCampaignRepository(conn)
}

func record(id string, p domain.Platform, at time.Time) domain.CampaignRecord {
	return domain.CampaignRecord{
		ID: id,
		Criteria: domain.Criteria{
			Platform:  p,
			Objective: domain.ObjectiveTraffic,
			CreatedBy: "Dana",
			Budget:    5000,
			StartDate: domain.NewDate(2026, time.November, 1),
			Targeting: domain.Targeting{
				AgeMin:    21,
				Interests: []string{"Travel"},
				Custom:    map[string]string{"geo": "US"},
			},
		},
		CreatedAt: at,
	}
}

func ids(t *testing.T, r *CampaignRepository, f domain.Filter) []string {
	t.Helper()
	var out []string
	for rec, err := range r.List(context.Background(), f) {
		require.NoError(t, err)
		out = append(out, rec.ID)
	}
	return out
}

var base = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

func TestInsertAndGet(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	want := record("FAC-TRA-20261014090000-00000001", domain.PlatformFacebook, base)
	require.NoError(t, r.Insert(ctx, want))

	got, err := r.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Criteria.Platform, got.Criteria.Platform)
	assert.Equal(t, want.Criteria.Budget, got.Criteria.Budget)
	assert.Equal(t, want.Criteria.StartDate, got.Criteria.StartDate)
	assert.True(t, got.Criteria.EndDate.IsZero())
	assert.True(t, want.Criteria.Targeting.Equal(got.Criteria.Targeting))
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestDuplicateID(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	require.NoError(t, r.Insert(ctx, record("A", domain.PlatformFacebook, base)))

	err := r.Insert(ctx, record("A", domain.PlatformTikTok, base))
	var de *domain.DuplicateIDError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "A", de.ID)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := r.Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformFacebook, got.Criteria.Platform)
}

func TestListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	// Inserted out of timestamp order to show ordering follows insertion.
	require.NoError(t, r.Insert(ctx, record("C", domain.PlatformFacebook, base.Add(2*time.Hour))))
	require.NoError(t, r.Insert(ctx, record("A", domain.PlatformTikTok, base)))
	b := record("B", domain.PlatformFacebook, base.Add(time.Hour))
	b.Criteria.Targeting.Interests = []string{"Gaming"}
	require.NoError(t, r.Insert(ctx, b))

	assert.Equal(t, []string{"C", "A", "B"}, ids(t, r, domain.Filter{}))
	assert.Equal(t, []string{"C", "B"}, ids(t, r, domain.Filter{Platforms: []domain.Platform{domain.PlatformFacebook}}))
	assert.Equal(t, []string{"B"}, ids(t, r, domain.Filter{Interests: []string{"gaming"}}))
	assert.Equal(t, []string{"A", "B"}, ids(t, r, domain.Filter{CreatedTo: base.Add(time.Hour)}))
	assert.Equal(t, []string{"C"}, ids(t, r, domain.Filter{CreatedFrom: base.Add(90 * time.Minute)}))
	assert.Equal(t, []string{"C"}, ids(t, r, domain.Filter{Limit: 1}))
	assert.Empty(t, ids(t, r, domain.Filter{Objectives: []domain.Objective{domain.ObjectiveReach}}))
}

func TestListIsRestartable(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	require.NoError(t, r.Insert(ctx, record("A", domain.PlatformFacebook, base)))

	seq := r.List(ctx, domain.Filter{})
	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}
	assert.Equal(t, 1, count())
	require.NoError(t, r.Insert(ctx, record("B", domain.PlatformFacebook, base)))
	assert.Equal(t, 2, count())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	require.NoError(t, r.Insert(ctx, record("A", domain.PlatformFacebook, base)))

	require.NoError(t, r.Delete(ctx, "A"))
	assert.ErrorIs(t, r.Delete(ctx, "A"), domain.ErrRecordNotFound)
	assert.Empty(t, ids(t, r, domain.Filter{}))
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	conn, err := db.OpenSQLite(context.Background(), configs.SQLite{Path: path})
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.MigrateSQLite(path))
	require.NoError(t, db.MigrateSQLite(path))
}

func TestListQueryPlaceholders(t *testing.T) {
	q, args := listQuery(domain.Filter{
		Platforms:  []domain.Platform{domain.PlatformFacebook, domain.PlatformTikTok},
		Objectives: []domain.Objective{domain.ObjectiveReach},
	})
	assert.Contains(t, q, "platform IN (?, ?) AND objective IN (?)")
	assert.Equal(t, []any{"Facebook", "TikTok", "Reach"}, args)
}
