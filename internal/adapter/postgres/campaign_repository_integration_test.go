package postgres

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-ids/internal/config/configs"
	"campaign-ids/internal/core/domain"
	"campaign-ids/internal/db"
)

// newTestRepository connects to the database named by PSQL_ADDRESS, applies
// the migrations and returns a repository. The test is skipped when the
// variable is unset.
func newTestRepository(t *testing.T) *CampaignRepository {
	t.Helper()
	addr := os.Getenv("PSQL_ADDRESS")
	if addr == "" {
		t.Skip("PSQL_ADDRESS not set")
	}
	require.NoError(t, db.MigratePostgres(addr))

	u, err := url.Parse(addr)
	require.NoError(t, err)
	pool, err := db.NewPostgresPool(context.Background(), configs.Postgres{Addr: *u})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewCampaignRepository(pool)
}

// testRecord returns a record owned by a manager unique to this run, so
// filtering by CreatedBy isolates it from rows left by other tests.
func testRecord(t *testing.T, repo *CampaignRepository, owner string, p domain.Platform) domain.CampaignRecord {
	t.Helper()
	rec := domain.CampaignRecord{
		ID: "TST-CON-" + time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()[:8],
		Criteria: domain.Criteria{
			Platform:  p,
			Objective: domain.ObjectiveConversions,
			CreatedBy: owner,
			Budget:    125000,
			StartDate: domain.NewDate(2026, time.November, 1),
			Targeting: domain.Targeting{
				AgeMin:    18,
				Locations: []string{"Canada", "USA"},
				Custom:    map[string]string{"geo": "US"},
			},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), rec.ID) })
	return rec
}

func TestPostgresInsertAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	rec := testRecord(t, repo, "it-"+uuid.NewString(), domain.PlatformGoogleAds)

	require.NoError(t, repo.Insert(ctx, rec))

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Criteria.Platform, got.Criteria.Platform)
	assert.Equal(t, rec.Criteria.Budget, got.Criteria.Budget)
	assert.Equal(t, "2026-11-01", got.Criteria.StartDate.String())
	assert.True(t, got.Criteria.EndDate.IsZero())
	assert.True(t, rec.Criteria.Targeting.Equal(got.Criteria.Targeting))
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.Get(ctx, "TST-CON-20260101000000-00000000")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestPostgresDuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	owner := "it-" + uuid.NewString()
	rec := testRecord(t, repo, owner, domain.PlatformFacebook)
	require.NoError(t, repo.Insert(ctx, rec))

	dup := rec
	dup.Criteria.Budget = 1
	err := repo.Insert(ctx, dup)
	require.ErrorIs(t, err, domain.ErrDuplicateID)
	var dupErr *domain.DuplicateIDError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, rec.ID, dupErr.ID)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(125000), got.Criteria.Budget)
}

func TestPostgresListAndDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	owner := "it-" + uuid.NewString()
	first := testRecord(t, repo, owner, domain.PlatformTikTok)
	second := testRecord(t, repo, owner, domain.PlatformLinkedIn)
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	ids := func(f domain.Filter) []string {
		var out []string
		for rec, err := range repo.List(ctx, f) {
			require.NoError(t, err)
			out = append(out, rec.ID)
		}
		return out
	}
	assert.Equal(t, []string{first.ID, second.ID}, ids(domain.Filter{CreatedBy: owner}))
	assert.Equal(t, []string{second.ID}, ids(domain.Filter{CreatedBy: owner, Platforms: []domain.Platform{domain.PlatformLinkedIn}}))
	assert.Equal(t, []string{first.ID}, ids(domain.Filter{CreatedBy: owner, Limit: 1}))

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), domain.ErrRecordNotFound)
	assert.Equal(t, []string{second.ID}, ids(domain.Filter{CreatedBy: owner}))
}
