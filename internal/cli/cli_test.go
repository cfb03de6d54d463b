package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-ids/internal/adapter/memory"
	"campaign-ids/internal/config"
	"campaign-ids/internal/core/domain"
	"campaign-ids/internal/core/idcode"
	"campaign-ids/internal/core/port"
	"campaign-ids/internal/storage"
)

// run executes one campaignctl invocation against repo and returns stdout.
func run(t *testing.T, repo port.CampaignRepository, stdin string, args ...string) (string, error) {
	t.Helper()
	return runWith(t, func(context.Context, config.Config, *slog.Logger) (*storage.Store, error) {
		return storage.NewStore(repo, "memory", nil), nil
	}, stdin, args...)
}

func runWith(t *testing.T, open Opener, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd, a := newRootCmd(open)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := a.execute(cmd)
	return out.String(), err
}

func generateArgs(platform string) []string {
	return []string{
		"generate",
		"--platform", platform,
		"--objective", "conversions",
		"--created-by", "Dana",
		"--budget", "250000",
		"--start", "2026-11-01",
		"--end", "2026-11-30",
		"--locations", "USA, Canada",
		"--interests", "Gaming",
		"--custom", "geo=US",
	}
}

func mustGenerate(t *testing.T, repo port.CampaignRepository, platform string) domain.CampaignRecord {
	t.Helper()
	out, err := run(t, repo, "", generateArgs(platform)...)
	require.NoError(t, err)
	var rec domain.CampaignRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	return rec
}

func TestGenerate(t *testing.T) {
	repo := memory.NewCampaignRepository()
	rec := mustGenerate(t, repo, "google ads")

	parts, err := idcode.Decode(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformGoogleAds, parts.Platform)
	assert.Equal(t, domain.ObjectiveConversions, parts.Objective)
	assert.Equal(t, []string{"Canada", "USA"}, rec.Criteria.Targeting.Locations)
	assert.Equal(t, map[string]string{"geo": "US"}, rec.Criteria.Targeting.Custom)
	assert.Equal(t, int64(250000), rec.Criteria.Budget)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGenerateErrors(t *testing.T) {
	repo := memory.NewCampaignRepository()

	_, err := run(t, repo, "", "generate", "--platform", "myspace", "--objective", "reach", "--created-by", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidCriteria)

	_, err = run(t, repo, "", "generate", "--platform", "tiktok", "--objective", "reach")
	assert.Error(t, err)

	_, err = run(t, repo, "", append(generateArgs("tiktok"), "--start", "11/01/2026")...)
	assert.Error(t, err)

	_, err = run(t, repo, "", "--format", "yaml", "options")
	assert.Error(t, err)
}

func TestListAndGet(t *testing.T) {
	repo := memory.NewCampaignRepository()
	search := mustGenerate(t, repo, "google_ads")
	social := mustGenerate(t, repo, "facebook")

	out, err := run(t, repo, "", "list", "--platform", "facebook")
	require.NoError(t, err)
	var records []domain.CampaignRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, social.ID, records[0].ID)

	out, err = run(t, repo, "", "--format", "table", "search", "--query", "goo")
	require.NoError(t, err)
	assert.Contains(t, out, search.ID)
	assert.NotContains(t, out, social.ID)
	assert.Contains(t, strings.ToUpper(out), "PLATFORM")

	out, err = run(t, repo, "", "--format", "table", "get", social.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Facebook")
	assert.Contains(t, out, "Custom geo")

	_, err = run(t, repo, "", "get", "FAC-CON-20260101000000-deadbeef")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = run(t, repo, "", "list", "--from", "someday")
	assert.Error(t, err)
}

func TestRm(t *testing.T) {
	repo := memory.NewCampaignRepository()
	rec := mustGenerate(t, repo, "linkedin")

	out, err := run(t, repo, "", "rm", rec.ID)
	require.NoError(t, err)
	assert.Contains(t, out, rec.ID)

	_, err = run(t, repo, "", "rm", rec.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	other := mustGenerate(t, repo, "linkedin")
	out, err = run(t, repo, "", "--format", "table", "rm", other.ID)
	require.NoError(t, err)
	assert.Contains(t, out, other.ID)
	assert.NotContains(t, out, `"ok"`)
}

func TestStoreClosedAfterCommand(t *testing.T) {
	repo := memory.NewCampaignRepository()
	closed := 0
	open := func(context.Context, config.Config, *slog.Logger) (*storage.Store, error) {
		return storage.NewStore(repo, "memory", func() error {
			closed++
			return nil
		}), nil
	}

	_, err := runWith(t, open, "", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	_, err = runWith(t, open, "", "get", "FAC-CON-20260101000000-deadbeef")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Equal(t, 2, closed)

	_, err = runWith(t, open, "", "decode", "FAC-CON-20260101000000-deadbeef")
	require.NoError(t, err)
	assert.Equal(t, 2, closed, "decode never opens the store")

	failing := func(context.Context, config.Config, *slog.Logger) (*storage.Store, error) {
		return storage.NewStore(repo, "memory", func() error { return errors.New("close failed") }), nil
	}
	_, err = runWith(t, failing, "", "list")
	assert.EqualError(t, err, "close failed")
}

func TestExportImport(t *testing.T) {
	src := memory.NewCampaignRepository()
	a := mustGenerate(t, src, "tiktok")
	b := mustGenerate(t, src, "youtube")

	csv, err := run(t, src, "", "export")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csv, "campaign_id,"), csv)

	dst := memory.NewCampaignRepository()
	out, err := run(t, dst, csv, "import")
	require.NoError(t, err)
	var res port.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, port.ImportResult{Imported: 2}, res)

	out, err = run(t, dst, csv, "import")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, port.ImportResult{Skipped: 2}, res)

	path := filepath.Join(t.TempDir(), "history.json")
	_, err = run(t, src, "", "export", "--as", "json", "--output", path, "--platform", "youtube")
	require.NoError(t, err)
	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), b.ID)
	assert.NotContains(t, string(payload), a.ID)

	fresh := memory.NewCampaignRepository()
	_, err = run(t, fresh, "", "import", path)
	require.NoError(t, err)
	n, err := fresh.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = run(t, src, "", "export", "--as", "xml")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	out, err := run(t, nil, "", "decode", "INS-LEA-20260102030405-0a1b2c3d")
	require.NoError(t, err)
	var parts idcode.Parts
	require.NoError(t, json.Unmarshal([]byte(out), &parts))
	assert.Equal(t, domain.PlatformInstagram, parts.Platform)
	assert.Equal(t, domain.ObjectiveLeadGeneration, parts.Objective)
	assert.Equal(t, "0a1b2c3d", parts.Suffix)

	_, err = run(t, nil, "", "decode", "not-an-id")
	assert.ErrorIs(t, err, idcode.ErrMalformedID)
}

func TestOptions(t *testing.T) {
	out, err := run(t, nil, "", "options")
	require.NoError(t, err)
	var opts options
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, "Google Ads", opts.Platforms["GOO"])
	assert.Len(t, opts.Objectives, len(domain.Objectives))

	out, err = run(t, nil, "", "--format", "table", "options")
	require.NoError(t, err)
	assert.Contains(t, out, "TikTok")
}

func TestSeed(t *testing.T) {
	repo := memory.NewCampaignRepository()
	_, err := run(t, repo, "", "seed", "--count", "4")
	require.NoError(t, err)
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = run(t, repo, "", "seed", "--count", "0")
	assert.Error(t, err)
}
