package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"campaign-ids/internal/core/domain"
	"campaign-ids/internal/core/idcode"
	"campaign-ids/internal/core/port"
	"campaign-ids/internal/export"
)

// DefaultMaxAttempts bounds how many salts Generate tries before giving up.
const DefaultMaxAttempts = 5

// CampaignUseCase implements port.CampaignUseCase on top of a
// CampaignRepository and an ID encoder.
type CampaignUseCase struct {
	repo    port.CampaignRepository
	encoder idcode.Encoder

	// maxAttempts is the number of IDs tried per Generate call. Attempt n
	// uses salt n, so the first ID is the unsalted one.
	maxAttempts int

	now func() time.Time
}

// NewCampaignUseCase creates a usecase backed by repo. A maxAttempts below
// one falls back to DefaultMaxAttempts.
func NewCampaignUseCase(repo port.CampaignRepository, encoder idcode.Encoder, maxAttempts int) *CampaignUseCase {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &CampaignUseCase{
		repo:        repo,
		encoder:     encoder,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Generate normalizes criteria, derives an ID and stores the record. When
// the store reports a duplicate the ID is regenerated with the next salt.
// Invalid criteria never reach the repository.
func (u *CampaignUseCase) Generate(ctx context.Context, criteria domain.Criteria) (*domain.CampaignRecord, error) {
	c, err := criteria.Normalize()
	if err != nil {
		return nil, err
	}
	createdAt := u.now().UTC().Truncate(time.Second)

	var lastErr error
	for salt := range u.maxAttempts {
		rec := domain.CampaignRecord{
			ID:        u.encoder.Encode(c, createdAt, salt),
			Criteria:  c,
			CreatedAt: createdAt,
		}
		err = u.repo.Insert(ctx, rec)
		if err == nil {
			return &rec, nil
		}
		if !errors.Is(err, domain.ErrDuplicateID) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Get returns a single record.
func (u *CampaignUseCase) Get(ctx context.Context, id string) (*domain.CampaignRecord, error) {
	return u.repo.Get(ctx, id)
}

// Search collects the records matching filter.
func (u *CampaignUseCase) Search(ctx context.Context, filter domain.Filter) ([]domain.CampaignRecord, error) {
	out := []domain.CampaignRecord{}
	for rec, err := range u.repo.List(ctx, filter) {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Export serializes the records matching filter. The zero filter exports
// the full history.
func (u *CampaignUseCase) Export(ctx context.Context, format export.Format, filter domain.Filter) ([]byte, error) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, u.repo.List(ctx, filter)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import inserts the records of a prior export, keeping their IDs. Records
// whose ID already exists are skipped. Criteria are normalized on the way
// in; an invalid record aborts the import after the ones before it.
func (u *CampaignUseCase) Import(ctx context.Context, format export.Format, payload []byte) (*port.ImportResult, error) {
	records, err := export.Read(bytes.NewReader(payload), format)
	if err != nil {
		return nil, err
	}
	res := &port.ImportResult{}
	for _, rec := range records {
		if rec.Criteria, err = rec.Criteria.Normalize(); err != nil {
			return res, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = u.now().UTC().Truncate(time.Second)
		}
		err = u.repo.Insert(ctx, rec)
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, domain.ErrDuplicateID):
			res.Skipped++
		default:
			return res, err
		}
	}
	return res, nil
}

// Delete removes a record.
func (u *CampaignUseCase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, id)
}

// Decode splits id into its parts.
func (u *CampaignUseCase) Decode(id string) (idcode.Parts, error) {
	return idcode.Decode(id)
}
