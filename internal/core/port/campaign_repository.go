package port

import (
	"context"
	"iter"

	"campaign-ids/internal/core/domain"
)

// CampaignRepository defines the persistence layer for generated campaign
// IDs. It is an outbound port in hexagonal architecture. Implementations
// must serialize inserts so that ID uniqueness holds across callers.
type CampaignRepository interface {
	// Insert stores rec. It returns *domain.DuplicateIDError when a record
	// with the same ID already exists, leaving the store unchanged.
	Insert(ctx context.Context, rec domain.CampaignRecord) error
	// Get returns the record with the given ID or domain.ErrRecordNotFound.
	Get(ctx context.Context, id string) (*domain.CampaignRecord, error)
	// List yields the records matching filter in insertion order. The
	// sequence is lazy and may be ranged over repeatedly; each pass sees
	// the store as it is at that moment.
	List(ctx context.Context, filter domain.Filter) iter.Seq2[domain.CampaignRecord, error]
	// Delete removes a record or returns domain.ErrRecordNotFound.
	Delete(ctx context.Context, id string) error
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
