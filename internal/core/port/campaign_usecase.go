package port

import (
	"context"

	"campaign-ids/internal/core/domain"
	"campaign-ids/internal/core/idcode"
	"campaign-ids/internal/export"
)

// CampaignUseCase defines the business operations exposed to the HTTP and
// CLI adapters. It is the primary port into the application domain.
type CampaignUseCase interface {
	// Generate validates criteria, derives a unique ID and records it. It
	// returns *domain.InvalidCriteriaError for bad input and
	// *domain.DuplicateIDError when every retry collided.
	Generate(ctx context.Context, criteria domain.Criteria) (*domain.CampaignRecord, error)

	// Get returns a single record by ID.
	Get(ctx context.Context, id string) (*domain.CampaignRecord, error)

	// Search returns every record matching filter in insertion order.
	Search(ctx context.Context, filter domain.Filter) ([]domain.CampaignRecord, error)

	// Export serializes the records matching filter in the given format.
	Export(ctx context.Context, format export.Format, filter domain.Filter) ([]byte, error)

	// Import parses a prior export and inserts its records, skipping IDs
	// that are already present.
	Import(ctx context.Context, format export.Format, payload []byte) (*ImportResult, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error

	// Decode splits an ID into its human readable parts.
	Decode(id string) (idcode.Parts, error)
}

// ImportResult reports how many records an import added and skipped.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
