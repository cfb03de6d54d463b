package memory

import (
	"context"
	"iter"
	"maps"
	"slices"
	"sync"

	"campaign-ids/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository in process memory.
// Records are kept in insertion order; a mutex serializes all access.
type CampaignRepository struct {
	mu      sync.Mutex
	records []domain.CampaignRecord
	index   map[string]int
}

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{index: make(map[string]int)}
}

// Insert appends rec unless its ID is taken.
func (r *CampaignRepository) Insert(_ context.Context, rec domain.CampaignRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[rec.ID]; ok {
		return &domain.DuplicateIDError{ID: rec.ID}
	}
	r.index[rec.ID] = len(r.records)
	r.records = append(r.records, clone(rec))
	return nil
}

// Get returns a copy of the record with the given ID.
func (r *CampaignRepository) Get(_ context.Context, id string) (*domain.CampaignRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	rec := clone(r.records[i])
	return &rec, nil
}

// List yields matching records. Each pass takes a snapshot under the lock
// and then yields without holding it, so callers may insert while ranging.
func (r *CampaignRepository) List(ctx context.Context, filter domain.Filter) iter.Seq2[domain.CampaignRecord, error] {
	return func(yield func(domain.CampaignRecord, error) bool) {
		r.mu.Lock()
		snapshot := slices.Clone(r.records)
		r.mu.Unlock()

		n := 0
		for _, rec := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(domain.CampaignRecord{}, err)
				return
			}
			if !filter.Matches(rec) {
				continue
			}
			if !yield(clone(rec), nil) {
				return
			}
			n++
			if filter.Limit > 0 && n >= filter.Limit {
				return
			}
		}
	}
}

// Delete removes the record and reindexes the ones after it.
func (r *CampaignRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	r.records = slices.Delete(r.records, i, i+1)
	delete(r.index, id)
	for j := i; j < len(r.records); j++ {
		r.index[r.records[j].ID] = j
	}
	return nil
}

// Count returns the number of stored records.
func (r *CampaignRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

// clone copies the slices and map inside rec so callers cannot mutate
// stored state.
func clone(rec domain.CampaignRecord) domain.CampaignRecord {
	t := &rec.Criteria.Targeting
	t.Genders = slices.Clone(t.Genders)
	t.Languages = slices.Clone(t.Languages)
	t.Locations = slices.Clone(t.Locations)
	t.Interests = slices.Clone(t.Interests)
	t.Behaviors = slices.Clone(t.Behaviors)
	t.Devices = slices.Clone(t.Devices)
	t.Custom = maps.Clone(t.Custom)
	return rec
}
