// Package draft provides the session stores backing the rating flow: an
// in-process registry for single-instance deployments and a redis-backed
// one for deployments that must survive restarts or share drafts across
// processes. Both implement review.DraftRegistry.
package draft

import (
	"context"
	"sync"

	"github.com/auracity/admin-review-bot/internal/review"
)

// MemoryRegistry keeps drafts in a process-lifetime map. All registry
// operations run under one mutex, so the read-modify-write in SetField is
// atomic per key and interleaved picks cannot drop a field. Drafts have no
// expiry; abandoned ones live until the process restarts.
type MemoryRegistry struct {
	mu     sync.Mutex
	drafts map[review.DraftKey]review.Draft
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		drafts: make(map[review.DraftKey]review.Draft),
	}
}

func (r *MemoryRegistry) GetOrCreate(_ context.Context, key review.DraftKey) (review.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[key]
	if !ok {
		r.drafts[key] = d
	}
	return d, nil
}

func (r *MemoryRegistry) SetField(_ context.Context, key review.DraftKey, cat review.Category, score int) (review.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := r.drafts[key]
	d.Set(cat, score)
	r.drafts[key] = d
	return d, nil
}

func (r *MemoryRegistry) Remove(_ context.Context, key review.DraftKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, key)
	return nil
}
