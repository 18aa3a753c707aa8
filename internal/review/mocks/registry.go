package mocks

import (
	"context"
	"sync"

	"github.com/auracity/admin-review-bot/internal/review"
)

// MockDraftRegistry is an in-memory DraftRegistry double with injectable
// failures and call recording for testing the service layer.
type MockDraftRegistry struct {
	mu     sync.Mutex
	drafts map[review.DraftKey]review.Draft

	SetFieldErr error
	RemoveErr   error

	SetFieldCalls int
	RemoveCalls   int
}

func NewMockDraftRegistry() *MockDraftRegistry {
	return &MockDraftRegistry{drafts: make(map[review.DraftKey]review.Draft)}
}

// GetOrCreate implements the DraftRegistry interface
func (m *MockDraftRegistry) GetOrCreate(_ context.Context, key review.DraftKey) (review.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[key]
	if !ok {
		m.drafts[key] = d
	}
	return d, nil
}

// SetField implements the DraftRegistry interface
func (m *MockDraftRegistry) SetField(_ context.Context, key review.DraftKey, cat review.Category, score int) (review.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetFieldCalls++
	if m.SetFieldErr != nil {
		return review.Draft{}, m.SetFieldErr
	}

	d := m.drafts[key]
	d.Set(cat, score)
	m.drafts[key] = d
	return d, nil
}

// Remove implements the DraftRegistry interface
func (m *MockDraftRegistry) Remove(_ context.Context, key review.DraftKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RemoveCalls++
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.drafts, key)
	return nil
}

// Draft returns the stored draft for a key, for assertions.
func (m *MockDraftRegistry) Draft(key review.DraftKey) (review.Draft, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[key]
	return d, ok
}

// Len reports how many drafts are held.
func (m *MockDraftRegistry) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.drafts)
}
