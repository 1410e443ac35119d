package services

import (
	"context"
	"sync"

	"github.com/yourlovestory/story-gateway/pkg/archive"
)

// MockStore is an in-memory ArchiveStore for tests.
type MockStore struct {
	mu       sync.Mutex
	archives map[string][]archive.Record

	PingErr error
	LoadErr error
	SaveErr error
}

var _ ArchiveStore = (*MockStore)(nil)

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{archives: make(map[string][]archive.Record)}
}

func (m *MockStore) Ping(context.Context) error {
	return m.PingErr
}

func (m *MockStore) LoadArchive(_ context.Context, userID string) ([]archive.Record, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.archives[userID], nil
}

func (m *MockStore) SaveArchive(_ context.Context, userID string, records []archive.Record) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archives[userID] = records
	return nil
}

func (m *MockStore) Close() error {
	return nil
}
