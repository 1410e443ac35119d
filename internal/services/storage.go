package services

import (
	"context"

	"github.com/yourlovestory/story-gateway/pkg/archive"
)

// ArchiveStore persists per-user story archives.
type ArchiveStore interface {
	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error

	// LoadArchive returns the user's stored records, nil when none exist.
	LoadArchive(ctx context.Context, userID string) ([]archive.Record, error)

	// SaveArchive replaces the user's stored records.
	SaveArchive(ctx context.Context, userID string, records []archive.Record) error

	// Close releases the underlying connection.
	Close() error
}
