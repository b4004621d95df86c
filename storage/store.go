// Package storage provides abstractions for persistent data storage.
// File: storage/store.go
package storage

import (
	"context"
	"errors"

	"go-meetups/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Implementations wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for record storage operations.
// This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the sync engine or controllers.
//
// CreateGroup, CreateVenue and CreateEvent insert a new row every
// call, even for a remote id that was already seen. Repeating a sync
// therefore produces duplicate rows; callers must not rely on any
// uniqueness of remote ids.
type Store interface {
	// SaveUser inserts or replaces the user keyed by member id.
	SaveUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by member id. Returns an error if no
	// such user exists.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// CreateGroup persists a new group record.
	CreateGroup(ctx context.Context, group *models.Group) error

	// CreateVenue persists a new venue record.
	CreateVenue(ctx context.Context, venue *models.Venue) error

	// CreateEvent persists a new event record.
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEvent retrieves the most recently created event row for the
	// given remote id.
	GetEvent(ctx context.Context, remoteID int64) (*models.Event, error)

	// GetVenue retrieves the most recently created venue row for the
	// given remote id.
	GetVenue(ctx context.Context, remoteID int64) (*models.Venue, error)

	// UpdateVenueDetails writes the contact, capacity and
	// questionnaire fields onto every row with the venue's remote id.
	UpdateVenueDetails(ctx context.Context, venue *models.Venue) error

	// SearchVenues finds venues whose name column matches the query.
	// When near is non-nil, results are ordered by planar distance to
	// the point; otherwise by remote id.
	SearchVenues(ctx context.Context, name string, near *models.GeoPoint) ([]models.Venue, error)

	// SaveVenueClaim persists a submitted venue claim.
	SaveVenueClaim(ctx context.Context, claim *models.VenueClaim) error

	// ListRecentClaims returns up to limit claims, newest first.
	ListRecentClaims(ctx context.Context, limit int) ([]models.VenueClaim, error)

	// CountGroups, CountVenues and CountEvents report row counts,
	// duplicates included.
	CountGroups(ctx context.Context) (int, error)
	CountVenues(ctx context.Context) (int, error)
	CountEvents(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
