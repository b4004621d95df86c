// Package services: services/sync_service.go
package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go-meetups/logger"
	"go-meetups/meetup"
	"go-meetups/models"
)

// Roles that mark a member as an organizer of a group. Matching is
// case-sensitive and exact.
const (
	roleOrganizer   = "Organizer"
	roleCoOrganizer = "Co-Organizer"
)

// MeetupAPI is the slice of the meetup client the sync engine uses.
type MeetupAPI interface {
	Groups(ctx context.Context, params url.Values) ([]meetup.GroupResult, error)
	Venues(ctx context.Context, params url.Values) ([]meetup.VenueResult, error)
	Events(ctx context.Context, params url.Values) ([]meetup.EventResult, error)
}

// SyncStore is the slice of the record store the sync engine writes to.
type SyncStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	CreateGroup(ctx context.Context, group *models.Group) error
	CreateVenue(ctx context.Context, venue *models.Venue) error
	CreateEvent(ctx context.Context, event *models.Event) error
}

// Refresher renews a user's remote-auth state when it is stale.
type Refresher interface {
	RefreshIfNeeded(ctx context.Context, user *models.User, maximumStaleness time.Duration) error
}

// SyncMetrics receives sync observability data. Implementations must
// never fail the sync; errors are theirs to log.
type SyncMetrics interface {
	PublishSyncDuration(d time.Duration)
	PublishRecordsCreated(category string, count int)
	PublishSyncFailure()
}

// SyncService pulls a user's groups, venues and events from the remote
// API and materializes local records. Execution is sequential and
// request-scoped; nothing here spawns goroutines.
type SyncService struct {
	api       MeetupAPI
	store     SyncStore
	refresher Refresher
	metrics   SyncMetrics
}

// NewSyncService creates a SyncService. metrics may be nil.
func NewSyncService(api MeetupAPI, store SyncStore, refresher Refresher, metrics SyncMetrics) *SyncService {
	return &SyncService{api: api, store: store, refresher: refresher, metrics: metrics}
}

// SyncUser runs one full sync for the user: refresh auth if stale, then
// fetch and reconcile groups, venues and events in that fixed order,
// then save the user exactly once. Any failure aborts immediately;
// records created before the failure stay (non-atomic, accepted).
func (s *SyncService) SyncUser(ctx context.Context, user *models.User, maximumStaleness time.Duration) error {
	start := time.Now()
	if err := s.syncUser(ctx, user, maximumStaleness); err != nil {
		if s.metrics != nil {
			s.metrics.PublishSyncFailure()
		}
		return err
	}
	if s.metrics != nil {
		s.metrics.PublishSyncDuration(time.Since(start))
	}
	return nil
}

func (s *SyncService) syncUser(ctx context.Context, user *models.User, maximumStaleness time.Duration) error {
	if err := s.refresher.RefreshIfNeeded(ctx, user, maximumStaleness); err != nil {
		return fmt.Errorf("refresh auth for member %d: %w", user.ID, err)
	}

	// Carried over from the original system: the location is re-derived
	// from the user's own lon/lat on every sync.
	user.Loc = models.GeoPoint{Lon: user.Lon, Lat: user.Lat}

	params := url.Values{"member_id": {strconv.FormatInt(user.ID, 10)}}

	groups, err := s.api.Groups(ctx, withFields(params, "self"))
	if err != nil {
		return err
	}
	if err := s.SyncGroups(ctx, user, groups); err != nil {
		return err
	}

	venues, err := s.api.Venues(ctx, params)
	if err != nil {
		return err
	}
	if err := s.CreateVenues(ctx, venues); err != nil {
		return err
	}

	events, err := s.api.Events(ctx, params)
	if err != nil {
		return err
	}
	if err := s.CreateEvents(ctx, events); err != nil {
		return err
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("save user %d: %w", user.ID, err)
	}

	logger.Info.Printf("[SyncUser] Synced member %d: %d groups, %d venues, %d events",
		user.ID, len(groups), len(venues), len(events))
	return nil
}

// SyncGroups creates a group record per item and rebuilds the user's
// member_of/organizer_of lists from scratch, preserving input order.
// The previous lists are replaced, not merged.
func (s *SyncService) SyncGroups(ctx context.Context, user *models.User, groups []meetup.GroupResult) error {
	memberOf := make([]int64, 0, len(groups))
	organizerOf := make([]int64, 0, len(groups))

	for _, group := range groups {
		if err := s.store.CreateGroup(ctx, &models.Group{RemoteID: group.ID}); err != nil {
			return fmt.Errorf("create group %d: %w", group.ID, err)
		}
		memberOf = append(memberOf, group.ID)
		if group.Self != nil && (group.Self.Role == roleOrganizer || group.Self.Role == roleCoOrganizer) {
			organizerOf = append(organizerOf, group.ID)
		}
	}

	user.MemberOf = memberOf
	user.OrganizerOf = organizerOf

	if s.metrics != nil {
		s.metrics.PublishRecordsCreated("groups", len(groups))
	}
	return nil
}

// CreateVenues creates one venue record per item. The geolocation is
// (lon, lat), in that order.
func (s *SyncService) CreateVenues(ctx context.Context, venues []meetup.VenueResult) error {
	for _, venue := range venues {
		record := &models.Venue{
			RemoteID: venue.ID,
			Name:     venue.Name,
			Loc:      models.GeoPoint{Lon: venue.Lon, Lat: venue.Lat},
		}
		if err := s.store.CreateVenue(ctx, record); err != nil {
			return fmt.Errorf("create venue %d: %w", venue.ID, err)
		}
	}
	if s.metrics != nil {
		s.metrics.PublishRecordsCreated("venues", len(venues))
	}
	return nil
}

// CreateEvents creates one event record per item. The owning group id
// is kept as the remote's string, not coerced to an integer.
func (s *SyncService) CreateEvents(ctx context.Context, events []meetup.EventResult) error {
	for _, event := range events {
		record := &models.Event{
			RemoteID:  event.ID,
			GroupID:   event.Group.ID,
			Name:      event.Name,
			Time:      event.Time,
			RSVPLimit: event.RSVPLimit,
		}
		if err := s.store.CreateEvent(ctx, record); err != nil {
			return fmt.Errorf("create event %d: %w", event.ID, err)
		}
	}
	if s.metrics != nil {
		s.metrics.PublishRecordsCreated("events", len(events))
	}
	return nil
}

// withFields copies params and adds a fields selector.
func withFields(params url.Values, fields string) url.Values {
	out := url.Values{}
	for key, values := range params {
		out[key] = values
	}
	out.Set("fields", fields)
	return out
}
