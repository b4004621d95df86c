// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
// File: storage/sqlite/sqlite.go
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"go-meetups/models"
	"go-meetups/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ----------------------- users -----------------------

// SaveUser inserts or replaces the user row keyed by member id.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *models.User) error {
	memberOf, err := json.Marshal(user.MemberOf)
	if err != nil {
		return fmt.Errorf("failed to encode member_of: %w", err)
	}
	organizerOf, err := json.Marshal(user.OrganizerOf)
	if err != nil {
		return fmt.Errorf("failed to encode organizer_of: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO users
		 (id, name, email, phone, lon, lat, loc_lon, loc_lat, member_of, organizer_of, last_refreshed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Phone,
		user.Lon, user.Lat, user.Loc.Lon, user.Loc.Lat,
		string(memberOf), string(organizerOf), user.LastRefreshed.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by member id.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	var memberOf, organizerOf string
	var lastRefreshed int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, lon, lat, loc_lon, loc_lat, member_of, organizer_of, last_refreshed
		 FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Phone,
		&user.Lon, &user.Lat, &user.Loc.Lon, &user.Loc.Lat,
		&memberOf, &organizerOf, &lastRefreshed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := json.Unmarshal([]byte(memberOf), &user.MemberOf); err != nil {
		return nil, fmt.Errorf("failed to decode member_of: %w", err)
	}
	if err := json.Unmarshal([]byte(organizerOf), &user.OrganizerOf); err != nil {
		return nil, fmt.Errorf("failed to decode organizer_of: %w", err)
	}
	user.LastRefreshed = time.Unix(lastRefreshed, 0)
	return user, nil
}

// ----------------------- groups -----------------------

// CreateGroup inserts a new group row. No dedup on remote id.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (remote_id) VALUES (?)", group.RemoteID)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// ----------------------- venues -----------------------

// CreateVenue inserts a new venue row. No dedup on remote id.
func (s *SQLiteStore) CreateVenue(ctx context.Context, venue *models.Venue) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO venues (remote_id, name, lon, lat) VALUES (?, ?, ?, ?)",
		venue.RemoteID, venue.Name, venue.Loc.Lon, venue.Loc.Lat)
	if err != nil {
		return fmt.Errorf("failed to insert venue: %w", err)
	}
	return nil
}

// GetVenue retrieves the most recently created row for the remote id.
func (s *SQLiteStore) GetVenue(ctx context.Context, remoteID int64) (*models.Venue, error) {
	venue := &models.Venue{}
	err := s.db.QueryRowContext(ctx,
		`SELECT remote_id, name, lon, lat, contact_name, contact_email, contact_phone,
		        capacity, need_names, food, av, chairs, instructions
		 FROM venues WHERE remote_id = ? ORDER BY seq DESC LIMIT 1`, remoteID,
	).Scan(&venue.RemoteID, &venue.Name, &venue.Loc.Lon, &venue.Loc.Lat,
		&venue.ContactName, &venue.ContactEmail, &venue.ContactPhone,
		&venue.Capacity, &venue.NeedNames, &venue.Food, &venue.AV, &venue.Chairs,
		&venue.Instructions)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("venue %d: %w", remoteID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return venue, nil
}

// UpdateVenueDetails writes the contact, capacity and questionnaire
// fields onto every row with the venue's remote id.
func (s *SQLiteStore) UpdateVenueDetails(ctx context.Context, venue *models.Venue) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE venues SET contact_name = ?, contact_email = ?, contact_phone = ?,
		        capacity = ?, need_names = ?, food = ?, av = ?, chairs = ?, instructions = ?
		 WHERE remote_id = ?`,
		venue.ContactName, venue.ContactEmail, venue.ContactPhone,
		venue.Capacity, venue.NeedNames, venue.Food, venue.AV, venue.Chairs,
		venue.Instructions, venue.RemoteID)
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("venue not found: %d", venue.RemoteID)
	}
	return nil
}

// SearchVenues finds venues whose name matches the query, ordered by
// planar distance to near when it is given.
func (s *SQLiteStore) SearchVenues(ctx context.Context, name string, near *models.GeoPoint) ([]models.Venue, error) {
	query := `SELECT remote_id, name, lon, lat, contact_name, contact_email, contact_phone,
	                 capacity, need_names, food, av, chairs, instructions
	          FROM venues WHERE name LIKE ?`
	args := []interface{}{"%" + name + "%"}

	if near != nil {
		// Planar distance is fine at city scale; this is an ordering
		// heuristic, not a measurement.
		query += " ORDER BY (lon - ?) * (lon - ?) + (lat - ?) * (lat - ?)"
		args = append(args, near.Lon, near.Lon, near.Lat, near.Lat)
	} else {
		query += " ORDER BY remote_id"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var venue models.Venue
		if err := rows.Scan(&venue.RemoteID, &venue.Name, &venue.Loc.Lon, &venue.Loc.Lat,
			&venue.ContactName, &venue.ContactEmail, &venue.ContactPhone,
			&venue.Capacity, &venue.NeedNames, &venue.Food, &venue.AV, &venue.Chairs,
			&venue.Instructions); err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate venues: %w", err)
	}
	return venues, nil
}

// ----------------------- events -----------------------

// CreateEvent inserts a new event row. No dedup on remote id.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (remote_id, group_id, name, time, rsvp_limit) VALUES (?, ?, ?, ?, ?)",
		event.RemoteID, event.GroupID, event.Name, event.Time, event.RSVPLimit)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetEvent retrieves the most recently created row for the remote id.
func (s *SQLiteStore) GetEvent(ctx context.Context, remoteID int64) (*models.Event, error) {
	event := &models.Event{}
	err := s.db.QueryRowContext(ctx,
		`SELECT remote_id, group_id, name, time, rsvp_limit
		 FROM events WHERE remote_id = ? ORDER BY seq DESC LIMIT 1`, remoteID,
	).Scan(&event.RemoteID, &event.GroupID, &event.Name, &event.Time, &event.RSVPLimit)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %d: %w", remoteID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ----------------------- venue claims -----------------------

// SaveVenueClaim persists a submitted claim.
func (s *SQLiteStore) SaveVenueClaim(ctx context.Context, claim *models.VenueClaim) error {
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO venue_claims (venue_id, contact_name, contact_email, contact_phone, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		claim.VenueID, claim.ContactName, claim.ContactEmail, claim.ContactPhone,
		claim.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert venue claim: %w", err)
	}
	return nil
}

// ListRecentClaims returns up to limit claims, newest first.
func (s *SQLiteStore) ListRecentClaims(ctx context.Context, limit int) ([]models.VenueClaim, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT venue_id, contact_name, contact_email, contact_phone, created_at
		 FROM venue_claims ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []models.VenueClaim
	for rows.Next() {
		var claim models.VenueClaim
		var createdAt int64
		if err := rows.Scan(&claim.VenueID, &claim.ContactName, &claim.ContactEmail,
			&claim.ContactPhone, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claim.CreatedAt = time.Unix(createdAt, 0)
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}
	return claims, nil
}

// ----------------------- counts -----------------------

// CountGroups reports group rows, duplicates included.
func (s *SQLiteStore) CountGroups(ctx context.Context) (int, error) {
	return s.count(ctx, "groups")
}

// CountVenues reports venue rows, duplicates included.
func (s *SQLiteStore) CountVenues(ctx context.Context) (int, error) {
	return s.count(ctx, "venues")
}

// CountEvents reports event rows, duplicates included.
func (s *SQLiteStore) CountEvents(ctx context.Context) (int, error) {
	return s.count(ctx, "events")
}

func (s *SQLiteStore) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
