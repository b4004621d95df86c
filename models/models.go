// Package models defines data structures used across the application.
// File: models/models.go
package models

import "time"

// ----------------------- geolocation -----------------------

// GeoPoint is a (longitude, latitude) pair. Longitude always comes
// first; swapping the order is a data-correctness bug.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// ----------------------- user model -----------------------

// User represents a Meetup member known to this application.
// A user is created on first login and mutated on every sync.
type User struct {
	ID            int64     `json:"id"`   // Meetup member id
	Name          string    `json:"name"` // Display name
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Lon           float64   `json:"lon"`
	Lat           float64   `json:"lat"`
	Loc           GeoPoint  `json:"loc"`          // Copied from Lon/Lat on every sync
	MemberOf      []int64   `json:"member_of"`    // Group ids, in sync order
	OrganizerOf   []int64   `json:"organizer_of"` // Subset of MemberOf where the member organizes
	LastRefreshed time.Time `json:"last_refreshed"`
}

// ----------------------- group model -----------------------

// Group is a minimal record of a Meetup group encountered during sync.
// One row is written per remote id per sync; duplicates across syncs
// are tolerated.
type Group struct {
	RemoteID int64 `json:"remote_id"`
}

// ----------------------- venue model -----------------------

// Venue holds a synced venue plus the details filled in later through
// the venue edit and claim forms.
type Venue struct {
	RemoteID int64    `json:"remote_id"`
	Name     string   `json:"name"`
	Loc      GeoPoint `json:"loc"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Capacity     int    `json:"capacity"`

	// Questionnaire fields describing hosting suitability.
	NeedNames    bool   `json:"need_names"`
	Food         bool   `json:"food"`
	AV           bool   `json:"av"`
	Chairs       bool   `json:"chairs"`
	Instructions string `json:"instructions"`
}

// ----------------------- event model -----------------------

// Event is a synced Meetup event. GroupID keeps the remote payload's
// native string type; group ids elsewhere are integers and the
// asymmetry is intentional.
type Event struct {
	RemoteID  int64  `json:"remote_id"`
	GroupID   string `json:"group_id"`
	Name      string `json:"name"`
	Time      *int64 `json:"time"`       // Milliseconds since epoch, nil when the event has no time
	RSVPLimit *int   `json:"rsvp_limit"` // nil when the event has no attendance limit
}

// ----------------------- venue claim model -----------------------

// VenueClaim records a submitted venue claim form.
type VenueClaim struct {
	VenueID      int64     `json:"venue_id"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	CreatedAt    time.Time `json:"created_at"`
}
