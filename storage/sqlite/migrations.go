// Package sqlite file: storage/sqlite/migrations.go
package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// groups, venues and events use an autoincrement surrogate key with a
// deliberately non-unique remote_id column: every sync inserts fresh
// rows, so the same remote record may appear more than once.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    lon REAL NOT NULL DEFAULT 0,
    lat REAL NOT NULL DEFAULT 0,
    loc_lon REAL NOT NULL DEFAULT 0,
    loc_lat REAL NOT NULL DEFAULT 0,
    member_of TEXT NOT NULL DEFAULT '[]',
    organizer_of TEXT NOT NULL DEFAULT '[]',
    last_refreshed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS groups (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    remote_id INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS venues (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    remote_id INTEGER NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    lon REAL NOT NULL DEFAULT 0,
    lat REAL NOT NULL DEFAULT 0,
    contact_name TEXT NOT NULL DEFAULT '',
    contact_email TEXT NOT NULL DEFAULT '',
    contact_phone TEXT NOT NULL DEFAULT '',
    capacity INTEGER NOT NULL DEFAULT 0,
    need_names INTEGER NOT NULL DEFAULT 0,
    food INTEGER NOT NULL DEFAULT 0,
    av INTEGER NOT NULL DEFAULT 0,
    chairs INTEGER NOT NULL DEFAULT 0,
    instructions TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    remote_id INTEGER NOT NULL,
    group_id TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL DEFAULT '',
    time INTEGER,
    rsvp_limit INTEGER
);

CREATE TABLE IF NOT EXISTS venue_claims (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    venue_id INTEGER NOT NULL,
    contact_name TEXT NOT NULL DEFAULT '',
    contact_email TEXT NOT NULL DEFAULT '',
    contact_phone TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_groups_remote_id ON groups(remote_id);
CREATE INDEX IF NOT EXISTS idx_venues_remote_id ON venues(remote_id);
CREATE INDEX IF NOT EXISTS idx_events_remote_id ON events(remote_id);
CREATE INDEX IF NOT EXISTS idx_venue_claims_created_at ON venue_claims(created_at);
`

// runMigrations applies the schema in a single exec.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
