// file: storage/sqlite/sqlite_test.go
package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-meetups/models"
	"go-meetups/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	require.NoError(t, err, "Failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{
		ID:            42,
		Name:          "Ada",
		Email:         "ada@example.com",
		Phone:         "555-0100",
		Lon:           -73.99,
		Lat:           40.73,
		Loc:           models.GeoPoint{Lon: -73.99, Lat: 40.73},
		MemberOf:      []int64{1, 2, 3},
		OrganizerOf:   []int64{2},
		LastRefreshed: time.Unix(1700000000, 0),
	}

	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, []int64{1, 2, 3}, got.MemberOf)
	assert.Equal(t, []int64{2}, got.OrganizerOf)
	assert.Equal(t, models.GeoPoint{Lon: -73.99, Lat: 40.73}, got.Loc)
	assert.Equal(t, user.LastRefreshed.Unix(), got.LastRefreshed.Unix())
}

func TestSaveUserReplacesExistingRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{ID: 7, Name: "Before", MemberOf: []int64{}, OrganizerOf: []int64{}}
	require.NoError(t, store.SaveUser(ctx, user))

	user.Name = "After"
	user.MemberOf = []int64{9}
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, []int64{9}, got.MemberOf)
}

func TestGetUserNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetUser(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// Repeating a sync inserts fresh rows for the same remote ids. The
// store must not suppress these duplicates.
func TestCreateGroupAllowsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, store.CreateGroup(ctx, &models.Group{RemoteID: 11}))
	}

	n, err := store.CountGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "Expected duplicate group rows to be kept")
}

func TestCreateVenueAllowsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	venue := &models.Venue{RemoteID: 1, Name: "Loft", Loc: models.GeoPoint{Lon: 10, Lat: 20}}
	require.NoError(t, store.CreateVenue(ctx, venue))
	require.NoError(t, store.CreateVenue(ctx, venue))

	n, err := store.CountVenues(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := store.GetVenue(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.GeoPoint{Lon: 10, Lat: 20}, got.Loc)
}

func TestCreateEventKeepsStringGroupID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	limit := 25
	when := int64(1500000000000)
	event := &models.Event{RemoteID: 5, GroupID: "3", Name: "Hack Night", Time: &when, RSVPLimit: &limit}
	require.NoError(t, store.CreateEvent(ctx, event))
	require.NoError(t, store.CreateEvent(ctx, event))

	n, err := store.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCreateEventWithAbsentOptionalFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateEvent(ctx, &models.Event{RemoteID: 6, GroupID: "8"}))

	got, err := store.GetEvent(ctx, 6)
	require.NoError(t, err)
	assert.Nil(t, got.Time)
	assert.Nil(t, got.RSVPLimit)
}

func TestGetEvent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	limit := 25
	when := int64(1500000000000)
	require.NoError(t, store.CreateEvent(ctx,
		&models.Event{RemoteID: 9, GroupID: "3", Name: "Hack Night", Time: &when, RSVPLimit: &limit}))

	got, err := store.GetEvent(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "3", got.GroupID)
	assert.Equal(t, "Hack Night", got.Name)
	require.NotNil(t, got.Time)
	assert.Equal(t, when, *got.Time)
	require.NotNil(t, got.RSVPLimit)
	assert.Equal(t, 25, *got.RSVPLimit)

	_, err = store.GetEvent(ctx, 404)
	assert.Error(t, err)
}

func TestUpdateVenueDetails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateVenue(ctx,
		&models.Venue{RemoteID: 3, Name: "Warehouse", Loc: models.GeoPoint{Lon: 1, Lat: 2}}))

	venue := &models.Venue{
		RemoteID:     3,
		ContactName:  "Grace",
		ContactEmail: "grace@example.com",
		ContactPhone: "555-0101",
		Capacity:     120,
		Food:         true,
		Chairs:       true,
		Instructions: "Use the freight elevator.",
	}
	require.NoError(t, store.UpdateVenueDetails(ctx, venue))

	got, err := store.GetVenue(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.ContactName)
	assert.Equal(t, 120, got.Capacity)
	assert.True(t, got.Food)
	assert.True(t, got.Chairs)
	assert.False(t, got.AV)
	// Loc set at creation survives the detail update.
	assert.Equal(t, models.GeoPoint{Lon: 1, Lat: 2}, got.Loc)
}

func TestUpdateVenueDetailsMissingVenue(t *testing.T) {
	store := newTestStore(t)
	err := store.UpdateVenueDetails(context.Background(), &models.Venue{RemoteID: 404})
	assert.Error(t, err)
}

func TestSearchVenuesByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateVenue(ctx, &models.Venue{RemoteID: 1, Name: "Brooklyn Loft"}))
	require.NoError(t, store.CreateVenue(ctx, &models.Venue{RemoteID: 2, Name: "Midtown Hall"}))

	venues, err := store.SearchVenues(ctx, "Loft", nil)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, int64(1), venues[0].RemoteID)
}

func TestSearchVenuesOrdersByProximity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateVenue(ctx,
		&models.Venue{RemoteID: 1, Name: "Hall A", Loc: models.GeoPoint{Lon: 10, Lat: 10}}))
	require.NoError(t, store.CreateVenue(ctx,
		&models.Venue{RemoteID: 2, Name: "Hall B", Loc: models.GeoPoint{Lon: 1, Lat: 1}}))

	near := &models.GeoPoint{Lon: 0, Lat: 0}
	venues, err := store.SearchVenues(ctx, "Hall", near)
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, int64(2), venues[0].RemoteID, "Nearest venue should come first")
}

func TestVenueClaims(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &models.VenueClaim{
		VenueID:      1,
		ContactName:  "Ada",
		ContactEmail: "ada@example.com",
		CreatedAt:    time.Unix(1000, 0),
	}
	second := &models.VenueClaim{
		VenueID:      2,
		ContactName:  "Grace",
		ContactEmail: "grace@example.com",
		CreatedAt:    time.Unix(2000, 0),
	}
	require.NoError(t, store.SaveVenueClaim(ctx, first))
	require.NoError(t, store.SaveVenueClaim(ctx, second))

	claims, err := store.ListRecentClaims(ctx, 10)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	assert.Equal(t, int64(2), claims[0].VenueID, "Newest claim should come first")
	assert.Equal(t, "Ada", claims[1].ContactName)
}
