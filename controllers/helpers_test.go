// file: controllers/helpers_test.go
package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"go-meetups/models"
	"go-meetups/storage"
)

// setupTestRouter creates a Gin engine with session middleware and fake
// HTML templates, mirroring the real router's setup.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes a set of minimal HTML templates to the
// provided directory.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"index.html":         `<html><body>{{.Flash}}</body></html>`,
		"have.html":          `<html><body>have</body></html>`,
		"need.html":          `<html><body>need</body></html>`,
		"search.html":        `<html><body>{{if .Venues}}{{range .Venues}}{{.Name}};{{end}}{{end}}{{if .Errors}}{{range $k, $v := .Errors}}{{$k}}={{$v}};{{end}}{{end}}</body></html>`,
		"venue_edit.html":    `<html><body>{{.Venue.Name}} {{if .Errors}}{{range $k, $v := .Errors}}{{$k}}={{$v}};{{end}}{{end}}</body></html>`,
		"venue_claim.html":   `<html><body>{{.Venue.Name}} {{if .Errors}}{{range $k, $v := .Errors}}{{$k}}={{$v}};{{end}}{{end}}</body></html>`,
		"request_space.html": `<html><body>{{.Form.Body}}</body></html>`,
		"profile.html":       `<html><body>{{.Form.Email}} {{if .Errors}}{{range $k, $v := .Errors}}{{$k}}={{$v}};{{end}}{{end}}</body></html>`,
		"admin.html":         `<html><body>groups={{.GroupCount}} venues={{.VenueCount}} events={{.EventCount}} claims={{len .Claims}}</body></html>`,
		"admin_login.html":   `<html><body>{{.Error}}</body></html>`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// signIn registers a helper route that writes session values, performs
// one request against it, and returns the session cookies for reuse.
func signIn(t *testing.T, router *gin.Engine, values map[string]interface{}) []*http.Cookie {
	path := "/test/signin"
	router.GET(path, func(c *gin.Context) {
		session := sessions.Default(c)
		for k, v := range values {
			session.Set(k, v)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("signIn helper failed with status %d", w.Code)
	}
	return w.Result().Cookies()
}

// postForm performs a urlencoded POST with the given cookies.
func postForm(router *gin.Engine, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)
	return w
}

// getPage performs a GET with the given cookies.
func getPage(router *gin.Engine, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)
	return w
}

// ----------------------- fake store -----------------------

// fakeStore is an in-memory storage.Store for handler tests.
type fakeStore struct {
	users  map[int64]*models.User
	venues map[int64]*models.Venue
	events map[int64]*models.Event
	groups []models.Group
	claims []models.VenueClaim

	searchResults []models.Venue
	searchedName  string
	searchedNear  *models.GeoPoint

	failSearch bool
	failUpdate bool
}

var _ storage.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[int64]*models.User),
		venues: make(map[int64]*models.Venue),
		events: make(map[int64]*models.Event),
	}
}

func (f *fakeStore) SaveUser(_ context.Context, user *models.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) CreateGroup(_ context.Context, group *models.Group) error {
	f.groups = append(f.groups, *group)
	return nil
}

func (f *fakeStore) CreateVenue(_ context.Context, venue *models.Venue) error {
	f.venues[venue.RemoteID] = venue
	return nil
}

func (f *fakeStore) CreateEvent(_ context.Context, event *models.Event) error {
	f.events[event.RemoteID] = event
	return nil
}

func (f *fakeStore) GetEvent(_ context.Context, remoteID int64) (*models.Event, error) {
	event, ok := f.events[remoteID]
	if !ok {
		return nil, fmt.Errorf("event %d: %w", remoteID, storage.ErrNotFound)
	}
	return event, nil
}

func (f *fakeStore) GetVenue(_ context.Context, remoteID int64) (*models.Venue, error) {
	venue, ok := f.venues[remoteID]
	if !ok {
		return nil, fmt.Errorf("venue %d: %w", remoteID, storage.ErrNotFound)
	}
	copied := *venue
	return &copied, nil
}

func (f *fakeStore) UpdateVenueDetails(_ context.Context, venue *models.Venue) error {
	if f.failUpdate {
		return fmt.Errorf("update failed")
	}
	f.venues[venue.RemoteID] = venue
	return nil
}

func (f *fakeStore) SearchVenues(_ context.Context, name string, near *models.GeoPoint) ([]models.Venue, error) {
	if f.failSearch {
		return nil, fmt.Errorf("search failed")
	}
	f.searchedName = name
	f.searchedNear = near
	return f.searchResults, nil
}

func (f *fakeStore) SaveVenueClaim(_ context.Context, claim *models.VenueClaim) error {
	f.claims = append(f.claims, *claim)
	return nil
}

func (f *fakeStore) ListRecentClaims(_ context.Context, limit int) ([]models.VenueClaim, error) {
	if len(f.claims) > limit {
		return f.claims[:limit], nil
	}
	return f.claims, nil
}

func (f *fakeStore) CountGroups(_ context.Context) (int, error)  { return len(f.groups), nil }
func (f *fakeStore) CountVenues(_ context.Context) (int, error)  { return len(f.venues), nil }
func (f *fakeStore) CountEvents(_ context.Context) (int, error)  { return len(f.events), nil }
func (f *fakeStore) Close() error                                { return nil }
