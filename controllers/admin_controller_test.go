// file: controllers/admin_controller_test.go
package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-meetups/models"
)

func setAdminCreds(t *testing.T, username, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("ADMIN_USERNAME", username)
	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))
}

func TestAdminLoginPage(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/admin/login", AdminLoginPage)
	assert.Equal(t, http.StatusOK, getPage(router, "/admin/login", nil).Code)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	setAdminCreds(t, "admin", "s3cret")

	router := setupTestRouter(t)
	router.POST("/admin/login", AdminLogin)

	w := postForm(router, "/admin/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postForm(router, "/admin/login", url.Values{
		"username": {"intruder"},
		"password": {"s3cret"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginUnconfigured(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	router := setupTestRouter(t)
	router.POST("/admin/login", AdminLogin)

	w := postForm(router, "/admin/login", url.Values{
		"username": {"admin"},
		"password": {"s3cret"},
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdminLoginGrantsAccess(t *testing.T) {
	setAdminCreds(t, "admin", "s3cret")

	fake := newFakeStore()
	fake.groups = []models.Group{{RemoteID: 1}, {RemoteID: 1}}
	fake.venues[10] = &models.Venue{RemoteID: 10}
	fake.claims = []models.VenueClaim{{VenueID: 10, ContactName: "Ada"}}
	SetConfig(Config{Store: fake})

	router := setupTestRouter(t)
	router.POST("/admin/login", AdminLogin)
	router.GET("/admin", AdminDashboard)

	w := postForm(router, "/admin/login", url.Values{
		"username": {"admin"},
		"password": {"s3cret"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	w = getPage(router, "/admin", w.Result().Cookies())
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "groups=2", "duplicate rows are counted")
	assert.Contains(t, body, "venues=1")
	assert.Contains(t, body, "events=0")
	assert.Contains(t, body, "claims=1")
}
