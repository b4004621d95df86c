// file: controllers/user_controller_test.go
package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-meetups/models"
)

func setupProfileRouter(t *testing.T, fake *fakeStore) *gin.Engine {
	SetConfig(Config{Store: fake})

	router := setupTestRouter(t)
	router.GET("/profile", Profile)
	router.POST("/profile", Profile)
	return router
}

func TestProfileRequiresLogin(t *testing.T) {
	router := setupProfileRouter(t, newFakeStore())

	w := getPage(router, "/profile", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestProfilePrefillsForm(t *testing.T) {
	fake := newFakeStore()
	fake.users[42] = &models.User{ID: 42, Name: "Ada", Email: "ada@example.com", Phone: "555-0100"}
	router := setupProfileRouter(t, fake)

	cookies := signIn(t, router, map[string]interface{}{"member_id": int64(42)})

	w := getPage(router, "/profile", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.com")
}

func TestProfileSavesChanges(t *testing.T) {
	fake := newFakeStore()
	fake.users[42] = &models.User{ID: 42, Name: "Ada", Email: "ada@example.com"}
	router := setupProfileRouter(t, fake)

	cookies := signIn(t, router, map[string]interface{}{"member_id": int64(42)})

	w := postForm(router, "/profile", url.Values{
		"email": {"ada@newhost.example"},
		"phone": {"555-0199"},
	}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	assert.Equal(t, "ada@newhost.example", fake.users[42].Email)
	assert.Equal(t, "555-0199", fake.users[42].Phone)
}

func TestProfileRejectsBadEmail(t *testing.T) {
	fake := newFakeStore()
	fake.users[42] = &models.User{ID: 42, Name: "Ada", Email: "ada@example.com"}
	router := setupProfileRouter(t, fake)

	cookies := signIn(t, router, map[string]interface{}{"member_id": int64(42)})

	w := postForm(router, "/profile", url.Values{"email": {"not-an-email"}}, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "email=")
	assert.Equal(t, "ada@example.com", fake.users[42].Email)
}
