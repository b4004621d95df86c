// Package controllers file: controllers/admin_controller.go
package controllers

import (
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-meetups/logger"
)

// ---------------- admin login ----------------

// AdminLoginPage renders the admin sign-in form.
func AdminLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

// AdminLogin checks the submitted credentials against ADMIN_USERNAME
// and the bcrypt hash in ADMIN_PASSWORD_HASH.
func AdminLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	wantUser := os.Getenv("ADMIN_USERNAME")
	wantHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if wantUser == "" || wantHash == "" {
		logger.Error.Println("AdminLogin: Admin credentials not configured")
		c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{"Error": "Admin login is not configured."})
		return
	}

	if username != wantUser || !ComparePasswords(wantHash, password) {
		logger.Warn.Printf("AdminLogin: Failed admin login attempt for %q", username)
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{"Error": "Invalid credentials."})
		return
	}

	session := sessions.Default(c)
	session.Set("isAdmin", true)
	if err := session.Save(); err != nil {
		logger.Error.Printf("AdminLogin: Failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	logger.Info.Printf("AdminLogin: Admin %s signed in", username)
	c.Redirect(http.StatusFound, "/admin")
}

// ---------------- admin dashboard ----------------

// AdminDashboard shows record counts from the last syncs plus the
// most recent venue claims. Counts include duplicate rows, which is
// itself useful: the drift between counts and distinct remote ids
// shows how often members re-sync.
func AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	groups, err := store.CountGroups(ctx)
	if err != nil {
		logger.Error.Printf("AdminDashboard: Failed to count groups: %v", err)
		c.String(http.StatusInternalServerError, "dashboard unavailable")
		return
	}
	venues, err := store.CountVenues(ctx)
	if err != nil {
		logger.Error.Printf("AdminDashboard: Failed to count venues: %v", err)
		c.String(http.StatusInternalServerError, "dashboard unavailable")
		return
	}
	events, err := store.CountEvents(ctx)
	if err != nil {
		logger.Error.Printf("AdminDashboard: Failed to count events: %v", err)
		c.String(http.StatusInternalServerError, "dashboard unavailable")
		return
	}

	claims, err := store.ListRecentClaims(ctx, 20)
	if err != nil {
		logger.Error.Printf("AdminDashboard: Failed to list claims: %v", err)
		c.String(http.StatusInternalServerError, "dashboard unavailable")
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"GroupCount": groups,
		"VenueCount": venues,
		"EventCount": events,
		"Claims":     claims,
	})
}
