// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-meetups/logger"
)

// -------------- authentication middleware --------------

// AuthRequired is a middleware that ensures the user signed in through
// Meetup.
// How it works:
// - Retrieves the session from the request context.
// - Checks if the "member_id" session variable is set.
// - If no member is found, redirects to "/login" and aborts execution.
// - Otherwise, the request proceeds.
// Usage:
//
//	router.Use(AuthRequired)
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	memberID := session.Get("member_id")

	// block request if the member session is missing
	if memberID == nil {
		logger.Warn.Println("AuthRequired: No member found in session, redirecting to /login")
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	logger.Debug.Println("[AuthRequired] Member authenticated - proceeding with request")
	c.Next()
}
