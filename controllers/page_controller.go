// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-meetups/logger"
)

// Health reports service liveness
func Health(c *gin.Context) {
	logger.Info.Println("Health: Health check requested")
	c.String(http.StatusOK, "OK")
}

// Index renders the landing page with any pending flash message
func Index(c *gin.Context) {
	session := sessions.Default(c)
	flash := popFlash(session)

	data := gin.H{
		"Flash":    flash,
		"SignedIn": session.Get("member_id") != nil,
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// Have renders the "I have space" page
func Have(c *gin.Context) {
	c.HTML(http.StatusOK, "have.html", gin.H{})
}

// Need renders the "I need space" page
func Need(c *gin.Context) {
	c.HTML(http.StatusOK, "need.html", gin.H{})
}

// Logout signs the member out and returns them to the landing page
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	memberID := session.Get("member_id")
	if memberID != nil {
		logger.Info.Printf("Logout: Logging out member %v", memberID)
	}

	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	} else {
		logger.Info.Println("Logout: Session cleared successfully")
	}

	c.Redirect(http.StatusFound, "/")
}

// Clear wipes the session without ceremony. Handy during OAuth debugging.
func Clear(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Clear: Error saving session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(session sessions.Session, message string) {
	session.Set("flash", message)
	if err := session.Save(); err != nil {
		logger.Error.Printf("setFlash: Error saving session: %v", err)
	}
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(session sessions.Session) string {
	flash, ok := session.Get("flash").(string)
	if !ok || flash == "" {
		return ""
	}
	session.Delete("flash")
	if err := session.Save(); err != nil {
		logger.Error.Printf("popFlash: Error saving session: %v", err)
	}
	return flash
}
