// Package controllers file: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"go-meetups/logger"
	"go-meetups/meetup"
	"go-meetups/models"
	"go-meetups/services"
	"go-meetups/storage"
)

// ComparePasswords checks if the given password matches the hashed password
func ComparePasswords(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// Login starts the OAuth flow: mint a state nonce, stash it in the
// session, and send the member to the provider's consent page.
func Login(c *gin.Context) {
	session := sessions.Default(c)

	state := uuid.NewString()
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		logger.Error.Printf("Login: Failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"Flash": "Internal error, please try again."})
		return
	}

	authURL := oauthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	logger.Info.Println("Login: Redirecting to OAuth consent page")
	c.Redirect(http.StatusFound, authURL)
}

// MeetupReturn is the OAuth redirect target. It validates the state
// nonce, exchanges the code, looks up or creates the local member
// record, runs a full sync, and signs the member in. Any failure
// lands the member back on the front page with a generic message.
func MeetupReturn(c *gin.Context) {
	session := sessions.Default(c)

	wantState, _ := session.Get("oauth_state").(string)
	session.Delete("oauth_state")
	if wantState == "" || c.Query("state") != wantState {
		logger.Warn.Println("MeetupReturn: OAuth state mismatch")
		failLogin(c, session)
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Warn.Printf("MeetupReturn: Provider returned no code (error=%q)", c.Query("error"))
		failLogin(c, session)
		return
	}

	token, err := oauthConf.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.Error.Printf("MeetupReturn: Token exchange failed: %v", err)
		failLogin(c, session)
		return
	}

	client := meetup.New(apiBaseURL, token.AccessToken, nil)
	self, err := client.Self(c.Request.Context())
	if err != nil {
		logger.Error.Printf("MeetupReturn: Failed to fetch member profile: %v", err)
		failLogin(c, session)
		return
	}

	user, err := loadOrCreateUser(c, store, self)
	if err != nil {
		logger.Error.Printf("MeetupReturn: Failed to load member %d: %v", self.ID, err)
		failLogin(c, session)
		return
	}

	refresher := meetup.NewRefresher(oauthConf, token)
	sync := services.NewSyncService(client, store, refresher, syncMetrics)
	if err := sync.SyncUser(c.Request.Context(), user, maximumStaleness); err != nil {
		logger.Error.Printf("MeetupReturn: Sync failed for member %d: %v", user.ID, err)
		failLogin(c, session)
		return
	}

	session.Set("member_id", user.ID)
	session.Set("meetup_token", refresher.Token().AccessToken)
	setFlash(session, "You are now signed in!")

	logger.Info.Printf("MeetupReturn: Member %d signed in", user.ID)
	c.Redirect(http.StatusFound, "/")
}

// loadOrCreateUser returns the stored user for the authenticated
// member, or a new record seeded from the profile payload on first
// login. Profile basics are re-seeded on every login; sync owns the
// rest of the record.
func loadOrCreateUser(c *gin.Context, store storage.Store, self *meetup.MemberResult) (*models.User, error) {
	user, err := store.GetUser(c.Request.Context(), self.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		user = &models.User{ID: self.ID}
	}
	user.Name = self.Name
	user.Email = self.Email
	user.Lon = self.Lon
	user.Lat = self.Lat
	return user, nil
}

func failLogin(c *gin.Context, session sessions.Session) {
	setFlash(session, "Sign in failed, please try again.")
	c.Redirect(http.StatusFound, "/")
}
