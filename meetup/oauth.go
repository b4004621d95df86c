// Package meetup file: meetup/oauth.go
package meetup

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"go-meetups/models"
)

// OAuthEndpoint is Meetup's OAuth2 authorization endpoint.
var OAuthEndpoint = oauth2.Endpoint{
	AuthURL:  "https://secure.meetup.com/oauth2/authorize",
	TokenURL: "https://secure.meetup.com/oauth2/access",
}

// OAuthConfig builds the oauth2 configuration used by the login
// controllers. Token exchange itself is handled by the oauth2 package.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     OAuthEndpoint,
	}
}

// Refresher renews a user's OAuth token when it has gone stale. It
// wraps one session's token; after a sync the controller re-saves
// Token() into the session.
type Refresher struct {
	conf  *oauth2.Config
	token *oauth2.Token
	now   func() time.Time
}

// NewRefresher wraps a session token for staleness checks.
func NewRefresher(conf *oauth2.Config, token *oauth2.Token) *Refresher {
	return &Refresher{conf: conf, token: token, now: time.Now}
}

// Token returns the possibly-renewed token.
func (r *Refresher) Token() *oauth2.Token {
	return r.token
}

// RefreshIfNeeded renews the token when the user's auth state is older
// than maximumStaleness. A fresh enough user is a no-op.
func (r *Refresher) RefreshIfNeeded(ctx context.Context, user *models.User, maximumStaleness time.Duration) error {
	if r.now().Sub(user.LastRefreshed) <= maximumStaleness {
		return nil
	}
	renewed, err := r.conf.TokenSource(ctx, r.token).Token()
	if err != nil {
		return err
	}
	r.token = renewed
	user.LastRefreshed = r.now()
	return nil
}
