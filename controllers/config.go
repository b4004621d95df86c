// Package controllers file: controllers/config.go
package controllers

import (
	"time"

	"golang.org/x/oauth2"

	"go-meetups/logger"
	"go-meetups/services"
	"go-meetups/storage"
)

var (
	// ApplicationURL is the externally reachable base URL of this app,
	// used for QR codes and the OAuth redirect.
	ApplicationURL string

	apiBaseURL       string
	oauthConf        *oauth2.Config
	store            storage.Store
	syncMetrics      services.SyncMetrics
	maximumStaleness time.Duration
)

// Config carries everything the handlers need. Populated once at startup.
type Config struct {
	ApplicationURL   string
	APIBaseURL       string
	OAuth            *oauth2.Config
	Store            storage.Store
	Metrics          services.SyncMetrics
	MaximumStaleness time.Duration
}

// SetConfig sets global handler configuration
func SetConfig(cfg Config) {
	ApplicationURL = cfg.ApplicationURL
	apiBaseURL = cfg.APIBaseURL
	oauthConf = cfg.OAuth
	store = cfg.Store
	syncMetrics = cfg.Metrics
	maximumStaleness = cfg.MaximumStaleness
	logger.Info.Printf("SetConfig: Global config updated: ApplicationURL=%s, APIBaseURL=%s", cfg.ApplicationURL, cfg.APIBaseURL)
}
