// Package meetup is a thin client for the Meetup REST API.
// File: meetup/client.go
package meetup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"

	"go-meetups/logger"
)

// Endpoints maps the resource categories this application syncs to
// their API paths.
var Endpoints = map[string]string{
	"groups": "/2/groups",
	"venues": "/2/venues",
	"events": "/2/events",
}

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://api.meetup.com"

// ----------------------- page shape -----------------------

// Page is the envelope every paginated endpoint returns.
type Page struct {
	Meta    Meta              `json:"meta"`
	Results []json.RawMessage `json:"results"`
}

// Meta carries the pagination cursor. Next is the absolute URL of the
// following page, or empty on the last page.
type Meta struct {
	Next string `json:"next"`
}

// ----------------------- result shapes -----------------------

// GroupResult is one item from the groups endpoint. Self is nil when
// the payload has no membership block; that is not an error.
type GroupResult struct {
	ID   int64            `json:"id"`
	Name string           `json:"name"`
	Self *GroupMembership `json:"self"`
}

// GroupMembership describes the authenticated member's relationship
// to a group.
type GroupMembership struct {
	Role string `json:"role"`
}

// VenueResult is one item from the venues endpoint.
type VenueResult struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// EventResult is one item from the events endpoint. The nested group
// id is a string on the wire and stays a string.
type EventResult struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Time      *int64     `json:"time"`
	RSVPLimit *int       `json:"rsvp_limit"`
	Group     EventGroup `json:"group"`
}

// EventGroup is the group block nested in an event payload.
type EventGroup struct {
	ID string `json:"id"`
}

// MemberResult is the authenticated member, from /2/member/self.
type MemberResult struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

// ----------------------- client -----------------------

// Client issues authenticated requests on behalf of one user. The
// token is request-scoped (it comes from the session), so a Client is
// built per request and never shared.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a Client. A nil httpClient gets a 10 second per-request
// timeout; there is no retry policy, a failed page fails the caller.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, token: token, httpClient: httpClient}
}

// Get fetches every page of the endpoint, following meta.next until it
// is empty, and returns the concatenated results. Any page failure
// aborts the whole fetch.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]json.RawMessage, error) {
	pageURL := c.baseURL + endpoint
	if len(params) > 0 {
		pageURL += "?" + params.Encode()
	}

	var results []json.RawMessage
	for pageURL != "" {
		page, err := c.getPage(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("meetup get %s: %w", endpoint, err)
		}
		results = append(results, page.Results...)
		pageURL = page.Meta.Next
	}
	logger.Debug.Printf("[meetup.Get] %s returned %d results", endpoint, len(results))
	return results, nil
}

func (c *Client) getPage(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &page, nil
}

// ----------------------- typed fetches -----------------------

// Groups fetches the groups endpoint. Params should filter to the
// syncing member (member_id).
func (c *Client) Groups(ctx context.Context, params url.Values) ([]GroupResult, error) {
	raw, err := c.Get(ctx, Endpoints["groups"], params)
	if err != nil {
		return nil, err
	}
	groups := make([]GroupResult, 0, len(raw))
	for _, item := range raw {
		var group GroupResult
		if err := json.Unmarshal(item, &group); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Venues fetches the venues endpoint.
func (c *Client) Venues(ctx context.Context, params url.Values) ([]VenueResult, error) {
	raw, err := c.Get(ctx, Endpoints["venues"], params)
	if err != nil {
		return nil, err
	}
	venues := make([]VenueResult, 0, len(raw))
	for _, item := range raw {
		var venue VenueResult
		if err := json.Unmarshal(item, &venue); err != nil {
			return nil, fmt.Errorf("decode venue: %w", err)
		}
		venues = append(venues, venue)
	}
	return venues, nil
}

// Events fetches the events endpoint.
func (c *Client) Events(ctx context.Context, params url.Values) ([]EventResult, error) {
	raw, err := c.Get(ctx, Endpoints["events"], params)
	if err != nil {
		return nil, err
	}
	events := make([]EventResult, 0, len(raw))
	for _, item := range raw {
		var event EventResult
		if err := json.Unmarshal(item, &event); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// Self fetches the authenticated member. Unlike the category
// endpoints this is a single object, not a page.
func (c *Client) Self(ctx context.Context) (*MemberResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/2/member/self", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meetup get member: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("meetup get member: unexpected status %s", resp.Status)
	}

	var member MemberResult
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		return nil, fmt.Errorf("decode member: %w", err)
	}
	return &member, nil
}
