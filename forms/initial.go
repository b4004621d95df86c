// Package forms file: forms/initial.go
package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go-meetups/models"
)

// RequestForSpaceInitial is the immutable prefill for a
// RequestForSpaceForm. It is derived, never persisted.
type RequestForSpaceInitial struct {
	Name  string
	Email string
	Phone string
	Body  string
}

// GroupDetail is the slice of group data the prefill needs. The local
// group record stores the identifier only; the name comes from the
// remote payload at render time.
type GroupDetail struct {
	Name string
}

// The {{host}} and {{venue_name}} placeholders are left for the
// message-rendering step that knows which venue is being contacted.
const requestBodyTemplate = `Hey there {{host}},

My name is %[1]s, and I'm interested in hosting an upcoming event for %[2]s at your location, {{venue_name}}. Our event, "%[3]s" on %[4]s will attract about %[5]s folks. If you can host us, please reply and let me know!

Thanks,
- %[1]s`

// Placeholders substituted when the event carries no date or limit.
const (
	eventDatePlaceholder = "[event date]"
	rsvpLimitPlaceholder = "[RSVP limit]"
)

// zeroPad collapses the zero padding strftime-style formatting leaves
// on the day of month (before the comma) and the hour (before the
// colon).
var zeroPad = regexp.MustCompile(`0(\d[,:])`)

// NewRequestForSpaceInitial builds the prefill for a member asking a
// host about an event.
func NewRequestForSpaceInitial(user *models.User, event *models.Event, group GroupDetail) RequestForSpaceInitial {
	eventDate := eventDatePlaceholder
	if event.Time != nil {
		eventDate = formatEventDate(*event.Time)
	}

	eventSize := rsvpLimitPlaceholder
	if event.RSVPLimit != nil {
		eventSize = strconv.Itoa(*event.RSVPLimit)
	}

	return RequestForSpaceInitial{
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Body:  fmt.Sprintf(requestBodyTemplate, user.Name, group.Name, event.Name, eventDate, eventSize),
	}
}

// formatEventDate renders an event time (milliseconds since epoch) as
// "Weekday Month D, YYYY at H:MM AM/PM".
//
// Times are assumed to be in America/New_York rather than looked up
// per venue; like the system this replaces, the UTC reading is labeled
// with that zone without shifting the clock, so the rendered wall time
// is the UTC one.
func formatEventDate(ms int64) string {
	rendered := time.UnixMilli(ms).UTC().Format("Monday January 02, 2006 at 03:04 PM")
	return zeroPad.ReplaceAllString(rendered, "$1")
}
