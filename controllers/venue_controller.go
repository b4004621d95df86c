// Package controllers file: controllers/venue_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"go-meetups/forms"
	"go-meetups/logger"
	"go-meetups/models"
	"go-meetups/services"
)

// Search renders the venue search page and runs searches. The only
// cross-field rule in the app lives on this form: searching near the
// current location requires at least one coordinate.
func Search(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.HTML(http.StatusOK, "search.html", gin.H{"Form": &forms.VenueSearchForm{}})
		return
	}

	form := &forms.VenueSearchForm{}
	if errs := forms.Bind(c.Request, form); !errs.Valid() {
		logger.Warn.Printf("Search: Invalid search form: %v", errs)
		c.HTML(http.StatusOK, "search.html", gin.H{"Form": form, "Errors": errs})
		return
	}

	venues, err := store.SearchVenues(c.Request.Context(), form.Name, form.Near())
	if err != nil {
		logger.Error.Printf("Search: Venue search failed: %v", err)
		c.HTML(http.StatusInternalServerError, "search.html", gin.H{
			"Form":  form,
			"Error": "Search failed, please try again.",
		})
		return
	}

	logger.Info.Printf("Search: %d venues matched %q", len(venues), form.Name)
	c.HTML(http.StatusOK, "search.html", gin.H{"Form": form, "Venues": venues})
}

// VenueEdit shows and saves the venue details form.
func VenueEdit(c *gin.Context) {
	venue, ok := venueFromPath(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodGet {
		form := venueEditPrefill(venue)
		c.HTML(http.StatusOK, "venue_edit.html", gin.H{"Venue": venue, "Form": form})
		return
	}

	form := &forms.VenueEditForm{}
	if errs := forms.Bind(c.Request, form); !errs.Valid() {
		c.HTML(http.StatusOK, "venue_edit.html", gin.H{"Venue": venue, "Form": form, "Errors": errs})
		return
	}

	form.ApplyTo(venue)
	if err := store.UpdateVenueDetails(c.Request.Context(), venue); err != nil {
		logger.Error.Printf("VenueEdit: Failed to update venue %d: %v", venue.RemoteID, err)
		c.HTML(http.StatusInternalServerError, "venue_edit.html", gin.H{
			"Venue": venue,
			"Form":  form,
			"Error": "Saving failed, please try again.",
		})
		return
	}

	logger.Info.Printf("VenueEdit: Venue %d updated", venue.RemoteID)
	setFlash(sessions.Default(c), "Venue details saved.")
	c.Redirect(http.StatusFound, "/")
}

// VenueClaim lets a host claim a venue. The claim form carries the
// full edit field set plus a required confirmation; a valid submission
// records the claim and writes the details onto the venue.
func VenueClaim(c *gin.Context) {
	venue, ok := venueFromPath(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodGet {
		form := &forms.VenueClaimForm{VenueEditForm: *venueEditPrefill(venue)}
		c.HTML(http.StatusOK, "venue_claim.html", gin.H{"Venue": venue, "Form": form})
		return
	}

	form := &forms.VenueClaimForm{}
	if errs := forms.Bind(c.Request, form); !errs.Valid() {
		c.HTML(http.StatusOK, "venue_claim.html", gin.H{"Venue": venue, "Form": form, "Errors": errs})
		return
	}

	claim := &models.VenueClaim{
		VenueID:      venue.RemoteID,
		ContactName:  form.ContactName,
		ContactEmail: form.ContactEmail,
		ContactPhone: form.ContactPhone,
	}
	if err := store.SaveVenueClaim(c.Request.Context(), claim); err != nil {
		logger.Error.Printf("VenueClaim: Failed to save claim for venue %d: %v", venue.RemoteID, err)
		c.HTML(http.StatusInternalServerError, "venue_claim.html", gin.H{
			"Venue": venue,
			"Form":  form,
			"Error": "Saving failed, please try again.",
		})
		return
	}

	form.ApplyTo(venue)
	if err := store.UpdateVenueDetails(c.Request.Context(), venue); err != nil {
		logger.Error.Printf("VenueClaim: Claim saved but venue %d update failed: %v", venue.RemoteID, err)
	}

	logger.Info.Printf("VenueClaim: Venue %d claimed by %s", venue.RemoteID, form.ContactName)
	setFlash(sessions.Default(c), "Thanks! Your venue is claimed.")
	c.Redirect(http.StatusFound, "/")
}

// VenueQRCode serves a PNG QR code pointing at the venue's public page,
// for printing at the venue itself.
func VenueQRCode(c *gin.Context) {
	venue, ok := venueFromPath(c)
	if !ok {
		return
	}

	venueURL := ApplicationURL + "/venue/" + strconv.FormatInt(venue.RemoteID, 10) + "/claim"
	png, err := services.GenerateVenueQRCode(venueURL, 300, qrcode.Encode)
	if err != nil {
		logger.Error.Printf("VenueQRCode: Error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", "inline; filename=\"qrcode.png\"")
	if _, err := c.Writer.Write(png); err != nil {
		logger.Error.Printf("VenueQRCode: Error writing QR code bytes: %v", err)
	}
}

// RequestForSpace shows the host-contact form for an event, prefilled
// from the signed-in member and the event record.
func RequestForSpace(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("eventID"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "event not found")
		return
	}

	event, err := store.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		logger.Warn.Printf("RequestForSpace: Unknown event %d: %v", eventID, err)
		c.String(http.StatusNotFound, "event not found")
		return
	}

	if c.Request.Method == http.MethodPost {
		form := &forms.RequestForSpaceForm{}
		if errs := forms.Bind(c.Request, form); !errs.Valid() {
			c.HTML(http.StatusOK, "request_space.html", gin.H{"Event": event, "Form": form, "Errors": errs})
			return
		}
		logger.Info.Printf("RequestForSpace: Request for event %d from %s <%s>", event.RemoteID, form.Name, form.Email)
		setFlash(sessions.Default(c), "Your request has been sent!")
		c.Redirect(http.StatusFound, "/")
		return
	}

	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	// The local group record is just an id; the display name rides in
	// on the link from the event listing.
	group := forms.GroupDetail{Name: c.Query("group_name")}
	if group.Name == "" {
		group.Name = event.GroupID
	}

	initial := forms.NewRequestForSpaceInitial(user, event, group)
	form := &forms.RequestForSpaceForm{
		Name:  initial.Name,
		Email: initial.Email,
		Phone: initial.Phone,
		Body:  initial.Body,
	}
	c.HTML(http.StatusOK, "request_space.html", gin.H{"Event": event, "Form": form})
}

// venueFromPath loads the venue named by the :id path segment. On
// failure it writes the response itself and returns ok=false.
func venueFromPath(c *gin.Context) (*models.Venue, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "venue not found")
		return nil, false
	}
	venue, err := store.GetVenue(c.Request.Context(), id)
	if err != nil {
		logger.Warn.Printf("venueFromPath: Unknown venue %d: %v", id, err)
		c.String(http.StatusNotFound, "venue not found")
		return nil, false
	}
	return venue, true
}

// venueEditPrefill seeds the edit form from the stored venue.
func venueEditPrefill(venue *models.Venue) *forms.VenueEditForm {
	form := &forms.VenueEditForm{
		ID:           strconv.FormatInt(venue.RemoteID, 10),
		ContactName:  venue.ContactName,
		ContactEmail: venue.ContactEmail,
		ContactPhone: venue.ContactPhone,
		Instructions: venue.Instructions,
	}
	if venue.Capacity > 0 {
		form.Capacity = strconv.Itoa(venue.Capacity)
	}
	if venue.NeedNames {
		form.NeedNames = "on"
	}
	if venue.Food {
		form.Food = "on"
	}
	if venue.AV {
		form.AV = "on"
	}
	if venue.Chairs {
		form.Chairs = "on"
	}
	return form
}

// currentUser loads the signed-in member, or nil when the session has
// no member or the record is gone.
func currentUser(c *gin.Context) *models.User {
	session := sessions.Default(c)
	memberID, ok := session.Get("member_id").(int64)
	if !ok {
		return nil
	}
	user, err := store.GetUser(c.Request.Context(), memberID)
	if err != nil {
		logger.Warn.Printf("currentUser: Session member %d not in store: %v", memberID, err)
		return nil
	}
	return user
}
