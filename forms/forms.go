// Package forms holds the validated form definitions for profile,
// venue and space-request submissions. Fields arrive from the request
// boundary as strings (checkboxes included); validation runs through
// struct tags, with a per-form hook for rules a single tag cannot
// express. Validation problems are field-scoped Errors values, never
// Go errors.
// File: forms/forms.go
package forms

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"go-meetups/models"
)

// Errors maps a form field name to a user-facing message. An empty map
// means the form is valid.
type Errors map[string]string

// Valid reports whether the form passed every rule.
func (e Errors) Valid() bool {
	return len(e) == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the form field name, not the Go field name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// crossValidator is implemented by forms with rules spanning fields or
// needing parsed values. It runs after the tag validators.
type crossValidator interface {
	validateCross(errs Errors)
}

// Bind populates the form from the request's form values and
// validates it.
func Bind(req *http.Request, form interface{}) Errors {
	if err := binding.Form.Bind(req, form); err != nil {
		return Errors{"_form": "Invalid form submission."}
	}
	return Validate(form)
}

// Validate runs the tag validators, then the form's cross hook.
func Validate(form interface{}) Errors {
	errs := Errors{}
	if err := validate.Struct(form); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				errs[fe.Field()] = message(fe)
			}
		} else {
			errs["_form"] = "Invalid form submission."
		}
	}
	if cv, ok := form.(crossValidator); ok {
		cv.validateCross(errs)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	}
	return "Invalid value."
}

// checkbox reports whether a checkbox-style string value is truthy. An
// unchecked box posts nothing at all.
func checkbox(value string) bool {
	return value != "" && value != "false"
}

// ----------------------- user profile -----------------------

// UserProfileForm edits the contact information associated with a user.
type UserProfileForm struct {
	ID    string `form:"_id"`
	Email string `form:"email" validate:"omitempty,email"`
	Phone string `form:"phone"`
}

// ----------------------- venue edit -----------------------

// VenueEditForm edits information associated with a venue.
//
// The contact information and capacity are required. All of the fields
// that make up the questionnaire portion of the form are optional.
type VenueEditForm struct {
	ID string `form:"_id"`

	ContactName  string `form:"contact_name" validate:"required"`
	ContactEmail string `form:"contact_email" validate:"required,email"`
	ContactPhone string `form:"contact_phone" validate:"required"`

	Capacity string `form:"capacity" validate:"required"`

	// Optional questionnaire fields
	NeedNames    string `form:"need_names"`
	Food         string `form:"food"`
	AV           string `form:"av"`
	Chairs       string `form:"chairs"`
	Instructions string `form:"instructions"`
}

func (f *VenueEditForm) validateCross(errs Errors) {
	if f.Capacity == "" {
		return // required already reported
	}
	if n, err := strconv.Atoi(f.Capacity); err != nil || n < 0 {
		errs["capacity"] = "Maximum capacity must be a whole number of zero or more."
	}
}

// CapacityValue returns the parsed capacity. Only meaningful after a
// successful validation.
func (f *VenueEditForm) CapacityValue() int {
	n, _ := strconv.Atoi(f.Capacity)
	return n
}

// ApplyTo writes the form's fields onto a venue record.
func (f *VenueEditForm) ApplyTo(venue *models.Venue) {
	venue.ContactName = f.ContactName
	venue.ContactEmail = f.ContactEmail
	venue.ContactPhone = f.ContactPhone
	venue.Capacity = f.CapacityValue()
	venue.NeedNames = checkbox(f.NeedNames)
	venue.Food = checkbox(f.Food)
	venue.AV = checkbox(f.AV)
	venue.Chairs = checkbox(f.Chairs)
	venue.Instructions = f.Instructions
}

// ----------------------- venue claim -----------------------

// VenueClaimForm carries the VenueEditForm field set plus a required
// confirmation. The edit fields are included by composition.
type VenueClaimForm struct {
	VenueEditForm

	Confirm string `form:"confirm" validate:"required"`
}

// ----------------------- venue search -----------------------

// VenueSearchForm searches for a venue. The coordinates arrive as
// hidden numeric-as-text fields filled by the browser.
type VenueSearchForm struct {
	Name               string `form:"name" validate:"required"`
	UseCurrentLocation string `form:"use_current_location"`
	Longitude          string `form:"longitude"`
	Latitude           string `form:"latitude"`
}

// validateCross is the only cross-field rule in the system: a search
// that asks to use the current location must carry at least one
// coordinate. It only applies when the toggle is truthy, and runs
// after the field validators.
func (f *VenueSearchForm) validateCross(errs Errors) {
	if !checkbox(f.UseCurrentLocation) {
		return
	}
	if f.Longitude == "" && f.Latitude == "" {
		errs["use_current_location"] = "It appears you have blocked this site from accessing your location."
	}
}

// Near returns the search origin, or nil when the form does not use
// the current location or the coordinates do not parse.
func (f *VenueSearchForm) Near() *models.GeoPoint {
	if !checkbox(f.UseCurrentLocation) {
		return nil
	}
	lon, lonErr := strconv.ParseFloat(f.Longitude, 64)
	lat, latErr := strconv.ParseFloat(f.Latitude, 64)
	if lonErr != nil && latErr != nil {
		return nil
	}
	return &models.GeoPoint{Lon: lon, Lat: lat}
}

// ----------------------- request for space -----------------------

// RequestForSpaceForm is the message a member sends to a venue host.
type RequestForSpaceForm struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required,email"`
	Phone string `form:"phone" validate:"required"`
	Body  string `form:"body" validate:"required"`
}
