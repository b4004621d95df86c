// Package controllers file: controllers/user_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-meetups/forms"
	"go-meetups/logger"
)

// Profile shows and saves the signed-in member's contact details.
func Profile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if c.Request.Method == http.MethodGet {
		form := &forms.UserProfileForm{
			ID:    strconv.FormatInt(user.ID, 10),
			Email: user.Email,
			Phone: user.Phone,
		}
		c.HTML(http.StatusOK, "profile.html", gin.H{"User": user, "Form": form})
		return
	}

	form := &forms.UserProfileForm{}
	if errs := forms.Bind(c.Request, form); !errs.Valid() {
		c.HTML(http.StatusOK, "profile.html", gin.H{"User": user, "Form": form, "Errors": errs})
		return
	}

	user.Email = form.Email
	user.Phone = form.Phone
	if err := store.SaveUser(c.Request.Context(), user); err != nil {
		logger.Error.Printf("Profile: Failed to save member %d: %v", user.ID, err)
		c.HTML(http.StatusInternalServerError, "profile.html", gin.H{
			"User":  user,
			"Form":  form,
			"Error": "Saving failed, please try again.",
		})
		return
	}

	logger.Info.Printf("Profile: Member %d updated their profile", user.ID)
	setFlash(sessions.Default(c), "Profile saved.")
	c.Redirect(http.StatusFound, "/")
}
