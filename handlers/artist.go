package handlers

import (
	"net/http"

	"artisly/services/artist"
	"artisly/utils"

	"github.com/gin-gonic/gin"
)

// ApplyHandler files a new artist application for admin review.
func (hb *HandlerBundle) ApplyHandler(c *gin.Context) {
	var input artist.ApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	app, err := hb.Approval.SubmitApplication(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// GetArtistHandler returns a bookable artist profile.
func (hb *HandlerBundle) GetArtistHandler(c *gin.Context) {
	a, err := hb.Approval.GetArtist(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// ListArtistsHandler lists approved artist profiles.
func (hb *HandlerBundle) ListArtistsHandler(c *gin.Context) {
	artists, err := hb.Approval.ListArtists(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artists": artists})
}
