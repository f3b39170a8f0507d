package handlers

import (
	"net/http"

	"artisly/services/artist"
	"artisly/utils"

	"github.com/gin-gonic/gin"
)

// CreateReviewHandler files a review against a completed booking.
func (hb *HandlerBundle) CreateReviewHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input artist.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	review, err := hb.Reviews.CreateReview(c.Request.Context(), caller, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// UpdateReviewHandler edits the caller's review.
func (hb *HandlerBundle) UpdateReviewHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	review, err := hb.Reviews.UpdateReview(c.Request.Context(), caller, c.Param("id"), input.Rating, input.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReviewHandler removes a review and recomputes the artist rating.
func (hb *HandlerBundle) DeleteReviewHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := hb.Reviews.DeleteReview(c.Request.Context(), caller, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListArtistReviewsHandler lists an artist's visible reviews.
func (hb *HandlerBundle) ListArtistReviewsHandler(c *gin.Context) {
	reviews, err := hb.Reviews.ListForArtist(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
