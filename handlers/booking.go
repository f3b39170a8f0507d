package handlers

import (
	"net/http"

	"artisly/services/booking"
	"artisly/utils"

	"github.com/gin-gonic/gin"
)

// CreateBookingHandler files a new booking request against an artist.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	b, err := hb.Bookings.Create(c.Request.Context(), caller, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler returns a booking visible to the caller.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	b, err := hb.Bookings.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookingsHandler lists the caller's bookings, newest first.
func (hb *HandlerBundle) ListMyBookingsHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	bookings, err := hb.Bookings.ListMine(c.Request.Context(), caller)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AcceptBookingHandler moves a pending booking to accepted.
func (hb *HandlerBundle) AcceptBookingHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	b, err := hb.Bookings.Accept(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeclineBookingHandler declines a pending booking.
func (hb *HandlerBundle) DeclineBookingHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input struct {
		Reason string `json:"reason"`
	}
	// Reason is optional; an empty body is fine.
	_ = c.ShouldBindJSON(&input)

	b, err := hb.Bookings.Decline(c.Request.Context(), caller, c.Param("id"), input.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteBookingHandler marks an in-progress booking as completed.
func (hb *HandlerBundle) CompleteBookingHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	b, err := hb.Bookings.Complete(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler cancels a booking, refunding any escrowed payment.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	b, err := hb.Bookings.Cancel(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
