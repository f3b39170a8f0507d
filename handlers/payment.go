package handlers

import (
	"net/http"

	"artisly/utils"

	"github.com/gin-gonic/gin"
)

// CreatePaymentIntentHandler opens a provider intent for a booking. The
// returned client secret is used by the customer's client to authorize the
// charge with the provider.
func (hb *HandlerBundle) CreatePaymentIntentHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	result, err := hb.Escrow.CreatePaymentIntent(c.Request.Context(), caller, input.BookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmPaymentHandler settles an authorized intent into escrow. Safe to
// retry: a repeated confirmation returns the already recorded payment.
func (hb *HandlerBundle) ConfirmPaymentHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input struct {
		ProviderTxnID string `json:"provider_txn_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	result, err := hb.Escrow.ConfirmPayment(c.Request.Context(), caller, input.ProviderTxnID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !result.Settled {
		c.JSON(http.StatusAccepted, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookingPaymentHandler returns the active payment for a booking.
func (hb *HandlerBundle) GetBookingPaymentHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	p, err := hb.Escrow.GetByBooking(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ReleasePaymentHandler releases a held payment's artist share after the
// booking completes.
func (hb *HandlerBundle) ReleasePaymentHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	p, err := hb.Escrow.ReleaseToArtist(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// RefundPaymentHandler reverses a payment. Admin only; a zero or omitted
// amount refunds the full payment.
func (hb *HandlerBundle) RefundPaymentHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input struct {
		Amount float64 `json:"amount"`
	}
	_ = c.ShouldBindJSON(&input)

	p, err := hb.Escrow.Refund(c.Request.Context(), caller, c.Param("id"), input.Amount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
