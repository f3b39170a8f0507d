package handlers

import (
	"net/http"

	"artisly/utils"

	"github.com/gin-gonic/gin"
)

// ListApplicationsHandler returns undecided artist applications.
func (hb *HandlerBundle) ListApplicationsHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	apps, err := hb.Approval.ListApplications(c.Request.Context(), caller)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// ApproveApplicationHandler migrates an application into an active artist.
func (hb *HandlerBundle) ApproveApplicationHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	a, err := hb.Approval.Approve(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// RejectApplicationHandler rejects and removes an application.
func (hb *HandlerBundle) RejectApplicationHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	if err := hb.Approval.Reject(c.Request.Context(), caller, c.Param("id"), input.Reason); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
