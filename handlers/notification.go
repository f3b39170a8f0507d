package handlers

import (
	"net/http"

	"artisly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListNotificationsHandler returns the caller's notification inbox.
func (hb *HandlerBundle) ListNotificationsHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	notifications, err := hb.Notifications.ListByRecipient(caller.ID)
	if err != nil {
		utils.GetLogger().Error("failed to list notifications", zap.String("recipient", caller.ID), zap.Error(err))
		utils.RespondError(c, utils.NewUnavailable("could not list notifications"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationReadHandler flags one of the caller's notifications as read.
func (hb *HandlerBundle) MarkNotificationReadHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := hb.Notifications.MarkRead(c.Param("id"), caller.ID); err != nil {
		utils.RespondError(c, utils.NewNotFound("Notification not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
