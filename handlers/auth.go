package handlers

import (
	"net/http"

	"artisly/services/user"
	"artisly/utils"

	"github.com/gin-gonic/gin"
)

// RegisterHandler creates a customer account and signs it in.
func (hb *HandlerBundle) RegisterHandler(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	result, err := hb.Users.RegisterCustomer(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// LoginHandler authenticates any identity by email and password.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	result, err := hb.Users.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateFCMTokenHandler stores the caller's device push token.
func (hb *HandlerBundle) UpdateFCMTokenHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Users.UpdateFCMToken(c.Request.Context(), caller.ID, input.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MeHandler returns the caller's own identity.
func (hb *HandlerBundle) MeHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	u, err := hb.Users.GetByID(c.Request.Context(), caller.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
