package handlers

import (
	"net/http"

	notificationRepo "artisly/database/repository/notification"
	userRepo "artisly/database/repository/user"
	"artisly/models"
	"artisly/services/artist"
	"artisly/services/booking"
	"artisly/services/payment"
	"artisly/services/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the wired services behind the HTTP surface. Routes
// call its methods; middleware borrows UserRepo for session resolution.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Users         user.UserService
	Bookings      booking.BookingService
	Escrow        payment.EscrowService
	Approval      artist.ApprovalService
	Reviews       artist.ReviewService
	Notifications notificationRepo.NotificationRepository
}

// callerFrom reads the authenticated caller set by the auth middleware. The
// second return is false when no caller is present, which means the route
// was wired without AuthMiddleware.
func callerFrom(c *gin.Context) (models.Caller, bool) {
	val, exists := c.Get("caller")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Insufficient authorization"})
		return models.Caller{}, false
	}
	caller, ok := val.(models.Caller)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Insufficient authorization"})
		return models.Caller{}, false
	}
	return caller, true
}
