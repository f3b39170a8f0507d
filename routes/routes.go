package routes

import (
	"net/http"
	"time"

	"artisly/handlers"
	"artisly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and sign-in endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (require authentication)
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.MeHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterArtistRoutes registers artist discovery and application endpoints.
func RegisterArtistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/artists")
	{
		api.POST("/apply", hb.ApplyHandler)
		api.GET("", hb.ListArtistsHandler)
		api.GET("/:id", hb.GetArtistHandler)
		api.GET("/:id/reviews", hb.ListArtistReviewsHandler)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListMyBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.POST("/:id/accept", hb.AcceptBookingHandler)
		api.POST("/:id/decline", hb.DeclineBookingHandler)
		api.POST("/:id/complete", hb.CompleteBookingHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
		api.GET("/:id/payment", hb.GetBookingPaymentHandler)
	}
}

// RegisterPaymentRoutes sets up the escrow endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/intent", hb.CreatePaymentIntentHandler)
		api.POST("/confirm", hb.ConfirmPaymentHandler)
		api.POST("/:id/release", hb.ReleasePaymentHandler)
		api.POST("/:id/refund", hb.RefundPaymentHandler)
	}
}

// RegisterReviewRoutes sets up the review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", hb.CreateReviewHandler)
		api.PUT("/:id", hb.UpdateReviewHandler)
		api.DELETE("/:id", hb.DeleteReviewHandler)
	}
}

// RegisterNotificationRoutes sets up the notification inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.ListNotificationsHandler)
		api.POST("/:id/read", hb.MarkNotificationReadHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo), middleware.RequireAdmin())
		api.GET("/applications", hb.ListApplicationsHandler)
		api.POST("/applications/:id/approve", hb.ApproveApplicationHandler)
		api.POST("/applications/:id/reject", hb.RejectApplicationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Artisly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterArtistRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
