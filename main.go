// File: artisly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artisly/config"
	"artisly/cron"
	"artisly/database"
	artistRepoPkg "artisly/database/repository/artist"
	bookingRepoPkg "artisly/database/repository/booking"
	chatRepoPkg "artisly/database/repository/chat"
	notificationRepoPkg "artisly/database/repository/notification"
	paymentRepoPkg "artisly/database/repository/payment"
	pendingRepoPkg "artisly/database/repository/pending"
	reviewRepoPkg "artisly/database/repository/review"
	userRepoPkg "artisly/database/repository/user"
	"artisly/handlers"
	"artisly/middleware"
	"artisly/routes"
	"artisly/services/artist"
	"artisly/services/booking"
	"artisly/services/chat"
	"artisly/services/notification"
	"artisly/services/payment"
	"artisly/services/user"
	"artisly/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	artistRepo := artistRepoPkg.NewMongoArtistRepo()
	pendingRepo := pendingRepoPkg.NewMongoPendingArtistRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	chatRepo := chatRepoPkg.NewMongoChatChannelRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	notifier := &notification.DefaultDispatcher{
		Repo:    notificationRepo,
		Users:   userRepo,
		Artists: artistRepo,
	}
	chatService := &chat.DefaultProvisioner{
		Repo: chatRepo,
	}
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	escrowService := &payment.DefaultEscrowService{
		Repo:              paymentRepo,
		BookingRepo:       bookingRepo,
		ArtistRepo:        artistRepo,
		Provider:          payment.StripeClient{},
		Chat:              chatService,
		Notifier:          notifier,
		CommissionPercent: config.AppConfig.CommissionPercent,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:       bookingRepo,
		ArtistRepo: artistRepo,
		Escrow:     escrowService,
		Notifier:   notifier,
		Reminders:  cron.NewReminderClient(),
	}
	approvalService := &artist.DefaultApprovalService{
		PendingRepo: pendingRepo,
		ArtistRepo:  artistRepo,
		UserRepo:    userRepo,
		Notifier:    notifier,
	}
	reviewService := &artist.DefaultReviewService{
		Repo:        reviewRepo,
		ArtistRepo:  artistRepo,
		BookingRepo: bookingRepo,
	}

	// Background worker for deferred payment reminders.
	cron.InitReminderWorker(bookingRepo, notifier)

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      userRepo,
		Users:         userService,
		Bookings:      bookingService,
		Escrow:        escrowService,
		Approval:      approvalService,
		Reviews:       reviewService,
		Notifications: notificationRepo,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
