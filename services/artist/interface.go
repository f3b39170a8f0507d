package artist

import (
	"context"

	"artisly/models"
)

// ApplicationInput is the validated payload for an artist application.
type ApplicationInput struct {
	Email        string   `json:"email" binding:"required,email"`
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	Password     string   `json:"password" binding:"required,min=8"`
	HourlyRate   float64  `json:"hourly_rate" binding:"required,gt=0"`
	DeliveryTime string   `json:"delivery_time"`
	Bio          string   `json:"bio"`
	Portfolio    []string `json:"portfolio"`
}

// ApprovalService owns the pending-application state machine and the
// migration that turns an approved application into an identity plus a
// bookable artist profile.
type ApprovalService interface {
	// SubmitApplication files a new application; the credential is hashed
	// once here and carried through the migration unchanged.
	SubmitApplication(ctx context.Context, input ApplicationInput) (*models.PendingArtist, error)
	// ListApplications returns undecided applications for admin review.
	ListApplications(ctx context.Context, caller models.Caller) ([]models.PendingArtist, error)
	// Approve migrates an application into an active artist profile. Safe to
	// retry: every step re-checks existence before acting.
	Approve(ctx context.Context, caller models.Caller, applicationID string) (*models.Artist, error)
	// Reject marks an application rejected and removes it.
	Reject(ctx context.Context, caller models.Caller, applicationID, reason string) error
	// GetArtist returns a bookable artist profile.
	GetArtist(ctx context.Context, artistID string) (*models.Artist, error)
	// ListArtists returns all approved artist profiles.
	ListArtists(ctx context.Context) ([]models.Artist, error)
}

// ReviewInput is the validated payload for review creation.
type ReviewInput struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// ReviewService manages reviews and keeps every artist's rating equal to the
// mean of the currently visible reviews.
type ReviewService interface {
	CreateReview(ctx context.Context, caller models.Caller, input ReviewInput) (*models.Review, error)
	UpdateReview(ctx context.Context, caller models.Caller, reviewID string, rating int, comment string) (*models.Review, error)
	DeleteReview(ctx context.Context, caller models.Caller, reviewID string) error
	ListForArtist(ctx context.Context, artistID string) ([]models.Review, error)
}
