package artist

import (
	"context"
	"errors"
	"time"

	artistRepo "artisly/database/repository/artist"
	bookingRepo "artisly/database/repository/booking"
	reviewRepo "artisly/database/repository/review"
	"artisly/models"
	"artisly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultReviewService is the production implementation of ReviewService.
type DefaultReviewService struct {
	Repo        reviewRepo.ReviewRepository
	ArtistRepo  artistRepo.ArtistRepository
	BookingRepo bookingRepo.BookingRepository
}

func (s *DefaultReviewService) CreateReview(ctx context.Context, caller models.Caller, input ReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, utils.NewBadRequest("Rating must be between 1 and 5")
	}

	b, err := s.BookingRepo.GetByID(input.BookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch booking")
	}
	if b == nil {
		return nil, utils.NewNotFound("Booking not found")
	}
	if b.CustomerID != caller.ID {
		return nil, utils.NewForbidden("You can only review your own bookings")
	}
	if b.Status != models.BookingStatusCompleted {
		return nil, utils.NewBadRequest("Only completed bookings can be reviewed")
	}

	now := time.Now()
	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		ArtistID:   b.ArtistID,
		CustomerID: b.CustomerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Visible:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(review); err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicateKey) {
			return nil, utils.NewConflict("You have already reviewed this booking")
		}
		return nil, utils.NewUnavailable("could not create review")
	}

	if err := s.BookingRepo.UpdateWithDocument(b.ID, bson.M{"$set": bson.M{"review_id": review.ID}}); err != nil {
		utils.GetLogger().Warn("failed to link review to booking", zap.String("booking", b.ID), zap.Error(err))
	}

	s.recompute(b.ArtistID)
	return review, nil
}

func (s *DefaultReviewService) UpdateReview(ctx context.Context, caller models.Caller, reviewID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewBadRequest("Rating must be between 1 and 5")
	}

	review, err := s.Repo.GetByID(reviewID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch review")
	}
	if review == nil {
		return nil, utils.NewNotFound("Review not found")
	}
	if review.CustomerID != caller.ID && !caller.IsAdmin() {
		return nil, utils.NewForbidden("You can only edit your own reviews")
	}

	update := bson.M{"$set": bson.M{
		"rating":     rating,
		"comment":    comment,
		"updated_at": time.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(reviewID, update); err != nil {
		return nil, utils.NewUnavailable("could not update review")
	}
	review.Rating = rating
	review.Comment = comment

	s.recompute(review.ArtistID)
	return review, nil
}

func (s *DefaultReviewService) DeleteReview(ctx context.Context, caller models.Caller, reviewID string) error {
	review, err := s.Repo.GetByID(reviewID)
	if err != nil {
		return utils.NewUnavailable("could not fetch review")
	}
	if review == nil {
		return utils.NewNotFound("Review not found")
	}
	if review.CustomerID != caller.ID && !caller.IsAdmin() {
		return utils.NewForbidden("You can only delete your own reviews")
	}

	if err := s.Repo.Delete(reviewID); err != nil {
		return utils.NewUnavailable("could not delete review")
	}
	if err := s.BookingRepo.UpdateWithDocument(review.BookingID, bson.M{"$unset": bson.M{"review_id": ""}}); err != nil {
		utils.GetLogger().Warn("failed to unlink review from booking", zap.String("booking", review.BookingID), zap.Error(err))
	}

	s.recompute(review.ArtistID)
	return nil
}

func (s *DefaultReviewService) ListForArtist(ctx context.Context, artistID string) ([]models.Review, error) {
	reviews, err := s.Repo.ListByArtist(artistID)
	if err != nil {
		return nil, utils.NewUnavailable("could not list reviews")
	}
	return reviews, nil
}

// recompute rewrites the artist's rating fields from a full aggregate over the
// visible review set. The rating fields are owned here; nothing else writes
// them. A failed recompute is logged and healed by the next review write.
func (s *DefaultReviewService) recompute(artistID string) {
	stats, err := s.Repo.AggregateForArtist(artistID)
	if err != nil {
		utils.GetLogger().Error("failed to aggregate reviews", zap.String("artist", artistID), zap.Error(err))
		return
	}

	update := bson.M{"$set": bson.M{
		"rating":        stats.Average,
		"total_reviews": stats.Count,
		"updated_at":    time.Now(),
	}}
	if err := s.ArtistRepo.UpdateWithDocument(artistID, update); err != nil {
		utils.GetLogger().Error("failed to update artist rating", zap.String("artist", artistID), zap.Error(err))
	}
}
