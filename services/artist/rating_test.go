package artist

import (
	"context"
	"testing"

	reviewRepo "artisly/database/repository/review"
	"artisly/models"
	"artisly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

func newReviews() (*DefaultReviewService, *MockReviewRepository, *MockArtistRepository, *MockBookingRepository) {
	reviews := new(MockReviewRepository)
	artists := new(MockArtistRepository)
	bookings := new(MockBookingRepository)
	svc := &DefaultReviewService{
		Repo:        reviews,
		ArtistRepo:  artists,
		BookingRepo: bookings,
	}
	return svc, reviews, artists, bookings
}

func completedBooking() *models.Booking {
	return &models.Booking{
		ID:         "bk-1",
		CustomerID: "cust-1",
		ArtistID:   "artist-1",
		Status:     models.BookingStatusCompleted,
	}
}

func TestCreateReview_RecomputesRating(t *testing.T) {
	svc, reviews, artists, bookings := newReviews()

	bookings.On("GetByID", "bk-1").Return(completedBooking(), nil)
	reviews.On("Create", mock.Anything).Return(nil)
	bookings.On("UpdateWithDocument", "bk-1", mock.Anything).Return(nil)
	reviews.On("AggregateForArtist", "artist-1").Return(reviewRepo.RatingStats{Average: 4.5, Count: 2}, nil)
	var ratingUpdate bson.M
	artists.On("UpdateWithDocument", "artist-1", mock.Anything).Run(func(args mock.Arguments) {
		ratingUpdate = args.Get(1).(bson.M)["$set"].(bson.M)
	}).Return(nil)

	review, err := svc.CreateReview(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, ReviewInput{
		BookingID: "bk-1",
		Rating:    5,
		Comment:   "great work",
	})

	assert.NoError(t, err)
	assert.True(t, review.Visible)
	assert.Equal(t, "artist-1", review.ArtistID)
	assert.Equal(t, 4.5, ratingUpdate["rating"])
	assert.Equal(t, 2, ratingUpdate["total_reviews"])
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	svc, reviews, _, _ := newReviews()

	_, err := svc.CreateReview(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, ReviewInput{
		BookingID: "bk-1",
		Rating:    6,
	})

	assert.Equal(t, utils.KindBadRequest, errKind(t, err))
	reviews.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReview_RequiresCompletedBooking(t *testing.T) {
	svc, _, _, bookings := newReviews()

	b := completedBooking()
	b.Status = models.BookingStatusInProgress
	bookings.On("GetByID", "bk-1").Return(b, nil)

	_, err := svc.CreateReview(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, ReviewInput{
		BookingID: "bk-1",
		Rating:    4,
	})

	assert.Equal(t, utils.KindBadRequest, errKind(t, err))
}

func TestCreateReview_StrangerForbidden(t *testing.T) {
	svc, _, _, bookings := newReviews()

	bookings.On("GetByID", "bk-1").Return(completedBooking(), nil)

	_, err := svc.CreateReview(context.Background(), models.Caller{ID: "cust-2", Role: models.RoleCustomer}, ReviewInput{
		BookingID: "bk-1",
		Rating:    4,
	})

	assert.Equal(t, utils.KindForbidden, errKind(t, err))
}

func TestCreateReview_SecondReviewConflicts(t *testing.T) {
	svc, reviews, _, bookings := newReviews()

	bookings.On("GetByID", "bk-1").Return(completedBooking(), nil)
	reviews.On("Create", mock.Anything).Return(reviewRepo.ErrDuplicateKey)

	_, err := svc.CreateReview(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, ReviewInput{
		BookingID: "bk-1",
		Rating:    4,
	})

	assert.Equal(t, utils.KindConflict, errKind(t, err))
}

func TestCreateReview_AggregateFailureStillReturnsReview(t *testing.T) {
	svc, reviews, artists, bookings := newReviews()

	bookings.On("GetByID", "bk-1").Return(completedBooking(), nil)
	reviews.On("Create", mock.Anything).Return(nil)
	bookings.On("UpdateWithDocument", "bk-1", mock.Anything).Return(nil)
	reviews.On("AggregateForArtist", "artist-1").Return(reviewRepo.RatingStats{}, assert.AnError)

	review, err := svc.CreateReview(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, ReviewInput{
		BookingID: "bk-1",
		Rating:    4,
	})

	assert.NoError(t, err)
	assert.NotNil(t, review)
	artists.AssertNotCalled(t, "UpdateWithDocument", mock.Anything, mock.Anything)
}

func storedReview() *models.Review {
	return &models.Review{
		ID:         "rev-1",
		BookingID:  "bk-1",
		ArtistID:   "artist-1",
		CustomerID: "cust-1",
		Rating:     3,
		Visible:    true,
	}
}

func TestUpdateReview_OwnerOnly(t *testing.T) {
	svc, reviews, _, _ := newReviews()

	reviews.On("GetByID", "rev-1").Return(storedReview(), nil)

	_, err := svc.UpdateReview(context.Background(), models.Caller{ID: "cust-2", Role: models.RoleCustomer}, "rev-1", 5, "")

	assert.Equal(t, utils.KindForbidden, errKind(t, err))
}

func TestUpdateReview_Recomputes(t *testing.T) {
	svc, reviews, artists, _ := newReviews()

	reviews.On("GetByID", "rev-1").Return(storedReview(), nil)
	reviews.On("UpdateWithDocument", "rev-1", mock.Anything).Return(nil)
	reviews.On("AggregateForArtist", "artist-1").Return(reviewRepo.RatingStats{Average: 5, Count: 1}, nil)
	artists.On("UpdateWithDocument", "artist-1", mock.Anything).Return(nil)

	review, err := svc.UpdateReview(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "rev-1", 5, "even better")

	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	artists.AssertExpectations(t)
}

func TestDeleteReview_AdminMayDelete(t *testing.T) {
	svc, reviews, artists, bookings := newReviews()

	reviews.On("GetByID", "rev-1").Return(storedReview(), nil)
	reviews.On("Delete", "rev-1").Return(nil)
	bookings.On("UpdateWithDocument", "bk-1", mock.Anything).Return(nil)
	// Last review gone: the rating drops back to zero.
	reviews.On("AggregateForArtist", "artist-1").Return(reviewRepo.RatingStats{}, nil)
	var ratingUpdate bson.M
	artists.On("UpdateWithDocument", "artist-1", mock.Anything).Run(func(args mock.Arguments) {
		ratingUpdate = args.Get(1).(bson.M)["$set"].(bson.M)
	}).Return(nil)

	err := svc.DeleteReview(context.Background(), models.Caller{ID: "admin-1", Role: models.RoleAdmin}, "rev-1")

	assert.NoError(t, err)
	assert.Equal(t, 0.0, ratingUpdate["rating"])
	assert.Equal(t, 0, ratingUpdate["total_reviews"])
}

func TestDeleteReview_StrangerForbidden(t *testing.T) {
	svc, reviews, _, _ := newReviews()

	reviews.On("GetByID", "rev-1").Return(storedReview(), nil)

	err := svc.DeleteReview(context.Background(), models.Caller{ID: "cust-2", Role: models.RoleCustomer}, "rev-1")

	assert.Equal(t, utils.KindForbidden, errKind(t, err))
	reviews.AssertNotCalled(t, "Delete", mock.Anything)
}
