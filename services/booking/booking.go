package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	artistRepo "artisly/database/repository/artist"
	bookingRepo "artisly/database/repository/booking"
	"artisly/models"
	"artisly/services/notification"
	"artisly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// paymentReminderDelay is how long an accepted booking may stay unpaid before
// the customer gets nudged.
const paymentReminderDelay = 24 * time.Hour

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	ArtistRepo artistRepo.ArtistRepository
	Escrow     EscrowLedger
	Notifier   notification.Dispatcher
	Reminders  ReminderScheduler // optional
}

func (s *DefaultBookingService) Create(ctx context.Context, caller models.Caller, input CreateBookingInput) (*models.Booking, error) {
	artist, err := s.ArtistRepo.GetByID(input.ArtistID)
	if err != nil {
		return nil, utils.NewUnavailable("could not look up artist")
	}
	if artist == nil {
		return nil, utils.NewNotFound("Artist not found")
	}
	if artist.UserID == caller.ID {
		return nil, utils.NewBadRequest("You cannot book yourself")
	}
	if artist.ArtistType == models.ArtistTypePhysical {
		return nil, utils.NewBadRequest("Physical artists cannot be booked online; contact them directly")
	}
	if artist.Status != models.ArtistStatusApproved {
		return nil, utils.NewBadRequest("Artist is not accepting bookings")
	}

	endTime, err := models.ComputeEndTime(input.StartTime, input.DurationHours)
	if err != nil {
		return nil, utils.NewBadRequest("Invalid start time, expected HH:MM")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, utils.NewBadRequest("Invalid date, expected YYYY-MM-DD")
	}

	currency := strings.ToLower(input.Currency)
	if currency == "" {
		currency = "usd"
	}

	now := time.Now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		CustomerID:    caller.ID,
		ArtistID:      artist.ID,
		Service:       input.Service,
		Date:          input.Date,
		StartTime:     input.StartTime,
		DurationHours: input.DurationHours,
		EndTime:       endTime,
		Location:      input.Location,
		TotalAmount:   input.TotalAmount,
		Currency:      currency,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.BookingPaymentPending,
		DeliveryTime:  artist.DeliveryTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, utils.NewUnavailable("could not create booking")
	}

	s.notify(ctx, artist.ID, models.RecipientArtist, models.EventBookingCreated,
		"New booking request",
		fmt.Sprintf("You have a new booking request for %s on %s.", b.Service, b.Date),
		b.ID)
	return b, nil
}

func (s *DefaultBookingService) Accept(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	b, err := s.loadForArtist(caller, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusPending {
		return nil, utils.NewBadRequest("Booking is already " + b.Status)
	}

	update := bson.M{"$set": bson.M{"status": models.BookingStatusAccepted, "updated_at": time.Now()}}
	matched, err := s.Repo.UpdateStatusIf(bookingID, []string{models.BookingStatusPending}, update)
	if err != nil {
		return nil, utils.NewUnavailable("could not update booking")
	}
	if !matched {
		return nil, utils.NewConflict("Booking was already decided")
	}
	b.Status = models.BookingStatusAccepted

	s.notify(ctx, b.CustomerID, models.RecipientCustomer, models.EventBookingAccepted,
		"Booking accepted",
		fmt.Sprintf("Your booking for %s on %s was accepted. Complete payment to start.", b.Service, b.Date),
		b.ID)

	if s.Reminders != nil {
		if err := s.Reminders.SchedulePaymentReminder(b.ID, paymentReminderDelay); err != nil {
			utils.GetLogger().Warn("failed to schedule payment reminder", zap.String("booking", b.ID), zap.Error(err))
		}
	}
	return b, nil
}

func (s *DefaultBookingService) Decline(ctx context.Context, caller models.Caller, bookingID, reason string) (*models.Booking, error) {
	b, err := s.loadForArtist(caller, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusPending {
		return nil, utils.NewBadRequest("Booking is already " + b.Status)
	}

	update := bson.M{"$set": bson.M{
		"status":     models.BookingStatusDeclined,
		"reason":     reason,
		"updated_at": time.Now(),
	}}
	matched, err := s.Repo.UpdateStatusIf(bookingID, []string{models.BookingStatusPending}, update)
	if err != nil {
		return nil, utils.NewUnavailable("could not update booking")
	}
	if !matched {
		return nil, utils.NewConflict("Booking was already decided")
	}
	b.Status = models.BookingStatusDeclined
	b.Reason = reason

	s.notify(ctx, b.CustomerID, models.RecipientCustomer, models.EventBookingDeclined,
		"Booking declined",
		fmt.Sprintf("Your booking for %s on %s was declined.", b.Service, b.Date),
		b.ID)
	return b, nil
}

func (s *DefaultBookingService) Complete(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	b, err := s.loadForArtist(caller, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusInProgress {
		return nil, utils.NewBadRequest("Only a paid, in-progress booking can be completed")
	}

	update := bson.M{"$set": bson.M{"status": models.BookingStatusCompleted, "updated_at": time.Now()}}
	matched, err := s.Repo.UpdateStatusIf(bookingID, []string{models.BookingStatusInProgress}, update)
	if err != nil {
		return nil, utils.NewUnavailable("could not update booking")
	}
	if !matched {
		return nil, utils.NewConflict("Booking was updated concurrently")
	}
	b.Status = models.BookingStatusCompleted

	s.notify(ctx, b.CustomerID, models.RecipientCustomer, models.EventBookingCompleted,
		"Booking completed",
		fmt.Sprintf("Your booking for %s was marked completed. Please confirm and leave a review.", b.Service),
		b.ID)
	return b, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch booking")
	}
	if b == nil {
		return nil, utils.NewNotFound("Booking not found")
	}
	if b.CustomerID != caller.ID && !caller.IsAdmin() {
		return nil, utils.NewForbidden("You do not own this booking")
	}
	if b.IsTerminal() {
		return nil, utils.NewBadRequest("Booking is already " + b.Status)
	}

	// Money first: an in-escrow payment must be reversed before the booking
	// reaches a terminal state.
	if err := s.Escrow.RefundForCancellation(ctx, b.ID); err != nil {
		return nil, err
	}

	active := []string{models.BookingStatusPending, models.BookingStatusAccepted, models.BookingStatusInProgress}
	update := bson.M{"$set": bson.M{"status": models.BookingStatusCancelled, "updated_at": time.Now()}}
	matched, err := s.Repo.UpdateStatusIf(bookingID, active, update)
	if err != nil {
		return nil, utils.NewUnavailable("could not update booking")
	}
	if !matched {
		return nil, utils.NewConflict("Booking was updated concurrently")
	}
	b.Status = models.BookingStatusCancelled

	s.notify(ctx, b.ArtistID, models.RecipientArtist, models.EventBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("The booking for %s on %s was cancelled by the customer.", b.Service, b.Date),
		b.ID)
	return b, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch booking")
	}
	if b == nil {
		return nil, utils.NewNotFound("Booking not found")
	}
	if caller.IsAdmin() || b.CustomerID == caller.ID {
		return b, nil
	}
	if artist, _ := s.ArtistRepo.GetByUserID(caller.ID); artist != nil && artist.ID == b.ArtistID {
		return b, nil
	}
	return nil, utils.NewForbidden("You are not a participant of this booking")
}

func (s *DefaultBookingService) ListMine(ctx context.Context, caller models.Caller) ([]models.Booking, error) {
	if caller.Role == models.RoleArtist {
		artist, err := s.ArtistRepo.GetByUserID(caller.ID)
		if err != nil {
			return nil, utils.NewUnavailable("could not look up artist profile")
		}
		if artist == nil {
			return nil, utils.NewNotFound("Artist profile not found")
		}
		bookings, err := s.Repo.ListByArtist(artist.ID)
		if err != nil {
			return nil, utils.NewUnavailable("could not list bookings")
		}
		return bookings, nil
	}
	bookings, err := s.Repo.ListByCustomer(caller.ID)
	if err != nil {
		return nil, utils.NewUnavailable("could not list bookings")
	}
	return bookings, nil
}

// loadForArtist fetches a booking and verifies the caller is its artist.
// Admins skip the ownership check but not the state checks performed above.
func (s *DefaultBookingService) loadForArtist(caller models.Caller, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch booking")
	}
	if b == nil {
		return nil, utils.NewNotFound("Booking not found")
	}
	if caller.IsAdmin() {
		return b, nil
	}
	artist, err := s.ArtistRepo.GetByUserID(caller.ID)
	if err != nil {
		return nil, utils.NewUnavailable("could not look up artist profile")
	}
	if artist == nil || artist.ID != b.ArtistID {
		return nil, utils.NewForbidden("This booking belongs to another artist")
	}
	return b, nil
}

func (s *DefaultBookingService) notify(ctx context.Context, recipientID, kind, event, title, body, bookingID string) {
	if err := s.Notifier.Notify(ctx, recipientID, kind, event, title, body, bookingID, "booking"); err != nil {
		utils.GetLogger().Warn("failed to dispatch booking notification",
			zap.String("booking", bookingID),
			zap.String("event", event),
			zap.Error(err))
	}
}
