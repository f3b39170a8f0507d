package booking

import (
	"context"
	"time"

	"artisly/models"
)

// CreateBookingInput is the validated payload for booking creation.
type CreateBookingInput struct {
	ArtistID      string  `json:"artist_id" binding:"required"`
	Service       string  `json:"service" binding:"required"`
	Date          string  `json:"date" binding:"required"`       // "YYYY-MM-DD"
	StartTime     string  `json:"start_time" binding:"required"` // "HH:MM"
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0"`
	Location      string  `json:"location"`
	TotalAmount   float64 `json:"total_amount" binding:"required,gt=0"`
	Currency      string  `json:"currency"`
}

// EscrowLedger is the slice of the payment ledger the lifecycle manager
// consumes: refunding an in-escrow payment ahead of cancellation. A booking
// with no active payment refunds to a no-op.
type EscrowLedger interface {
	RefundForCancellation(ctx context.Context, bookingID string) error
}

// ReminderScheduler enqueues the deferred payment reminder sent when an
// accepted booking stays unpaid.
type ReminderScheduler interface {
	SchedulePaymentReminder(bookingID string, delay time.Duration) error
}

// BookingService owns the booking state machine. Every mutation applies a
// role-plus-ownership check, then a conditional status update; losing the
// update race surfaces as Conflict.
type BookingService interface {
	Create(ctx context.Context, caller models.Caller, input CreateBookingInput) (*models.Booking, error)
	Accept(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error)
	Decline(ctx context.Context, caller models.Caller, bookingID, reason string) (*models.Booking, error)
	Complete(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error)
	Get(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error)
	ListMine(ctx context.Context, caller models.Caller) ([]models.Booking, error)
}
