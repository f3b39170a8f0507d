package models

import (
	"fmt"
	"time"
)

// Booking statuses. Transitions are monotonic: pending -> accepted|declined,
// accepted -> in_progress (escrow hold only), in_progress -> completed, and
// pending|accepted|in_progress -> cancelled.
const (
	BookingStatusPending    = "pending"
	BookingStatusAccepted   = "accepted"
	BookingStatusDeclined   = "declined"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Booking payment statuses, mirrored from the linked payment record.
const (
	BookingPaymentPending  = "pending"
	BookingPaymentHeld     = "held"
	BookingPaymentReleased = "released"
	BookingPaymentRefunded = "refunded"
)

// Booking represents one customer-artist engagement for a service.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	CustomerID    string    `bson:"customer_id" json:"customer_id"`
	ArtistID      string    `bson:"artist_id" json:"artist_id"`
	Service       string    `bson:"service" json:"service"`
	Date          string    `bson:"date" json:"date"`             // "YYYY-MM-DD"
	StartTime     string    `bson:"start_time" json:"start_time"` // "HH:MM", 24h
	DurationHours float64   `bson:"duration_hours" json:"duration_hours"`
	EndTime       string    `bson:"end_time" json:"end_time"`
	Location      string    `bson:"location,omitempty" json:"location,omitempty"`
	TotalAmount   float64   `bson:"total_amount" json:"total_amount"`
	Currency      string    `bson:"currency" json:"currency"`
	Status        string    `bson:"status" json:"status"`
	PaymentStatus string    `bson:"payment_status" json:"payment_status"`
	PaymentID     string    `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	ChatChannelID string    `bson:"chat_channel_id,omitempty" json:"chat_channel_id,omitempty"`
	ReviewID      string    `bson:"review_id,omitempty" json:"review_id,omitempty"`
	DeliveryTime  string    `bson:"delivery_time,omitempty" json:"delivery_time,omitempty"` // artist snapshot at creation
	Reason        string    `bson:"reason,omitempty" json:"reason,omitempty"`               // decline/cancel reason
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether no further status transition is allowed.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusDeclined:
		return true
	}
	return false
}

// ComputeEndTime derives the "HH:MM" end time from a start time and a duration
// in hours. Durations that cross midnight wrap around.
func ComputeEndTime(start string, durationHours float64) (string, error) {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return "", fmt.Errorf("invalid start time %q: %w", start, err)
	}
	end := t.Add(time.Duration(durationHours * float64(time.Hour)))
	return end.Format("15:04"), nil
}
