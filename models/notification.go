package models

import "time"

// Recipient kinds for notifications.
const (
	RecipientCustomer = "customer"
	RecipientArtist   = "artist"
)

// Notification event types emitted by the core.
const (
	EventBookingCreated   = "booking_created"
	EventBookingAccepted  = "booking_accepted"
	EventBookingDeclined  = "booking_declined"
	EventBookingCompleted = "booking_completed"
	EventBookingCancelled = "booking_cancelled"
	EventPaymentHeld      = "payment_held"
	EventPaymentReleased  = "payment_released"
	EventPaymentRefunded  = "payment_refunded"
	EventPaymentReminder  = "payment_reminder"
	EventArtistApproved   = "artist_approved"
	EventArtistRejected   = "artist_rejected"
)

// Notification is a persisted inbox row. Push delivery is best effort on top.
type Notification struct {
	ID            string    `bson:"id" json:"id"`
	RecipientID   string    `bson:"recipient_id" json:"recipient_id"`
	RecipientKind string    `bson:"recipient_kind" json:"recipient_kind"`
	EventType     string    `bson:"event_type" json:"event_type"`
	Title         string    `bson:"title" json:"title"`
	Body          string    `bson:"body" json:"body"`
	RelatedID     string    `bson:"related_id,omitempty" json:"related_id,omitempty"`
	RelatedKind   string    `bson:"related_kind,omitempty" json:"related_kind,omitempty"`
	Read          bool      `bson:"read" json:"read"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
