package models

import "time"

// ChatChannel links a booking's participants. One channel per booking,
// provisioned idempotently when the escrow hold succeeds.
type ChatChannel struct {
	ID           string    `bson:"id" json:"id"`
	BookingID    string    `bson:"booking_id" json:"booking_id"`
	Participants []string  `bson:"participants" json:"participants"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
