package models

import "time"

// Review is one rating and comment per completed booking. Uniqueness on the
// booking reference guarantees at most one review per booking.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"booking_id"`
	ArtistID   string    `bson:"artist_id" json:"artist_id"`
	CustomerID string    `bson:"customer_id" json:"customer_id"`
	Rating     int       `bson:"rating" json:"rating"` // 1..5
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Visible    bool      `bson:"visible" json:"visible"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
