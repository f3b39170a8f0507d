package models

import "time"

// Pending application statuses. Both decisions are terminal; the record is
// deleted once decided.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// PendingArtist holds an artist registration awaiting admin approval. The
// credential is stored already hashed and is carried over unchanged when the
// migration creates the identity.
type PendingArtist struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Category     string    `bson:"category" json:"category"`
	HourlyRate   float64   `bson:"hourly_rate" json:"hourly_rate"`
	DeliveryTime string    `bson:"delivery_time,omitempty" json:"delivery_time,omitempty"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Portfolio    []string  `bson:"portfolio,omitempty" json:"portfolio,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Status       string    `bson:"status" json:"status"`
	Reason       string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
