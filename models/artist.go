package models

import "time"

// Artist approval statuses.
const (
	ArtistStatusPending   = "pending"
	ArtistStatusApproved  = "approved"
	ArtistStatusRejected  = "rejected"
	ArtistStatusSuspended = "suspended"
)

// Artist types. Physical artists are contacted directly and cannot be the
// target of a paid booking; remote artists go through booking + escrow.
const (
	ArtistTypePhysical = "physical"
	ArtistTypeRemote   = "remote"
)

// Subscription states initialized at approval time.
const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
)

// Artist is a bookable profile created by the approval migration.
type Artist struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Category     string    `bson:"category" json:"category"`
	ArtistType   string    `bson:"artist_type" json:"artist_type"`
	HourlyRate   float64   `bson:"hourly_rate" json:"hourly_rate"`
	DeliveryTime string    `bson:"delivery_time,omitempty" json:"delivery_time,omitempty"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Rating       float64   `bson:"rating" json:"rating"` // mean of visible reviews, 0 when none
	TotalReviews int       `bson:"total_reviews" json:"total_reviews"`
	Status       string    `bson:"status" json:"status"`
	Subscription string    `bson:"subscription" json:"subscription"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// physicalCategories lists categories whose artists perform in person.
var physicalCategories = map[string]bool{
	"dj":           true,
	"band":         true,
	"musician":     true,
	"dancer":       true,
	"photographer": true,
	"mc":           true,
}

// ArtistTypeForCategory derives the artist type from a service category.
// Unknown categories default to remote.
func ArtistTypeForCategory(category string) string {
	if physicalCategories[category] {
		return ArtistTypePhysical
	}
	return ArtistTypeRemote
}

// InitialSubscription returns the subscription state a freshly approved artist
// starts in. Physical artists need a paid plan before going live.
func InitialSubscription(artistType string) string {
	if artistType == ArtistTypePhysical {
		return SubscriptionInactive
	}
	return SubscriptionActive
}
