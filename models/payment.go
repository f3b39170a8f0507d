package models

import (
	"math"
	"time"
)

// Payment statuses. A payment is "held" while funds sit in escrow and becomes
// "succeeded" once released to the artist.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusHeld      = "held"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusFailed    = "failed"
)

// Payment is one escrow record per successful payment attempt on a booking.
// CommissionAmount + ArtistPayout always equals Amount.
type Payment struct {
	ID                string    `bson:"id" json:"id"`
	BookingID         string    `bson:"booking_id" json:"booking_id"`
	CustomerID        string    `bson:"customer_id" json:"customer_id"`
	ArtistID          string    `bson:"artist_id" json:"artist_id"`
	Amount            float64   `bson:"amount" json:"amount"`
	Currency          string    `bson:"currency" json:"currency"`
	Method            string    `bson:"method,omitempty" json:"method,omitempty"`
	ProviderTxnID     string    `bson:"provider_txn_id" json:"provider_txn_id"`
	Status            string    `bson:"status" json:"status"`
	CommissionPercent float64   `bson:"commission_percent" json:"commission_percent"`
	CommissionAmount  float64   `bson:"commission_amount" json:"commission_amount"`
	ArtistPayout      float64   `bson:"artist_payout" json:"artist_payout"`
	ReleasedToArtist  bool      `bson:"released_to_artist" json:"released_to_artist"`
	RefundedAmount    float64   `bson:"refunded_amount,omitempty" json:"refunded_amount,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// ToMinorUnits converts a major-unit amount to integer minor units (cents).
// All provider-boundary and commission math happens in minor units.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts integer minor units back to a major-unit amount.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// SplitAmount divides a minor-unit amount into platform commission and artist
// payout. The two parts always sum to the original amount.
func SplitAmount(amountMinor int64, commissionPercent float64) (commissionMinor, payoutMinor int64) {
	commissionMinor = int64(math.Round(float64(amountMinor) * commissionPercent / 100))
	payoutMinor = amountMinor - commissionMinor
	return commissionMinor, payoutMinor
}
