package paymentRepo

import (
	"errors"

	"artisly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrDuplicateKey is returned when an insert violates the unique index on
// provider_txn_id. Concurrent provider callbacks are expected to hit this.
var ErrDuplicateKey = errors.New("payment already exists for provider transaction")

// PaymentRepository defines methods for payment data access. Lookups return
// (nil, nil) when no document matches.
type PaymentRepository interface {
	// Create inserts a new payment record. Returns ErrDuplicateKey when a
	// payment for the same provider transaction already exists.
	Create(payment *models.Payment) error
	// GetByID retrieves a payment by its unique ID.
	GetByID(id string) (*models.Payment, error)
	// GetByProviderTxnID retrieves the payment linked to a provider transaction.
	GetByProviderTxnID(providerTxnID string) (*models.Payment, error)
	// GetActiveByBooking returns the non-failed payment for a booking, if any.
	GetActiveByBooking(bookingID string) (*models.Payment, error)
	// UpdateStatusIf applies updateDoc only while the payment status is one of
	// expected; false means the payment transitioned concurrently.
	UpdateStatusIf(id string, expected []string, updateDoc bson.M) (bool, error)
}
