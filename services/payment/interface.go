package payment

import (
	"context"

	"artisly/models"
)

// ProviderIntent mirrors a payment-provider intent. Amounts are integer minor
// units; metadata round-trips the booking id so a provider callback resolves
// back to a local booking without a side lookup.
type ProviderIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountMinor  int64
	Currency     string
	Metadata     map[string]string
}

// ProviderRefund mirrors a provider-side refund.
type ProviderRefund struct {
	ID     string
	Status string
}

// ProviderClient is the payment-provider boundary.
type ProviderClient interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*ProviderIntent, error)
	RetrieveIntent(ctx context.Context, providerTxnID string) (*ProviderIntent, error)
	Refund(ctx context.Context, providerTxnID string, amountMinor int64) (*ProviderRefund, error)
}

// IntentResult is returned from CreatePaymentIntent; the client secret lets
// the caller authorize payment with the provider.
type IntentResult struct {
	ProviderTxnID string `json:"provider_txn_id"`
	ClientSecret  string `json:"client_secret"`
}

// ConfirmResult reports the outcome of a payment confirmation. When the
// provider has not settled the intent yet, Settled is false and no error is
// raised.
type ConfirmResult struct {
	Settled        bool            `json:"settled"`
	ProviderStatus string          `json:"provider_status,omitempty"`
	Payment        *models.Payment `json:"payment,omitempty"`
}

// EscrowService moves funds from customer to escrow, splits them and releases
// or refunds them, keeping the booking's payment state in sync.
type EscrowService interface {
	CreatePaymentIntent(ctx context.Context, caller models.Caller, bookingID string) (*IntentResult, error)
	ConfirmPayment(ctx context.Context, caller models.Caller, providerTxnID string) (*ConfirmResult, error)
	ReleaseToArtist(ctx context.Context, caller models.Caller, paymentID string) (*models.Payment, error)
	Refund(ctx context.Context, caller models.Caller, paymentID string, amount float64) (*models.Payment, error)
	GetByBooking(ctx context.Context, caller models.Caller, bookingID string) (*models.Payment, error)
	RefundForCancellation(ctx context.Context, bookingID string) error
}
