package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// ProviderStatusSucceeded is the provider status that settles an intent.
const ProviderStatusSucceeded = "succeeded"

// StripeClient implements ProviderClient on Stripe payment intents. The API
// key is set globally at startup (stripe.Key).
type StripeClient struct{}

func (StripeClient) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*ProviderIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}
	return fromStripeIntent(pi), nil
}

func (StripeClient) RetrieveIntent(ctx context.Context, providerTxnID string) (*ProviderIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(providerTxnID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to retrieve payment intent %s: %w", providerTxnID, err)
	}
	return fromStripeIntent(pi), nil
}

func (StripeClient) Refund(ctx context.Context, providerTxnID string, amountMinor int64) (*ProviderRefund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(providerTxnID),
	}
	params.Context = ctx
	if amountMinor > 0 {
		params.Amount = stripe.Int64(amountMinor)
	}

	r, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to refund payment intent %s: %w", providerTxnID, err)
	}
	return &ProviderRefund{ID: r.ID, Status: string(r.Status)}, nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *ProviderIntent {
	return &ProviderIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountMinor:  pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
}
