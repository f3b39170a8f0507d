package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	artistRepo "artisly/database/repository/artist"
	bookingRepo "artisly/database/repository/booking"
	paymentRepo "artisly/database/repository/payment"
	"artisly/models"
	"artisly/services/chat"
	"artisly/services/notification"
	"artisly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultEscrowService is the production implementation of EscrowService.
type DefaultEscrowService struct {
	Repo        paymentRepo.PaymentRepository
	BookingRepo bookingRepo.BookingRepository
	ArtistRepo  artistRepo.ArtistRepository
	Provider    ProviderClient
	Chat        chat.Provisioner
	Notifier    notification.Dispatcher
	// CommissionPercent is the fixed platform cut applied to every hold.
	CommissionPercent float64
}

func (s *DefaultEscrowService) CreatePaymentIntent(ctx context.Context, caller models.Caller, bookingID string) (*IntentResult, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch booking")
	}
	if b == nil {
		return nil, utils.NewNotFound("Booking not found")
	}
	if b.CustomerID != caller.ID && !caller.IsAdmin() {
		return nil, utils.NewForbidden("You do not own this booking")
	}
	if b.Status != models.BookingStatusAccepted {
		return nil, utils.NewBadRequest("Booking must be accepted before payment")
	}
	if b.TotalAmount <= 0 {
		return nil, utils.NewBadRequest("Booking has no payable amount")
	}

	existing, err := s.Repo.GetActiveByBooking(bookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not check existing payments")
	}
	if existing != nil && (existing.Status == models.PaymentStatusHeld || existing.Status == models.PaymentStatusSucceeded) {
		return nil, utils.NewConflict("This booking is already paid")
	}

	intent, err := s.Provider.CreateIntent(ctx, models.ToMinorUnits(b.TotalAmount), b.Currency, map[string]string{
		"booking_id": b.ID,
	})
	if err != nil {
		utils.GetLogger().Error("provider intent creation failed", zap.String("booking", b.ID), zap.Error(err))
		return nil, utils.NewUnavailable("Payment provider is unavailable, please retry")
	}

	// No local state is written here; the same call can be repeated to restart
	// authorization until a confirmation lands.
	return &IntentResult{ProviderTxnID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (s *DefaultEscrowService) ConfirmPayment(ctx context.Context, caller models.Caller, providerTxnID string) (*ConfirmResult, error) {
	existing, err := s.Repo.GetByProviderTxnID(providerTxnID)
	if err != nil {
		return nil, utils.NewUnavailable("could not check payment state")
	}
	if existing != nil {
		// Repeated provider callback: the first confirmation already did all
		// side effects.
		return &ConfirmResult{Settled: true, ProviderStatus: ProviderStatusSucceeded, Payment: existing}, nil
	}

	intent, err := s.Provider.RetrieveIntent(ctx, providerTxnID)
	if err != nil {
		utils.GetLogger().Error("provider intent retrieval failed", zap.String("txn", providerTxnID), zap.Error(err))
		return nil, utils.NewUnavailable("Payment provider is unavailable, please retry")
	}
	if intent.Status != ProviderStatusSucceeded {
		return &ConfirmResult{Settled: false, ProviderStatus: intent.Status}, nil
	}

	bookingID := intent.Metadata["booking_id"]
	if bookingID == "" {
		return nil, utils.NewBadRequest("Payment is not linked to a booking")
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch booking")
	}
	if b == nil {
		return nil, utils.NewNotFound("Booking not found")
	}

	commissionMinor, payoutMinor := models.SplitAmount(intent.AmountMinor, s.CommissionPercent)
	now := time.Now()
	p := &models.Payment{
		ID:                uuid.New().String(),
		BookingID:         b.ID,
		CustomerID:        b.CustomerID,
		ArtistID:          b.ArtistID,
		Amount:            models.FromMinorUnits(intent.AmountMinor),
		Currency:          intent.Currency,
		ProviderTxnID:     providerTxnID,
		Status:            models.PaymentStatusHeld,
		CommissionPercent: s.CommissionPercent,
		CommissionAmount:  models.FromMinorUnits(commissionMinor),
		ArtistPayout:      models.FromMinorUnits(payoutMinor),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Repo.Create(p); err != nil {
		if errors.Is(err, paymentRepo.ErrDuplicateKey) {
			// Lost the insert race against a concurrent callback delivery.
			winner, err := s.Repo.GetByProviderTxnID(providerTxnID)
			if err != nil || winner == nil {
				return nil, utils.NewUnavailable("could not resolve concurrent confirmation")
			}
			return &ConfirmResult{Settled: true, ProviderStatus: ProviderStatusSucceeded, Payment: winner}, nil
		}
		return nil, utils.NewUnavailable("could not record payment")
	}

	update := bson.M{"$set": bson.M{
		"status":         models.BookingStatusInProgress,
		"payment_status": models.BookingPaymentHeld,
		"payment_id":     p.ID,
		"updated_at":     now,
	}}
	matched, err := s.BookingRepo.UpdateStatusIf(b.ID, []string{models.BookingStatusAccepted}, update)
	if err != nil {
		return nil, utils.NewUnavailable("could not update booking")
	}
	if !matched {
		// The booking reached a terminal state while funds were authorized;
		// escrow stays held for an admin refund.
		utils.GetLogger().Warn("payment held for non-payable booking",
			zap.String("booking", b.ID), zap.String("payment", p.ID))
		return nil, utils.NewConflict("Booking is no longer payable; the payment will be refunded")
	}

	if channelID, err := s.Chat.EnsureChannel(ctx, b.ID, []string{b.CustomerID, b.ArtistID}); err != nil {
		utils.GetLogger().Warn("failed to provision chat channel", zap.String("booking", b.ID), zap.Error(err))
	} else if err := s.BookingRepo.UpdateWithDocument(b.ID, bson.M{"$set": bson.M{"chat_channel_id": channelID}}); err != nil {
		utils.GetLogger().Warn("failed to link chat channel", zap.String("booking", b.ID), zap.Error(err))
	}

	s.notify(ctx, b.CustomerID, models.RecipientCustomer, models.EventPaymentHeld,
		"Payment confirmed",
		fmt.Sprintf("Your payment of %.2f %s is held in escrow until the booking completes.", p.Amount, p.Currency),
		p.ID)
	s.notify(ctx, b.ArtistID, models.RecipientArtist, models.EventPaymentHeld,
		"Booking paid",
		fmt.Sprintf("The booking for %s is paid and now in progress. Your payout will be %.2f %s.", b.Service, p.ArtistPayout, p.Currency),
		p.ID)

	return &ConfirmResult{Settled: true, ProviderStatus: ProviderStatusSucceeded, Payment: p}, nil
}

func (s *DefaultEscrowService) ReleaseToArtist(ctx context.Context, caller models.Caller, paymentID string) (*models.Payment, error) {
	p, err := s.Repo.GetByID(paymentID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch payment")
	}
	if p == nil {
		return nil, utils.NewNotFound("Payment not found")
	}
	if !caller.IsAdmin() {
		artist, err := s.ArtistRepo.GetByID(p.ArtistID)
		if err != nil {
			return nil, utils.NewUnavailable("could not look up artist")
		}
		if artist == nil || artist.UserID != caller.ID {
			return nil, utils.NewForbidden("Only the artist or an admin can release this payment")
		}
	}

	b, err := s.BookingRepo.GetByID(p.BookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch booking")
	}
	if b == nil || b.Status != models.BookingStatusCompleted {
		return nil, utils.NewBadRequest("Escrow is released only after the booking completes")
	}
	if p.Status != models.PaymentStatusHeld {
		return nil, utils.NewBadRequest("Payment is already " + p.Status)
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":             models.PaymentStatusSucceeded,
		"released_to_artist": true,
		"updated_at":         now,
	}}
	matched, err := s.Repo.UpdateStatusIf(p.ID, []string{models.PaymentStatusHeld}, update)
	if err != nil {
		return nil, utils.NewUnavailable("could not update payment")
	}
	if !matched {
		return nil, utils.NewConflict("Payment was updated concurrently")
	}
	p.Status = models.PaymentStatusSucceeded
	p.ReleasedToArtist = true

	if err := s.BookingRepo.UpdateWithDocument(p.BookingID, bson.M{"$set": bson.M{"payment_status": models.BookingPaymentReleased, "updated_at": now}}); err != nil {
		utils.GetLogger().Warn("failed to sync booking payment status", zap.String("booking", p.BookingID), zap.Error(err))
	}

	s.notify(ctx, p.ArtistID, models.RecipientArtist, models.EventPaymentReleased,
		"Payout released",
		fmt.Sprintf("Your payout of %.2f %s has been released.", p.ArtistPayout, p.Currency),
		p.ID)
	return p, nil
}

func (s *DefaultEscrowService) Refund(ctx context.Context, caller models.Caller, paymentID string, amount float64) (*models.Payment, error) {
	if !caller.IsAdmin() {
		return nil, utils.NewForbidden("Only admins can refund payments")
	}

	p, err := s.Repo.GetByID(paymentID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch payment")
	}
	if p == nil {
		return nil, utils.NewNotFound("Payment not found")
	}
	if amount <= 0 {
		amount = p.Amount
	}
	if amount > p.Amount {
		return nil, utils.NewBadRequest("Refund amount exceeds the original payment")
	}
	return s.refund(ctx, p, amount)
}

// RefundForCancellation reverses a booking's in-escrow payment ahead of a
// customer cancellation. A booking without one is a no-op.
func (s *DefaultEscrowService) RefundForCancellation(ctx context.Context, bookingID string) error {
	p, err := s.Repo.GetActiveByBooking(bookingID)
	if err != nil {
		return utils.NewUnavailable("could not check booking payment")
	}
	if p == nil || (p.Status != models.PaymentStatusHeld && p.Status != models.PaymentStatusSucceeded) {
		return nil
	}
	_, err = s.refund(ctx, p, p.Amount)
	return err
}

// refund performs the provider reversal and the local bookkeeping shared by
// admin refunds and cancellation refunds.
func (s *DefaultEscrowService) refund(ctx context.Context, p *models.Payment, amount float64) (*models.Payment, error) {
	if p.Status != models.PaymentStatusHeld && p.Status != models.PaymentStatusSucceeded {
		return nil, utils.NewBadRequest("Payment is already " + p.Status)
	}

	if _, err := s.Provider.Refund(ctx, p.ProviderTxnID, models.ToMinorUnits(amount)); err != nil {
		utils.GetLogger().Error("provider refund failed", zap.String("payment", p.ID), zap.Error(err))
		return nil, utils.NewUnavailable("Payment provider is unavailable, please retry")
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":          models.PaymentStatusRefunded,
		"refunded_amount": amount,
		"updated_at":      now,
	}}
	holdable := []string{models.PaymentStatusHeld, models.PaymentStatusSucceeded}
	matched, err := s.Repo.UpdateStatusIf(p.ID, holdable, update)
	if err != nil {
		return nil, utils.NewUnavailable("could not update payment")
	}
	if !matched {
		return nil, utils.NewConflict("Payment was updated concurrently")
	}
	p.Status = models.PaymentStatusRefunded
	p.RefundedAmount = amount

	if err := s.BookingRepo.UpdateWithDocument(p.BookingID, bson.M{"$set": bson.M{"payment_status": models.BookingPaymentRefunded, "updated_at": now}}); err != nil {
		utils.GetLogger().Warn("failed to sync booking payment status", zap.String("booking", p.BookingID), zap.Error(err))
	}

	s.notify(ctx, p.CustomerID, models.RecipientCustomer, models.EventPaymentRefunded,
		"Payment refunded",
		fmt.Sprintf("A refund of %.2f %s has been issued to you.", amount, p.Currency),
		p.ID)
	return p, nil
}

func (s *DefaultEscrowService) GetByBooking(ctx context.Context, caller models.Caller, bookingID string) (*models.Payment, error) {
	p, err := s.Repo.GetActiveByBooking(bookingID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch payment")
	}
	if p == nil {
		return nil, utils.NewNotFound("No payment found for this booking")
	}
	if caller.IsAdmin() || p.CustomerID == caller.ID {
		return p, nil
	}
	if artist, _ := s.ArtistRepo.GetByID(p.ArtistID); artist != nil && artist.UserID == caller.ID {
		return p, nil
	}
	return nil, utils.NewForbidden("You are not a participant of this payment")
}

func (s *DefaultEscrowService) notify(ctx context.Context, recipientID, kind, event, title, body, paymentID string) {
	if err := s.Notifier.Notify(ctx, recipientID, kind, event, title, body, paymentID, "payment"); err != nil {
		utils.GetLogger().Warn("failed to dispatch payment notification",
			zap.String("payment", paymentID),
			zap.String("event", event),
			zap.Error(err))
	}
}
