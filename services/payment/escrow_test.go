package payment

import (
	"context"
	"testing"

	paymentRepo "artisly/database/repository/payment"
	"artisly/models"
	"artisly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// Mock repositories
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(p *models.Payment) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(id string) (*models.Payment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByProviderTxnID(providerTxnID string) (*models.Payment, error) {
	args := m.Called(providerTxnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetActiveByBooking(bookingID string) (*models.Payment, error) {
	args := m.Called(bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatusIf(id string, expected []string, updateDoc bson.M) (bool, error) {
	args := m.Called(id, expected, updateDoc)
	return args.Bool(0), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(customerID string) ([]models.Booking, error) {
	args := m.Called(customerID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByArtist(artistID string) ([]models.Booking, error) {
	args := m.Called(artistID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusIf(id string, expected []string, updateDoc bson.M) (bool, error) {
	args := m.Called(id, expected, updateDoc)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateWithDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

type MockArtistRepository struct {
	mock.Mock
}

func (m *MockArtistRepository) Create(a *models.Artist) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockArtistRepository) GetByID(id string) (*models.Artist, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockArtistRepository) GetByUserID(userID string) (*models.Artist, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockArtistRepository) GetByEmail(email string) (*models.Artist, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockArtistRepository) ListApproved() ([]models.Artist, error) {
	args := m.Called()
	return args.Get(0).([]models.Artist), args.Error(1)
}

func (m *MockArtistRepository) UpdateWithDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*ProviderIntent, error) {
	args := m.Called(ctx, amountMinor, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProviderIntent), args.Error(1)
}

func (m *MockProviderClient) RetrieveIntent(ctx context.Context, providerTxnID string) (*ProviderIntent, error) {
	args := m.Called(ctx, providerTxnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProviderIntent), args.Error(1)
}

func (m *MockProviderClient) Refund(ctx context.Context, providerTxnID string, amountMinor int64) (*ProviderRefund, error) {
	args := m.Called(ctx, providerTxnID, amountMinor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProviderRefund), args.Error(1)
}

type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) EnsureChannel(ctx context.Context, bookingID string, participants []string) (string, error) {
	args := m.Called(ctx, bookingID, participants)
	return args.String(0), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Notify(ctx context.Context, recipientID, recipientKind, eventType, title, body, relatedID, relatedKind string) error {
	args := m.Called(ctx, recipientID, recipientKind, eventType, title, body, relatedID, relatedKind)
	return args.Error(0)
}

func newEscrow() (*DefaultEscrowService, *MockPaymentRepository, *MockBookingRepository, *MockArtistRepository, *MockProviderClient, *MockProvisioner, *MockDispatcher) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingRepository)
	artists := new(MockArtistRepository)
	provider := new(MockProviderClient)
	chat := new(MockProvisioner)
	notifier := new(MockDispatcher)
	svc := &DefaultEscrowService{
		Repo:              payments,
		BookingRepo:       bookings,
		ArtistRepo:        artists,
		Provider:          provider,
		Chat:              chat,
		Notifier:          notifier,
		CommissionPercent: 15,
	}
	return svc, payments, bookings, artists, provider, chat, notifier
}

func errKind(t *testing.T, err error) string {
	t.Helper()
	se, ok := utils.AsServiceError(err)
	if !ok {
		t.Fatalf("expected service error, got %v", err)
	}
	return se.Kind
}

func activeBooking() *models.Booking {
	return &models.Booking{
		ID:          "bk-1",
		CustomerID:  "cust-1",
		ArtistID:    "artist-1",
		Service:     "logo design",
		Status:      models.BookingStatusAccepted,
		TotalAmount: 500,
		Currency:    "usd",
	}
}

func TestCreatePaymentIntent_Success(t *testing.T) {
	svc, payments, bookings, _, provider, _, _ := newEscrow()

	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)
	payments.On("GetActiveByBooking", "bk-1").Return(nil, nil)
	provider.On("CreateIntent", mock.Anything, int64(50000), "usd", map[string]string{"booking_id": "bk-1"}).
		Return(&ProviderIntent{ID: "pi_1", ClientSecret: "secret_1"}, nil)

	out, err := svc.CreatePaymentIntent(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "bk-1")

	assert.NoError(t, err)
	assert.Equal(t, "pi_1", out.ProviderTxnID)
	assert.Equal(t, "secret_1", out.ClientSecret)
}

func TestCreatePaymentIntent_AlreadyPaid(t *testing.T) {
	svc, payments, bookings, _, provider, _, _ := newEscrow()

	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)
	payments.On("GetActiveByBooking", "bk-1").Return(&models.Payment{ID: "pay-1", Status: models.PaymentStatusHeld}, nil)

	_, err := svc.CreatePaymentIntent(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "bk-1")

	assert.Equal(t, utils.KindConflict, errKind(t, err))
	provider.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePaymentIntent_NotOwnerForbidden(t *testing.T) {
	svc, _, bookings, _, _, _, _ := newEscrow()

	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)

	_, err := svc.CreatePaymentIntent(context.Background(), models.Caller{ID: "cust-2", Role: models.RoleCustomer}, "bk-1")

	assert.Equal(t, utils.KindForbidden, errKind(t, err))
}

func TestCreatePaymentIntent_RequiresAcceptedBooking(t *testing.T) {
	svc, _, bookings, _, provider, _, _ := newEscrow()

	pending := activeBooking()
	pending.Status = models.BookingStatusPending
	bookings.On("GetByID", "bk-1").Return(pending, nil)

	_, err := svc.CreatePaymentIntent(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "bk-1")

	assert.Equal(t, utils.KindBadRequest, errKind(t, err))
	provider.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_SplitsCommission(t *testing.T) {
	svc, payments, bookings, _, provider, chat, notifier := newEscrow()

	payments.On("GetByProviderTxnID", "pi_1").Return(nil, nil)
	provider.On("RetrieveIntent", mock.Anything, "pi_1").Return(&ProviderIntent{
		ID:          "pi_1",
		Status:      ProviderStatusSucceeded,
		AmountMinor: 50000,
		Currency:    "usd",
		Metadata:    map[string]string{"booking_id": "bk-1"},
	}, nil)
	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)
	payments.On("Create", mock.Anything).Return(nil)
	bookings.On("UpdateStatusIf", "bk-1", []string{models.BookingStatusAccepted}, mock.Anything).Return(true, nil)
	chat.On("EnsureChannel", mock.Anything, "bk-1", []string{"cust-1", "artist-1"}).Return("chan-1", nil)
	bookings.On("UpdateWithDocument", "bk-1", mock.Anything).Return(nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, models.EventPaymentHeld,
		mock.Anything, mock.Anything, mock.Anything, "payment").Return(nil).Twice()

	out, err := svc.ConfirmPayment(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "pi_1")

	assert.NoError(t, err)
	assert.True(t, out.Settled)
	assert.Equal(t, models.PaymentStatusHeld, out.Payment.Status)
	assert.Equal(t, 500.0, out.Payment.Amount)
	assert.Equal(t, 75.0, out.Payment.CommissionAmount)
	assert.Equal(t, 425.0, out.Payment.ArtistPayout)
	chat.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestConfirmPayment_RepeatedConfirmationIsIdempotent(t *testing.T) {
	svc, payments, _, _, provider, _, _ := newEscrow()

	existing := &models.Payment{ID: "pay-1", ProviderTxnID: "pi_1", Status: models.PaymentStatusHeld}
	payments.On("GetByProviderTxnID", "pi_1").Return(existing, nil)

	out, err := svc.ConfirmPayment(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "pi_1")

	assert.NoError(t, err)
	assert.True(t, out.Settled)
	assert.Equal(t, "pay-1", out.Payment.ID)
	provider.AssertNotCalled(t, "RetrieveIntent", mock.Anything, mock.Anything)
	payments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestConfirmPayment_UnsettledIntent(t *testing.T) {
	svc, payments, _, _, provider, _, _ := newEscrow()

	payments.On("GetByProviderTxnID", "pi_1").Return(nil, nil)
	provider.On("RetrieveIntent", mock.Anything, "pi_1").Return(&ProviderIntent{
		ID:     "pi_1",
		Status: "requires_payment_method",
	}, nil)

	out, err := svc.ConfirmPayment(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "pi_1")

	assert.NoError(t, err)
	assert.False(t, out.Settled)
	assert.Equal(t, "requires_payment_method", out.ProviderStatus)
	payments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestConfirmPayment_InsertRaceReturnsWinner(t *testing.T) {
	svc, payments, bookings, _, provider, _, _ := newEscrow()

	winner := &models.Payment{ID: "pay-winner", ProviderTxnID: "pi_1", Status: models.PaymentStatusHeld}
	payments.On("GetByProviderTxnID", "pi_1").Return(nil, nil).Once()
	provider.On("RetrieveIntent", mock.Anything, "pi_1").Return(&ProviderIntent{
		ID:          "pi_1",
		Status:      ProviderStatusSucceeded,
		AmountMinor: 50000,
		Currency:    "usd",
		Metadata:    map[string]string{"booking_id": "bk-1"},
	}, nil)
	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)
	payments.On("Create", mock.Anything).Return(paymentRepo.ErrDuplicateKey)
	payments.On("GetByProviderTxnID", "pi_1").Return(winner, nil).Once()

	out, err := svc.ConfirmPayment(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "pi_1")

	assert.NoError(t, err)
	assert.True(t, out.Settled)
	assert.Equal(t, "pay-winner", out.Payment.ID)
}

func TestConfirmPayment_NonPayableBookingIsConflict(t *testing.T) {
	svc, payments, bookings, _, provider, _, _ := newEscrow()

	payments.On("GetByProviderTxnID", "pi_1").Return(nil, nil)
	provider.On("RetrieveIntent", mock.Anything, "pi_1").Return(&ProviderIntent{
		ID:          "pi_1",
		Status:      ProviderStatusSucceeded,
		AmountMinor: 50000,
		Currency:    "usd",
		Metadata:    map[string]string{"booking_id": "bk-1"},
	}, nil)
	b := activeBooking()
	b.Status = models.BookingStatusCancelled
	bookings.On("GetByID", "bk-1").Return(b, nil)
	payments.On("Create", mock.Anything).Return(nil)
	bookings.On("UpdateStatusIf", "bk-1", []string{models.BookingStatusAccepted}, mock.Anything).Return(false, nil)

	_, err := svc.ConfirmPayment(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "pi_1")

	assert.Equal(t, utils.KindConflict, errKind(t, err))
}

func heldPayment() *models.Payment {
	return &models.Payment{
		ID:            "pay-1",
		BookingID:     "bk-1",
		CustomerID:    "cust-1",
		ArtistID:      "artist-1",
		Amount:        500,
		Currency:      "usd",
		ProviderTxnID: "pi_1",
		Status:        models.PaymentStatusHeld,
		ArtistPayout:  425,
	}
}

func TestReleaseToArtist_Success(t *testing.T) {
	svc, payments, bookings, artists, _, _, notifier := newEscrow()

	payments.On("GetByID", "pay-1").Return(heldPayment(), nil)
	artists.On("GetByID", "artist-1").Return(&models.Artist{ID: "artist-1", UserID: "artist-user-1"}, nil)
	b := activeBooking()
	b.Status = models.BookingStatusCompleted
	bookings.On("GetByID", "bk-1").Return(b, nil)
	payments.On("UpdateStatusIf", "pay-1", []string{models.PaymentStatusHeld}, mock.Anything).Return(true, nil)
	bookings.On("UpdateWithDocument", "bk-1", mock.Anything).Return(nil)
	notifier.On("Notify", mock.Anything, "artist-1", models.RecipientArtist, models.EventPaymentReleased,
		mock.Anything, mock.Anything, "pay-1", "payment").Return(nil)

	out, err := svc.ReleaseToArtist(context.Background(), models.Caller{ID: "artist-user-1", Role: models.RoleArtist}, "pay-1")

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSucceeded, out.Status)
	assert.True(t, out.ReleasedToArtist)
}

func TestReleaseToArtist_BeforeCompletionIsBadRequest(t *testing.T) {
	svc, payments, bookings, artists, _, _, _ := newEscrow()

	payments.On("GetByID", "pay-1").Return(heldPayment(), nil)
	artists.On("GetByID", "artist-1").Return(&models.Artist{ID: "artist-1", UserID: "artist-user-1"}, nil)
	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)

	_, err := svc.ReleaseToArtist(context.Background(), models.Caller{ID: "artist-user-1", Role: models.RoleArtist}, "pay-1")

	assert.Equal(t, utils.KindBadRequest, errKind(t, err))
}

func TestReleaseToArtist_StrangerForbidden(t *testing.T) {
	svc, payments, _, artists, _, _, _ := newEscrow()

	payments.On("GetByID", "pay-1").Return(heldPayment(), nil)
	artists.On("GetByID", "artist-1").Return(&models.Artist{ID: "artist-1", UserID: "artist-user-1"}, nil)

	_, err := svc.ReleaseToArtist(context.Background(), models.Caller{ID: "someone-else", Role: models.RoleCustomer}, "pay-1")

	assert.Equal(t, utils.KindForbidden, errKind(t, err))
}

func TestRefund_AdminOnly(t *testing.T) {
	svc, _, _, _, _, _, _ := newEscrow()

	_, err := svc.Refund(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "pay-1", 0)

	assert.Equal(t, utils.KindForbidden, errKind(t, err))
}

func TestRefund_DefaultsToFullAmount(t *testing.T) {
	svc, payments, bookings, _, provider, _, notifier := newEscrow()

	payments.On("GetByID", "pay-1").Return(heldPayment(), nil)
	provider.On("Refund", mock.Anything, "pi_1", int64(50000)).Return(&ProviderRefund{ID: "re_1"}, nil)
	holdable := []string{models.PaymentStatusHeld, models.PaymentStatusSucceeded}
	payments.On("UpdateStatusIf", "pay-1", holdable, mock.Anything).Return(true, nil)
	bookings.On("UpdateWithDocument", "bk-1", mock.Anything).Return(nil)
	notifier.On("Notify", mock.Anything, "cust-1", models.RecipientCustomer, models.EventPaymentRefunded,
		mock.Anything, mock.Anything, "pay-1", "payment").Return(nil)

	out, err := svc.Refund(context.Background(), models.Caller{ID: "admin-1", Role: models.RoleAdmin}, "pay-1", 0)

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, out.Status)
	assert.Equal(t, 500.0, out.RefundedAmount)
	provider.AssertExpectations(t)
}

func TestRefund_ExceedingAmountIsBadRequest(t *testing.T) {
	svc, payments, _, _, provider, _, _ := newEscrow()

	payments.On("GetByID", "pay-1").Return(heldPayment(), nil)

	_, err := svc.Refund(context.Background(), models.Caller{ID: "admin-1", Role: models.RoleAdmin}, "pay-1", 600)

	assert.Equal(t, utils.KindBadRequest, errKind(t, err))
	provider.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundForCancellation_NoActivePaymentIsNoOp(t *testing.T) {
	svc, payments, _, _, provider, _, _ := newEscrow()

	payments.On("GetActiveByBooking", "bk-1").Return(nil, nil)

	err := svc.RefundForCancellation(context.Background(), "bk-1")

	assert.NoError(t, err)
	provider.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundForCancellation_RefundsHeldPayment(t *testing.T) {
	svc, payments, bookings, _, provider, _, notifier := newEscrow()

	payments.On("GetActiveByBooking", "bk-1").Return(heldPayment(), nil)
	provider.On("Refund", mock.Anything, "pi_1", int64(50000)).Return(&ProviderRefund{ID: "re_1"}, nil)
	holdable := []string{models.PaymentStatusHeld, models.PaymentStatusSucceeded}
	payments.On("UpdateStatusIf", "pay-1", holdable, mock.Anything).Return(true, nil)
	bookings.On("UpdateWithDocument", "bk-1", mock.Anything).Return(nil)
	notifier.On("Notify", mock.Anything, "cust-1", models.RecipientCustomer, models.EventPaymentRefunded,
		mock.Anything, mock.Anything, "pay-1", "payment").Return(nil)

	err := svc.RefundForCancellation(context.Background(), "bk-1")

	assert.NoError(t, err)
	provider.AssertExpectations(t)
}
