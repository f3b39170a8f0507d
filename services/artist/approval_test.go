package artist

import (
	"context"
	"testing"

	pendingRepo "artisly/database/repository/pending"
	reviewRepo "artisly/database/repository/review"
	"artisly/models"
	"artisly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Mock repositories shared by the approval and rating tests.
type MockPendingRepository struct {
	mock.Mock
}

func (m *MockPendingRepository) Create(app *models.PendingArtist) error {
	args := m.Called(app)
	return args.Error(0)
}

func (m *MockPendingRepository) GetByID(id string) (*models.PendingArtist, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingArtist), args.Error(1)
}

func (m *MockPendingRepository) ListPending() ([]models.PendingArtist, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingArtist), args.Error(1)
}

func (m *MockPendingRepository) UpdateStatusIf(id string, expected []string, updateDoc bson.M) (bool, error) {
	args := m.Called(id, expected, updateDoc)
	return args.Bool(0), args.Error(1)
}

func (m *MockPendingRepository) Delete(id string) error {
	args := m.Called(id)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artist), args.Error(1)
}

func (m *MockArtistRepository) UpdateWithDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(u *models.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateWithDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
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

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(r *models.Review) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByArtist(artistID string) ([]models.Review, error) {
	args := m.Called(artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) UpdateWithDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewRepository) AggregateForArtist(artistID string) (reviewRepo.RatingStats, error) {
	args := m.Called(artistID)
	return args.Get(0).(reviewRepo.RatingStats), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Notify(ctx context.Context, recipientID, recipientKind, eventType, title, body, relatedID, relatedKind string) error {
	args := m.Called(ctx, recipientID, recipientKind, eventType, title, body, relatedID, relatedKind)
	return args.Error(0)
}

func newApproval() (*DefaultApprovalService, *MockPendingRepository, *MockArtistRepository, *MockUserRepository, *MockDispatcher) {
	pending := new(MockPendingRepository)
	artists := new(MockArtistRepository)
	users := new(MockUserRepository)
	notifier := new(MockDispatcher)
	svc := &DefaultApprovalService{
		PendingRepo: pending,
		ArtistRepo:  artists,
		UserRepo:    users,
		Notifier:    notifier,
	}
	return svc, pending, artists, users, notifier
}

func errKind(t *testing.T, err error) string {
	t.Helper()
	se, ok := utils.AsServiceError(err)
	if !ok {
		t.Fatalf("expected service error, got %v", err)
	}
	return se.Kind
}

var admin = models.Caller{ID: "admin-1", Role: models.RoleAdmin}

func pendingApp() *models.PendingArtist {
	return &models.PendingArtist{
		ID:           "app-1",
		Email:        "jo@example.com",
		Name:         "Jo",
		Category:     "designer",
		HourlyRate:   40,
		PasswordHash: "$2a$10$intakehash",
		Status:       models.ApplicationStatusPending,
	}
}

func TestSubmitApplication_HashesCredentialOnce(t *testing.T) {
	svc, pending, _, users, _ := newApproval()

	users.On("GetByEmail", "jo@example.com").Return(nil, nil)
	pending.On("Create", mock.Anything).Return(nil)

	app, err := svc.SubmitApplication(context.Background(), ApplicationInput{
		Email:      "Jo@Example.com",
		Name:       "Jo",
		Category:   "Designer",
		Password:   "hunter2hunter2",
		HourlyRate: 40,
	})

	assert.NoError(t, err)
	assert.Equal(t, "jo@example.com", app.Email)
	assert.Equal(t, "designer", app.Category)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(app.PasswordHash), []byte("hunter2hunter2")))
}

func TestSubmitApplication_ExistingAccountConflict(t *testing.T) {
	svc, pending, _, users, _ := newApproval()

	users.On("GetByEmail", "jo@example.com").Return(&models.User{ID: "user-1", Role: models.RoleCustomer}, nil)

	_, err := svc.SubmitApplication(context.Background(), ApplicationInput{
		Email:      "jo@example.com",
		Name:       "Jo",
		Category:   "designer",
		Password:   "hunter2hunter2",
		HourlyRate: 40,
	})

	assert.Equal(t, utils.KindConflict, errKind(t, err))
	pending.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitApplication_DuplicatePendingConflict(t *testing.T) {
	svc, pending, _, users, _ := newApproval()

	users.On("GetByEmail", "jo@example.com").Return(nil, nil)
	pending.On("Create", mock.Anything).Return(pendingRepo.ErrDuplicateKey)

	_, err := svc.SubmitApplication(context.Background(), ApplicationInput{
		Email:      "jo@example.com",
		Name:       "Jo",
		Category:   "designer",
		Password:   "hunter2hunter2",
		HourlyRate: 40,
	})

	assert.Equal(t, utils.KindConflict, errKind(t, err))
}

func TestApprove_MigratesApplication(t *testing.T) {
	svc, pending, artists, users, notifier := newApproval()

	app := pendingApp()
	pending.On("GetByID", "app-1").Return(app, nil)
	users.On("GetByEmail", "jo@example.com").Return(nil, nil)
	var createdUser *models.User
	users.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		createdUser = args.Get(0).(*models.User)
	}).Return(nil)
	artists.On("GetByUserID", mock.Anything).Return(nil, nil)
	var createdArtist *models.Artist
	artists.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		createdArtist = args.Get(0).(*models.Artist)
	}).Return(nil)
	decidable := []string{models.ApplicationStatusPending, models.ApplicationStatusApproved}
	pending.On("UpdateStatusIf", "app-1", decidable, mock.Anything).Return(true, nil)
	notifier.On("Notify", mock.Anything, mock.Anything, models.RecipientArtist, models.EventArtistApproved,
		mock.Anything, mock.Anything, mock.Anything, "artist").Return(nil)
	pending.On("Delete", "app-1").Return(nil)

	profile, err := svc.Approve(context.Background(), admin, "app-1")

	assert.NoError(t, err)
	assert.Equal(t, models.RoleArtist, createdUser.Role)
	// The intake hash travels through the migration unchanged.
	assert.Equal(t, app.PasswordHash, createdUser.PasswordHash)
	assert.Equal(t, createdUser.ID, createdArtist.UserID)
	assert.Equal(t, models.ArtistTypeRemote, profile.ArtistType)
	assert.Equal(t, models.ArtistStatusApproved, profile.Status)
	assert.Equal(t, models.SubscriptionActive, profile.Subscription)
	pending.AssertExpectations(t)
}

func TestApprove_PhysicalCategoryStartsInactive(t *testing.T) {
	svc, pending, artists, users, notifier := newApproval()

	app := pendingApp()
	app.Category = "dj"
	pending.On("GetByID", "app-1").Return(app, nil)
	users.On("GetByEmail", "jo@example.com").Return(nil, nil)
	users.On("Create", mock.Anything).Return(nil)
	artists.On("GetByUserID", mock.Anything).Return(nil, nil)
	artists.On("Create", mock.Anything).Return(nil)
	pending.On("UpdateStatusIf", "app-1", mock.Anything, mock.Anything).Return(true, nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pending.On("Delete", "app-1").Return(nil)

	profile, err := svc.Approve(context.Background(), admin, "app-1")

	assert.NoError(t, err)
	assert.Equal(t, models.ArtistTypePhysical, profile.ArtistType)
	assert.Equal(t, models.SubscriptionInactive, profile.Subscription)
}

func TestApprove_RetryAfterPartialFailureConverges(t *testing.T) {
	svc, pending, artists, _, _ := newApproval()

	app := pendingApp()
	app.Status = models.ApplicationStatusApproved
	existing := &models.Artist{ID: "artist-1", Email: "jo@example.com", Status: models.ArtistStatusApproved}
	pending.On("GetByID", "app-1").Return(app, nil)
	artists.On("GetByEmail", "jo@example.com").Return(existing, nil)

	profile, err := svc.Approve(context.Background(), admin, "app-1")

	assert.NoError(t, err)
	assert.Equal(t, "artist-1", profile.ID)
	artists.AssertNotCalled(t, "Create", mock.Anything)
}

func TestApprove_ExistingCustomerEmailConflicts(t *testing.T) {
	svc, pending, artists, users, _ := newApproval()

	pending.On("GetByID", "app-1").Return(pendingApp(), nil)
	users.On("GetByEmail", "jo@example.com").Return(&models.User{ID: "user-1", Role: models.RoleCustomer}, nil)
	pending.On("UpdateStatusIf", "app-1", []string{models.ApplicationStatusPending}, mock.Anything).Return(true, nil)
	pending.On("Delete", "app-1").Return(nil)

	_, err := svc.Approve(context.Background(), admin, "app-1")

	assert.Equal(t, utils.KindConflict, errKind(t, err))
	artists.AssertNotCalled(t, "Create", mock.Anything)
	// The conflicting application is discarded, not left pending.
	pending.AssertExpectations(t)
}

func TestApprove_NonAdminForbidden(t *testing.T) {
	svc, pending, _, _, _ := newApproval()

	_, err := svc.Approve(context.Background(), models.Caller{ID: "cust-1", Role: models.RoleCustomer}, "app-1")

	assert.Equal(t, utils.KindForbidden, errKind(t, err))
	pending.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestReject_RemovesApplication(t *testing.T) {
	svc, pending, _, _, _ := newApproval()

	pending.On("GetByID", "app-1").Return(pendingApp(), nil)
	pending.On("UpdateStatusIf", "app-1", []string{models.ApplicationStatusPending}, mock.Anything).Return(true, nil)
	pending.On("Delete", "app-1").Return(nil)

	err := svc.Reject(context.Background(), admin, "app-1", "portfolio too thin")

	assert.NoError(t, err)
	pending.AssertExpectations(t)
}

func TestReject_AlreadyDecidedIsBadRequest(t *testing.T) {
	svc, pending, _, _, _ := newApproval()

	app := pendingApp()
	app.Status = models.ApplicationStatusApproved
	pending.On("GetByID", "app-1").Return(app, nil)

	err := svc.Reject(context.Background(), admin, "app-1", "")

	assert.Equal(t, utils.KindBadRequest, errKind(t, err))
}
