package artist

import (
	"context"
	"errors"
	"strings"
	"time"

	artistRepo "artisly/database/repository/artist"
	pendingRepo "artisly/database/repository/pending"
	userRepo "artisly/database/repository/user"
	"artisly/models"
	"artisly/services/notification"
	"artisly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultApprovalService is the production implementation of ApprovalService.
type DefaultApprovalService struct {
	PendingRepo pendingRepo.PendingArtistRepository
	ArtistRepo  artistRepo.ArtistRepository
	UserRepo    userRepo.UserRepository
	Notifier    notification.Dispatcher
}

func (s *DefaultApprovalService) SubmitApplication(ctx context.Context, input ApplicationInput) (*models.PendingArtist, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		return nil, utils.NewUnavailable("could not check existing accounts")
	}
	if existing != nil {
		return nil, utils.NewConflict("An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewUnavailable("could not process application")
	}

	now := time.Now()
	app := &models.PendingArtist{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Category:     strings.ToLower(strings.TrimSpace(input.Category)),
		HourlyRate:   input.HourlyRate,
		DeliveryTime: input.DeliveryTime,
		Bio:          input.Bio,
		Portfolio:    input.Portfolio,
		PasswordHash: string(hash),
		Status:       models.ApplicationStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.PendingRepo.Create(app); err != nil {
		if errors.Is(err, pendingRepo.ErrDuplicateKey) {
			return nil, utils.NewConflict("An application for this email is already pending")
		}
		return nil, utils.NewUnavailable("could not file application")
	}
	return app, nil
}

func (s *DefaultApprovalService) ListApplications(ctx context.Context, caller models.Caller) ([]models.PendingArtist, error) {
	if !caller.IsAdmin() {
		return nil, utils.NewForbidden("Only admins can review applications")
	}
	apps, err := s.PendingRepo.ListPending()
	if err != nil {
		return nil, utils.NewUnavailable("could not list applications")
	}
	return apps, nil
}

// Approve runs the migration as a saga: each step is guarded by an existence
// check so a retried or concurrently repeated approval converges on the same
// identity and profile instead of duplicating either.
func (s *DefaultApprovalService) Approve(ctx context.Context, caller models.Caller, applicationID string) (*models.Artist, error) {
	if !caller.IsAdmin() {
		return nil, utils.NewForbidden("Only admins can approve applications")
	}

	app, err := s.PendingRepo.GetByID(applicationID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch application")
	}
	if app == nil {
		return nil, utils.NewNotFound("Application not found")
	}
	if app.Status == models.ApplicationStatusApproved {
		// A previous approval finished the migration but died before cleanup.
		if existing, err := s.ArtistRepo.GetByEmail(app.Email); err == nil && existing != nil {
			return existing, nil
		}
	}

	identity, err := s.UserRepo.GetByEmail(app.Email)
	if err != nil {
		return nil, utils.NewUnavailable("could not check existing accounts")
	}
	if identity != nil && identity.Role != models.RoleArtist {
		// A customer cannot silently become an artist through a pending
		// application; the application dies here.
		s.discardApplication(app, "email already registered under a different role")
		return nil, utils.NewConflict("This email is already registered under a different role")
	}

	if identity == nil {
		now := time.Now()
		identity = &models.User{
			ID:           uuid.New().String(),
			Email:        app.Email,
			Name:         app.Name,
			PasswordHash: app.PasswordHash, // already hashed at intake, never re-hashed
			Role:         models.RoleArtist,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.UserRepo.Create(identity); err != nil {
			if errors.Is(err, userRepo.ErrDuplicateKey) {
				identity, err = s.UserRepo.GetByEmail(app.Email)
				if err != nil || identity == nil {
					return nil, utils.NewUnavailable("could not resolve concurrent approval")
				}
			} else {
				return nil, utils.NewUnavailable("could not create artist identity")
			}
		}
	}

	profile, err := s.ArtistRepo.GetByUserID(identity.ID)
	if err != nil {
		return nil, utils.NewUnavailable("could not check artist profile")
	}
	if profile == nil {
		artistType := models.ArtistTypeForCategory(app.Category)
		now := time.Now()
		profile = &models.Artist{
			ID:           uuid.New().String(),
			UserID:       identity.ID,
			Email:        app.Email,
			Name:         app.Name,
			Category:     app.Category,
			ArtistType:   artistType,
			HourlyRate:   app.HourlyRate,
			DeliveryTime: app.DeliveryTime,
			Bio:          app.Bio,
			Status:       models.ArtistStatusApproved,
			Subscription: models.InitialSubscription(artistType),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.ArtistRepo.Create(profile); err != nil {
			return nil, utils.NewUnavailable("could not create artist profile")
		}
	}

	update := bson.M{"$set": bson.M{
		"status":     models.ApplicationStatusApproved,
		"updated_at": time.Now(),
	}}
	matched, err := s.PendingRepo.UpdateStatusIf(applicationID, []string{models.ApplicationStatusPending, models.ApplicationStatusApproved}, update)
	if err != nil {
		return nil, utils.NewUnavailable("could not update application")
	}
	if !matched {
		return nil, utils.NewConflict("Application was already decided")
	}

	if err := s.Notifier.Notify(ctx, profile.ID, models.RecipientArtist, models.EventArtistApproved,
		"Application approved",
		"Welcome aboard! Your artist profile is live and you can now receive bookings.",
		profile.ID, "artist"); err != nil {
		utils.GetLogger().Warn("failed to dispatch approval notification", zap.String("artist", profile.ID), zap.Error(err))
	}

	if err := s.PendingRepo.Delete(applicationID); err != nil {
		utils.GetLogger().Warn("failed to delete approved application", zap.String("application", applicationID), zap.Error(err))
	}
	return profile, nil
}

func (s *DefaultApprovalService) Reject(ctx context.Context, caller models.Caller, applicationID, reason string) error {
	if !caller.IsAdmin() {
		return utils.NewForbidden("Only admins can reject applications")
	}

	app, err := s.PendingRepo.GetByID(applicationID)
	if err != nil {
		return utils.NewUnavailable("could not fetch application")
	}
	if app == nil {
		return utils.NewNotFound("Application not found")
	}
	if app.Status != models.ApplicationStatusPending {
		return utils.NewBadRequest("Application is already " + app.Status)
	}

	update := bson.M{"$set": bson.M{
		"status":     models.ApplicationStatusRejected,
		"reason":     reason,
		"updated_at": time.Now(),
	}}
	matched, err := s.PendingRepo.UpdateStatusIf(applicationID, []string{models.ApplicationStatusPending}, update)
	if err != nil {
		return utils.NewUnavailable("could not update application")
	}
	if !matched {
		return utils.NewConflict("Application was already decided")
	}

	if err := s.PendingRepo.Delete(applicationID); err != nil {
		utils.GetLogger().Warn("failed to delete rejected application", zap.String("application", applicationID), zap.Error(err))
	}
	utils.GetLogger().Info("artist application rejected", zap.String("application", applicationID), zap.String("reason", reason))
	return nil
}

// discardApplication marks a conflicting application rejected and removes it.
func (s *DefaultApprovalService) discardApplication(app *models.PendingArtist, reason string) {
	update := bson.M{"$set": bson.M{
		"status":     models.ApplicationStatusRejected,
		"reason":     reason,
		"updated_at": time.Now(),
	}}
	if _, err := s.PendingRepo.UpdateStatusIf(app.ID, []string{models.ApplicationStatusPending}, update); err != nil {
		utils.GetLogger().Warn("failed to mark application rejected", zap.String("application", app.ID), zap.Error(err))
		return
	}
	if err := s.PendingRepo.Delete(app.ID); err != nil {
		utils.GetLogger().Warn("failed to delete rejected application", zap.String("application", app.ID), zap.Error(err))
	}
}

func (s *DefaultApprovalService) GetArtist(ctx context.Context, artistID string) (*models.Artist, error) {
	a, err := s.ArtistRepo.GetByID(artistID)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch artist")
	}
	if a == nil {
		return nil, utils.NewNotFound("Artist not found")
	}
	return a, nil
}

func (s *DefaultApprovalService) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists, err := s.ArtistRepo.ListApproved()
	if err != nil {
		return nil, utils.NewUnavailable("could not list artists")
	}
	return artists, nil
}
