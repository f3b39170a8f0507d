package user

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "artisly/database/repository/user"
	"artisly/models"
	"artisly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 72 * time.Hour

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) RegisterCustomer(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewUnavailable("could not process registration")
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateKey) {
			return nil, utils.NewConflict("An account with this email already exists")
		}
		return nil, utils.NewUnavailable("could not create account")
	}

	return s.issueSession(ctx, u)
}

func (s *DefaultUserService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, utils.NewUnavailable("could not sign in")
	}
	if u == nil {
		return nil, utils.NewForbidden("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewForbidden("Invalid email or password")
	}
	return s.issueSession(ctx, u)
}

// issueSession signs a JWT and caches its hash so the auth middleware can
// resolve callers without re-reading the user on every request.
func (s *DefaultUserService) issueSession(ctx context.Context, u *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, sessionTTL)
	if err != nil {
		return nil, utils.NewUnavailable("could not issue session token")
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateWithDocument(u.ID, bson.M{"$set": bson.M{"token_hash": tokenHash, "updated_at": time.Now()}}); err != nil {
		utils.GetLogger().Warn("failed to store token hash", zap.String("user", u.ID), zap.Error(err))
	}
	if err := utils.GetAuthCacheClient().Set(ctx, "session:"+tokenHash, u.ID+":"+u.Role, sessionTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache session", zap.String("user", u.ID), zap.Error(err))
	}

	u.PasswordHash = ""
	u.TokenHash = ""
	return &AuthResult{User: u, Token: token}, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, utils.NewUnavailable("could not fetch user")
	}
	if u == nil {
		return nil, utils.NewNotFound("User not found")
	}
	u.PasswordHash = ""
	u.TokenHash = ""
	return u, nil
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	update := bson.M{"$set": bson.M{"fcm_token": token, "updated_at": time.Now()}}
	if err := s.Repo.UpdateWithDocument(userID, update); err != nil {
		return utils.NewNotFound("User not found")
	}
	return nil
}
