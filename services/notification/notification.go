package notification

import (
	"context"
	"fmt"
	"time"

	artistRepo "artisly/database/repository/artist"
	notificationRepo "artisly/database/repository/notification"
	userRepo "artisly/database/repository/user"
	"artisly/models"
	"artisly/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDispatcher persists an inbox row and attempts an FCM push on top.
// Push failures never fail the dispatch; a dispatch failure never fails the
// caller's primary operation.
type DefaultDispatcher struct {
	Repo    notificationRepo.NotificationRepository
	Users   userRepo.UserRepository
	Artists artistRepo.ArtistRepository
}

func (d *DefaultDispatcher) Notify(ctx context.Context, recipientID, recipientKind, eventType, title, body, relatedID, relatedKind string) error {
	// Inbox rows are keyed by user identity so one query serves any caller.
	// Artist recipients arrive as profile ids and resolve to the owning user.
	userID, err := d.recipientUserID(recipientID, recipientKind)
	if err != nil {
		return fmt.Errorf("failed to resolve notification recipient: %w", err)
	}

	now := time.Now()
	n := &models.Notification{
		ID:            uuid.New().String(),
		RecipientID:   userID,
		RecipientKind: recipientKind,
		EventType:     eventType,
		Title:         title,
		Body:          body,
		RelatedID:     relatedID,
		RelatedKind:   relatedKind,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := d.Repo.Create(n); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	d.push(ctx, userID, recipientKind, eventType, title, body)
	return nil
}

// push sends a best-effort FCM message to the recipient's registered device.
func (d *DefaultDispatcher) push(ctx context.Context, userID, recipientKind, eventType, title, body string) {
	logger := utils.GetLogger()
	if utils.FCMClient == nil {
		return
	}

	token, err := d.fcmToken(userID)
	if err != nil || token == "" {
		logger.Debug("no push token for recipient", zap.String("recipient", userID), zap.Error(err))
		return
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"event": eventType,
			"role":  recipientKind,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		logger.Warn("failed to send push notification",
			zap.String("recipient", userID),
			zap.String("event", eventType),
			zap.Error(err))
	}
}

// recipientUserID maps a recipient to its user identity. Artist recipients
// arrive as artist profile ids.
func (d *DefaultDispatcher) recipientUserID(recipientID, recipientKind string) (string, error) {
	if recipientKind != models.RecipientArtist {
		return recipientID, nil
	}
	artist, err := d.Artists.GetByID(recipientID)
	if err != nil {
		return "", err
	}
	if artist == nil {
		return "", fmt.Errorf("artist %s not found", recipientID)
	}
	return artist.UserID, nil
}

func (d *DefaultDispatcher) fcmToken(userID string) (string, error) {
	u, err := d.Users.GetByID(userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", fmt.Errorf("user %s not found", userID)
	}
	return u.FCMToken, nil
}
