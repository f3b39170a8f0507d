package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	chatRepo "artisly/database/repository/chat"
	"artisly/models"

	"github.com/google/uuid"
)

// Provisioner provisions chat channels between booking participants.
type Provisioner interface {
	// EnsureChannel returns the channel id for a booking, creating the channel
	// on first call. Safe to call repeatedly and concurrently.
	EnsureChannel(ctx context.Context, bookingID string, participants []string) (string, error)
}

// DefaultProvisioner implements Provisioner on the chat channel repository.
type DefaultProvisioner struct {
	Repo chatRepo.ChatChannelRepository
}

func (p *DefaultProvisioner) EnsureChannel(ctx context.Context, bookingID string, participants []string) (string, error) {
	existing, err := p.Repo.GetByBookingID(bookingID)
	if err != nil {
		return "", fmt.Errorf("failed to look up chat channel: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	channel := &models.ChatChannel{
		ID:           uuid.New().String(),
		BookingID:    bookingID,
		Participants: participants,
		CreatedAt:    time.Now(),
	}
	if err := p.Repo.Create(channel); err != nil {
		// A concurrent provisioning won the insert; reuse its channel.
		if errors.Is(err, chatRepo.ErrDuplicateKey) {
			existing, err := p.Repo.GetByBookingID(bookingID)
			if err != nil {
				return "", fmt.Errorf("failed to re-fetch chat channel: %w", err)
			}
			if existing != nil {
				return existing.ID, nil
			}
		}
		return "", fmt.Errorf("failed to create chat channel: %w", err)
	}
	return channel.ID, nil
}
