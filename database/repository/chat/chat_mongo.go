package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artisly/database"
	"artisly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateKey is returned when an insert violates the unique booking
// index. The provisioner treats it as "channel already exists".
var ErrDuplicateKey = errors.New("chat channel already exists for booking")

// ChatChannelRepository defines methods for chat-channel data access. Lookups
// return (nil, nil) when no document matches.
type ChatChannelRepository interface {
	// Create inserts a new channel. Returns ErrDuplicateKey when the booking
	// already has one.
	Create(channel *models.ChatChannel) error
	// GetByBookingID retrieves the channel provisioned for a booking.
	GetByBookingID(bookingID string) (*models.ChatChannel, error)
}

// MongoChatChannelRepo implements ChatChannelRepository using MongoDB.
type MongoChatChannelRepo struct {
	coll *mongo.Collection
}

// NewMongoChatChannelRepo creates a new instance of ChatChannelRepository using MongoDB.
func NewMongoChatChannelRepo() ChatChannelRepository {
	coll := database.Collection("chat_channels")
	repo := &MongoChatChannelRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create chat channel indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoChatChannelRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new chat channel document.
func (r *MongoChatChannelRepo) Create(channel *models.ChatChannel) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, channel)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create chat channel: %w", err)
	}
	return nil
}

func (r *MongoChatChannelRepo) GetByBookingID(bookingID string) (*models.ChatChannel, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var channel models.ChatChannel
	if err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&channel); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch chat channel for booking %s: %w", bookingID, err)
	}
	return &channel, nil
}
