package pendingRepo

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

// ErrDuplicateKey is returned when an insert violates the unique email index:
// at most one pending application per email.
var ErrDuplicateKey = errors.New("pending application already exists for email")

// PendingArtistRepository defines methods for pending application data access.
// Lookups return (nil, nil) when no document matches.
type PendingArtistRepository interface {
	// Create inserts a new application. Returns ErrDuplicateKey on a second
	// pending application for the same email.
	Create(app *models.PendingArtist) error
	// GetByID retrieves an application by its unique ID.
	GetByID(id string) (*models.PendingArtist, error)
	// ListPending retrieves all undecided applications, oldest first.
	ListPending() ([]models.PendingArtist, error)
	// UpdateStatusIf applies updateDoc only while the application status is one
	// of expected; false means another request decided it first.
	UpdateStatusIf(id string, expected []string, updateDoc bson.M) (bool, error)
	// Delete removes an application once a decision has been carried out.
	Delete(id string) error
}

// MongoPendingArtistRepo implements PendingArtistRepository using MongoDB.
type MongoPendingArtistRepo struct {
	coll *mongo.Collection
}

// NewMongoPendingArtistRepo creates a new instance of PendingArtistRepository using MongoDB.
func NewMongoPendingArtistRepo() PendingArtistRepository {
	coll := database.Collection("pending_artists")
	repo := &MongoPendingArtistRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create pending artist indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPendingArtistRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new pending application document.
func (r *MongoPendingArtistRepo) Create(app *models.PendingArtist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, app)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create pending application: %w", err)
	}
	return nil
}

func (r *MongoPendingArtistRepo) GetByID(id string) (*models.PendingArtist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var app models.PendingArtist
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending application with id %s: %w", id, err)
	}
	return &app, nil
}

func (r *MongoPendingArtistRepo) ListPending() ([]models.PendingArtist, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.ApplicationStatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pending applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.PendingArtist
	for cursor.Next(ctx) {
		var a models.PendingArtist
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode pending application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// UpdateStatusIf performs a compare-and-swap guarded by the expected statuses.
func (r *MongoPendingArtistRepo) UpdateStatusIf(id string, expected []string, updateDoc bson.M) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": expected}}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return false, fmt.Errorf("failed to update pending application with id %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// Delete removes a decided application document.
func (r *MongoPendingArtistRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pending application with id %s: %w", id, err)
	}
	return nil
}
