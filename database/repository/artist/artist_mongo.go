package artistRepo

import (
	"context"
	"fmt"
	"time"

	"artisly/database"
	"artisly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoArtistRepo implements ArtistRepository using MongoDB.
type MongoArtistRepo struct {
	coll *mongo.Collection
}

// NewMongoArtistRepo creates a new instance of ArtistRepository using MongoDB.
func NewMongoArtistRepo() ArtistRepository {
	coll := database.Collection("artists")
	repo := &MongoArtistRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create artist indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoArtistRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new artist profile document.
func (r *MongoArtistRepo) Create(artist *models.Artist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, artist)
	if err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

func (r *MongoArtistRepo) GetByID(id string) (*models.Artist, error) {
	return r.findOne(bson.M{"id": id})
}

func (r *MongoArtistRepo) GetByUserID(userID string) (*models.Artist, error) {
	return r.findOne(bson.M{"user_id": userID})
}

func (r *MongoArtistRepo) GetByEmail(email string) (*models.Artist, error) {
	return r.findOne(bson.M{"email": email})
}

func (r *MongoArtistRepo) findOne(filter bson.M) (*models.Artist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var artist models.Artist
	if err := r.coll.FindOne(ctx, filter).Decode(&artist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch artist: %w", err)
	}
	return &artist, nil
}

func (r *MongoArtistRepo) ListApproved() ([]models.Artist, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"status": models.ArtistStatusApproved})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve artists: %w", err)
	}
	defer cursor.Close(ctx)

	var artists []models.Artist
	for cursor.Next(ctx) {
		var a models.Artist
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode artist: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, nil
}

// UpdateWithDocument updates an artist using a custom update document.
func (r *MongoArtistRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update artist with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("artist with id %s not found", id)
	}
	return nil
}
