package bookingRepo

import (
	"fmt"
	"time"

	"artisly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// UpdateStatusIf performs a compare-and-swap: updateDoc is applied only where
// the current status is one of expected. Zero matched documents means another
// request won the transition.
func (r *MongoBookingRepo) UpdateStatusIf(id string, expected []string, updateDoc bson.M) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": expected}}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return false, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// UpdateWithDocument updates a booking using a custom update document.
func (r *MongoBookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}
