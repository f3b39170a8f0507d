package bookingRepo

import (
	"artisly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines methods for booking data access. Lookups return
// (nil, nil) when no document matches.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// ListByCustomer returns all bookings created by a customer, newest first.
	ListByCustomer(customerID string) ([]models.Booking, error)
	// ListByArtist returns all bookings targeting an artist, newest first.
	ListByArtist(artistID string) ([]models.Booking, error)
	// UpdateStatusIf applies updateDoc only while the booking status is one of
	// expected. A false return means another request transitioned the booking
	// first.
	UpdateStatusIf(id string, expected []string, updateDoc bson.M) (bool, error)
	// UpdateWithDocument patches a booking document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
}
