package artistRepo

import (
	"artisly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ArtistRepository defines methods for artist profile data access. Lookups
// return (nil, nil) when no document matches.
type ArtistRepository interface {
	// Create inserts a new artist profile.
	Create(artist *models.Artist) error
	// GetByID retrieves an artist by its unique ID.
	GetByID(id string) (*models.Artist, error)
	// GetByUserID retrieves the artist profile owned by a user identity.
	GetByUserID(userID string) (*models.Artist, error)
	// GetByEmail retrieves an artist by email.
	GetByEmail(email string) (*models.Artist, error)
	// ListApproved retrieves all approved artist profiles.
	ListApproved() ([]models.Artist, error)
	// UpdateWithDocument patches an artist document with the specified update
	// document. Rating fields are only ever written through this by the
	// rating aggregator.
	UpdateWithDocument(id string, updateDoc bson.M) error
}
