package favorite

import (
	"context"
	"time"
)

// Favorite is a listing saved by a user for later.
type Favorite struct {
	ListingID string    `json:"listing_id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Rating    float64   `json:"rating"`
	SavedAt   time.Time `json:"saved_at"`
}

//go:generate mockgen -source=favorite.go -destination=../mocks/mock_favorite.go -package=mocks
type FavoriteRepo interface {
	// Add saves a listing for the user. Saving twice is a no-op.
	Add(ctx context.Context, userID, listingID string) error
	// Remove drops the saved listing.
	Remove(ctx context.Context, userID, listingID string) error
	// ListByUser returns the user's saved listings with display data.
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}
