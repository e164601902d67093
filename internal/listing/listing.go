package listing

import (
	"context"
	"time"

	"bicocerto/internal/geo"
	types "bicocerto/internal/types/listing"
)

// Kind separates job offers published by contractors from service
// advertisements published by providers.
type Kind string

const (
	KindOffer   Kind = "offer"
	KindService Kind = "service"
)

// ParseKind validates a wire value against the closed enum.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindOffer, KindService:
		return Kind(s), true
	}
	return "", false
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Kind        Kind      `json:"kind"`
	OwnerID     string    `json:"owner_id"`
	AreaID      int       `json:"area_id"`
	ServiceID   int       `json:"service_id"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	Status      Status    `json:"status"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`

	// Annotations filled by queries, not stored columns.
	OwnerName      string   `json:"owner_name,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

//go:generate mockgen -source=listing.go -destination=../mocks/mock_listing.go -package=mocks
type ListingRepo interface {
	// Create publishes a listing with status open. Input is validated at the
	// handler boundary; moderation has already accepted the content.
	Create(ctx context.Context, ownerID string, c types.CreateListing) (*Listing, error)
	// Search returns open listings matching the filter, annotated with
	// distance when the filter carries an origin.
	Search(ctx context.Context, f types.SearchFilter) ([]Listing, error)
	// GetByID returns a listing regardless of status, joined with the owner's
	// display name and annotated with distance when origin is given.
	GetByID(ctx context.Context, id string, origin *geo.Point) (*Listing, error)
	// Delete removes a listing and its applications. Fails unless requester
	// is the owner, or when a confirmation already exists.
	Delete(ctx context.Context, id, requesterID string) error
}
