package application

import (
	"context"
	"time"
)

// Application records a user's intent to take a listing. One per
// (listing, applicant), never from the listing owner, only while open.
type Application struct {
	ID          string    `json:"id"`
	ListingID   string    `json:"listing_id"`
	ApplicantID string    `json:"applicant_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined display data, filled by list queries.
	ApplicantName   string  `json:"applicant_name,omitempty"`
	ApplicantRating float64 `json:"applicant_rating,omitempty"`
	ListingTitle    string  `json:"listing_title,omitempty"`
	ListingStatus   string  `json:"listing_status,omitempty"`
	OwnerName       string  `json:"owner_name,omitempty"`
}

//go:generate mockgen -source=application.go -destination=../mocks/mock_application.go -package=mocks
type ApplicationRepo interface {
	// Apply creates an application for an open listing. The unique constraint
	// on (listing_id, applicant_id) is the race-proof duplicate guard.
	Apply(ctx context.Context, listingID, applicantID string) (*Application, error)
	// ListByListing returns a listing's applications, earliest first. Only the
	// listing owner may call it.
	ListByListing(ctx context.Context, listingID, requesterID string) ([]Application, error)
	// ListByApplicant returns all applications made by a user, joined with
	// listing and owner info for dashboard display.
	ListByApplicant(ctx context.Context, applicantID string) ([]Application, error)
}
