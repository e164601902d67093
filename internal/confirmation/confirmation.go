package confirmation

import (
	"context"
	"time"
)

// Confirmation is the owner's selection of one application as the winner.
// Creating it is the only thing that closes a listing, and both writes happen
// in one transaction.
type Confirmation struct {
	ID          string    `json:"id"`
	ListingID   string    `json:"listing_id"`
	ApplicantID string    `json:"applicant_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Dashboard annotations.
	ListingTitle     string `json:"listing_title,omitempty"`
	CounterpartID    string `json:"counterpart_id,omitempty"`
	CounterpartName  string `json:"counterpart_name,omitempty"`
	CounterpartRole  string `json:"counterpart_role,omitempty"`
}

//go:generate mockgen -source=confirmation.go -destination=../mocks/mock_confirmation.go -package=mocks
type ConfirmationRepo interface {
	// Confirm closes an open listing by selecting one applicant. The listing
	// row is locked for the duration, so of two concurrent calls exactly one
	// succeeds and the other observes the closed status.
	Confirm(ctx context.Context, listingID, ownerID, applicantID string) (*Confirmation, error)
	// ListForOwner returns confirmations on listings the user owns
	// ("work I confirmed"), counterpart is the applicant.
	ListForOwner(ctx context.Context, userID string) ([]Confirmation, error)
	// ListForApplicant returns confirmations where the user was selected
	// ("work I was confirmed for"), counterpart is the owner.
	ListForApplicant(ctx context.Context, userID string) ([]Confirmation, error)
}
