package review

import (
	"context"
	"time"

	types "bicocerto/internal/types/review"
)

// Kind tells which party is being rated.
type Kind string

const (
	KindOfProvider   Kind = "provider"
	KindOfContractor Kind = "contractor"
)

// ParseKind validates a wire value against the closed enum.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindOfProvider, KindOfContractor:
		return Kind(s), true
	}
	return "", false
}

// Review is the post-confirmation mutual rating. Each of a confirmation's two
// parties may leave exactly one, about the other.
type Review struct {
	ID             string    `json:"id"`
	ConfirmationID string    `json:"confirmation_id"`
	ReviewerID     string    `json:"reviewer_id"`
	TargetID       string    `json:"target_id"`
	Kind           Kind      `json:"kind"`
	Score1         int       `json:"score1"`
	Score2         int       `json:"score2"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`

	ReviewerName string `json:"reviewer_name,omitempty"`
}

//go:generate mockgen -source=review.go -destination=../mocks/mock_review.go -package=mocks
type ReviewRepo interface {
	// Submit inserts a review inside one transaction that re-derives the
	// confirmation's two parties, checks eligibility, and updates the rating
	// aggregate of the reviewed user. The unique constraint on
	// (confirmation_id, reviewer_id) is the authoritative duplicate guard.
	Submit(ctx context.Context, reviewerID string, s types.SubmitReview) (*Review, error)
	// HasReviewed reports whether the reviewer already left a review for the
	// confirmation. Dashboard renders "Evaluate" vs "Evaluated" from it.
	HasReviewed(ctx context.Context, confirmationID, reviewerID string) (bool, error)
	// ListByTarget returns the reviews received by a user, newest first.
	ListByTarget(ctx context.Context, targetID string) ([]Review, error)
}
