package review

import (
	"context"
	"database/sql"
	"errors"

	myErr "bicocerto/internal/types/errors"
	types "bicocerto/internal/types/review"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewReviewDBRepository(db *sql.DB, l *zap.SugaredLogger) *ReviewDBRepository {
	return &ReviewDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (rr *ReviewDBRepository) Submit(ctx context.Context, reviewerID string, s types.SubmitReview) (*Review, error) { // nolint:gocyclo
	tx, err := rr.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	// Derive the two legitimate parties from the confirmation's own listing,
	// never from the reviewer's other applications.
	var ownerID, applicantID, listingID string
	err = tx.QueryRowContext(ctx, `
		SELECT l.owner_id, c.applicant_id, c.listing_id
		FROM confirmation c
		JOIN listing l ON l.id = c.listing_id
		WHERE c.id = $1
	`, s.ConfirmationID).Scan(&ownerID, &applicantID, &listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		rr.Logger.Errorf("Error deriving confirmation parties: %v", err)
		return nil, myErr.ErrDBInternal
	}

	var counterpart string
	switch reviewerID {
	case ownerID:
		counterpart = applicantID
	case applicantID:
		counterpart = ownerID
	default:
		return nil, myErr.ErrNotParticipant
	}
	if s.TargetID != counterpart {
		return nil, myErr.ErrBadTarget
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM review WHERE confirmation_id = $1 AND reviewer_id = $2)`,
		s.ConfirmationID, reviewerID,
	).Scan(&exists)
	if err != nil {
		rr.Logger.Errorf("Error checking existing review: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if exists {
		return nil, myErr.ErrAlreadyReviewed
	}

	var rev Review
	err = tx.QueryRowContext(ctx, `
		INSERT INTO review (id, confirmation_id, reviewer_id, target_id, kind, score1, score2, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, confirmation_id, reviewer_id, target_id, kind, score1, score2, comment, created_at
	`, uuid.New().String(), s.ConfirmationID, reviewerID, s.TargetID, s.Kind, s.Score1, s.Score2, s.Comment).
		Scan(&rev.ID, &rev.ConfirmationID, &rev.ReviewerID, &rev.TargetID, &rev.Kind, &rev.Score1, &rev.Score2, &rev.Comment, &rev.CreatedAt)
	if err != nil {
		// A racing duplicate submit loses here, not at the check above.
		if myErr.IsUniqueViolation(err) {
			return nil, myErr.ErrAlreadyReviewed
		}
		rr.Logger.Errorf("Error creating review: %v", err)
		return nil, myErr.ErrDBInternal
	}

	score := float64(s.Score1+s.Score2) / 2

	if err := rr.bumpUserRating(ctx, tx, s.TargetID, score); err != nil {
		return nil, err
	}
	// The listing's relevance score follows reviews about its owner.
	if s.TargetID == ownerID {
		if err := rr.bumpListingRating(ctx, tx, listingID, score); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return &rev, nil
}

func (rr *ReviewDBRepository) bumpUserRating(ctx context.Context, tx *sql.Tx, userID string, score float64) error {
	var rating float64
	var count int
	err := tx.QueryRowContext(ctx, `SELECT rating, rating_count FROM users WHERE user_id = $1 FOR UPDATE`, userID).
		Scan(&rating, &count)
	if err != nil {
		rr.Logger.Errorf("Error locking user rating: %v", err)
		return myErr.ErrDBInternal
	}

	newRating := (rating*float64(count) + score) / float64(count+1)

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET rating = $1, rating_count = rating_count + 1 WHERE user_id = $2`,
		newRating, userID,
	)
	if err != nil {
		rr.Logger.Errorf("Error updating user rating: %v", err)
		return myErr.ErrDBInternal
	}

	return nil
}

func (rr *ReviewDBRepository) bumpListingRating(ctx context.Context, tx *sql.Tx, listingID string, score float64) error {
	var rating float64
	var count int
	err := tx.QueryRowContext(ctx, `SELECT rating, rating_count FROM listing WHERE id = $1 FOR UPDATE`, listingID).
		Scan(&rating, &count)
	if err != nil {
		rr.Logger.Errorf("Error locking listing rating: %v", err)
		return myErr.ErrDBInternal
	}

	newRating := (rating*float64(count) + score) / float64(count+1)

	_, err = tx.ExecContext(ctx,
		`UPDATE listing SET rating = $1, rating_count = rating_count + 1 WHERE id = $2`,
		newRating, listingID,
	)
	if err != nil {
		rr.Logger.Errorf("Error updating listing rating: %v", err)
		return myErr.ErrDBInternal
	}

	return nil
}

func (rr *ReviewDBRepository) HasReviewed(ctx context.Context, confirmationID, reviewerID string) (bool, error) {
	var exists bool
	err := rr.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM review WHERE confirmation_id = $1 AND reviewer_id = $2)`,
		confirmationID, reviewerID,
	).Scan(&exists)
	if err != nil {
		rr.Logger.Errorf("Error checking review existence: %v", err)
		return false, myErr.ErrDBInternal
	}

	return exists, nil
}

func (rr *ReviewDBRepository) ListByTarget(ctx context.Context, targetID string) ([]Review, error) {
	query := `
	SELECT r.id, r.confirmation_id, r.reviewer_id, r.target_id, r.kind, r.score1, r.score2, r.comment, r.created_at, u.name
	FROM review r
	JOIN users u ON u.user_id = r.reviewer_id
	WHERE r.target_id = $1
	ORDER BY r.created_at DESC
	`

	rows, err := rr.DB.QueryContext(ctx, query, targetID)
	if err != nil {
		rr.Logger.Errorf("Error listing reviews of %v: %v", targetID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		err := rows.Scan(&r.ID, &r.ConfirmationID, &r.ReviewerID, &r.TargetID, &r.Kind, &r.Score1, &r.Score2, &r.Comment, &r.CreatedAt, &r.ReviewerName)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return reviews, nil
}
