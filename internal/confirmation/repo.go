package confirmation

import (
	"context"
	"database/sql"
	"errors"

	myErr "bicocerto/internal/types/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConfirmationDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewConfirmationDBRepository(db *sql.DB, l *zap.SugaredLogger) *ConfirmationDBRepository {
	return &ConfirmationDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (cr *ConfirmationDBRepository) Confirm(ctx context.Context, listingID, ownerID, applicantID string) (*Confirmation, error) {
	tx, err := cr.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	var currentOwner, status string
	err = tx.QueryRowContext(ctx, `SELECT owner_id, status FROM listing WHERE id = $1 FOR UPDATE`, listingID).
		Scan(&currentOwner, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		cr.Logger.Errorf("Error locking listing for confirm: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if currentOwner != ownerID {
		return nil, myErr.ErrNotOwner
	}
	if status != "open" {
		return nil, myErr.ErrListingClosed
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM application WHERE listing_id = $1 AND applicant_id = $2)`,
		listingID, applicantID,
	).Scan(&exists)
	if err != nil {
		cr.Logger.Errorf("Error checking application for confirm: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if !exists {
		return nil, myErr.ErrNotFound
	}

	var c Confirmation
	err = tx.QueryRowContext(ctx, `
		INSERT INTO confirmation (id, listing_id, applicant_id)
		VALUES ($1, $2, $3)
		RETURNING id, listing_id, applicant_id, created_at
	`, uuid.New().String(), listingID, applicantID).
		Scan(&c.ID, &c.ListingID, &c.ApplicantID, &c.CreatedAt)
	if err != nil {
		if myErr.IsUniqueViolation(err) {
			return nil, myErr.ErrAlreadyConfirmed
		}
		cr.Logger.Errorf("Error creating confirmation: %v", err)
		return nil, myErr.ErrDBInternal
	}

	// Conditional flip keeps the status transition coupled to the insert
	// even if the row lock above is ever weakened.
	res, err := tx.ExecContext(ctx, `UPDATE listing SET status = 'closed' WHERE id = $1 AND status = 'open'`, listingID)
	if err != nil {
		cr.Logger.Errorf("Error closing listing: %v", err)
		return nil, myErr.ErrDBInternal
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, myErr.ErrDBInternal
	}
	if affected != 1 {
		return nil, myErr.ErrListingClosed
	}

	if err := tx.Commit(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return &c, nil
}

func (cr *ConfirmationDBRepository) ListForOwner(ctx context.Context, userID string) ([]Confirmation, error) {
	query := `
	SELECT c.id, c.listing_id, c.applicant_id, c.created_at, l.title, u.user_id, u.name
	FROM confirmation c
	JOIN listing l ON l.id = c.listing_id
	JOIN users u ON u.user_id = c.applicant_id
	WHERE l.owner_id = $1
	ORDER BY c.created_at DESC
	`

	return cr.list(ctx, query, userID, "applicant")
}

func (cr *ConfirmationDBRepository) ListForApplicant(ctx context.Context, userID string) ([]Confirmation, error) {
	query := `
	SELECT c.id, c.listing_id, c.applicant_id, c.created_at, l.title, u.user_id, u.name
	FROM confirmation c
	JOIN listing l ON l.id = c.listing_id
	JOIN users u ON u.user_id = l.owner_id
	WHERE c.applicant_id = $1
	ORDER BY c.created_at DESC
	`

	return cr.list(ctx, query, userID, "owner")
}

func (cr *ConfirmationDBRepository) list(ctx context.Context, query, userID, counterpartRole string) ([]Confirmation, error) {
	rows, err := cr.DB.QueryContext(ctx, query, userID)
	if err != nil {
		cr.Logger.Errorf("Error listing confirmations of %v: %v", userID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var confirmations []Confirmation
	for rows.Next() {
		var c Confirmation
		err := rows.Scan(&c.ID, &c.ListingID, &c.ApplicantID, &c.CreatedAt, &c.ListingTitle, &c.CounterpartID, &c.CounterpartName)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		c.CounterpartRole = counterpartRole
		confirmations = append(confirmations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return confirmations, nil
}
