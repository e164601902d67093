package application

import (
	"context"
	"database/sql"
	"errors"

	myErr "bicocerto/internal/types/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApplicationDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewApplicationDBRepository(db *sql.DB, l *zap.SugaredLogger) *ApplicationDBRepository {
	return &ApplicationDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (ar *ApplicationDBRepository) Apply(ctx context.Context, listingID, applicantID string) (*Application, error) {
	var ownerID, status string
	err := ar.DB.QueryRowContext(ctx, `SELECT owner_id, status FROM listing WHERE id = $1`, listingID).
		Scan(&ownerID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ar.Logger.Errorf("Error checking listing before apply: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if ownerID == applicantID {
		return nil, myErr.ErrOwnListing
	}
	if status != "open" {
		return nil, myErr.ErrListingClosed
	}

	query := `
	INSERT INTO application (id, listing_id, applicant_id)
	VALUES ($1, $2, $3)
	RETURNING id, listing_id, applicant_id, created_at
	`

	var a Application
	err = ar.DB.QueryRowContext(ctx, query, uuid.New().String(), listingID, applicantID).
		Scan(&a.ID, &a.ListingID, &a.ApplicantID, &a.CreatedAt)
	if err != nil {
		if myErr.IsUniqueViolation(err) {
			return nil, myErr.ErrAlreadyApplied
		}
		ar.Logger.Errorf("Error creating application: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &a, nil
}

func (ar *ApplicationDBRepository) ListByListing(ctx context.Context, listingID, requesterID string) ([]Application, error) {
	var ownerID string
	err := ar.DB.QueryRowContext(ctx, `SELECT owner_id FROM listing WHERE id = $1`, listingID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ar.Logger.Errorf("Error checking listing owner: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if ownerID != requesterID {
		return nil, myErr.ErrNotOwner
	}

	query := `
	SELECT a.id, a.listing_id, a.applicant_id, a.created_at, u.name, u.rating
	FROM application a
	JOIN users u ON u.user_id = a.applicant_id
	WHERE a.listing_id = $1
	ORDER BY a.created_at ASC
	`

	rows, err := ar.DB.QueryContext(ctx, query, listingID)
	if err != nil {
		ar.Logger.Errorf("Error listing applicants: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		err := rows.Scan(&a.ID, &a.ListingID, &a.ApplicantID, &a.CreatedAt, &a.ApplicantName, &a.ApplicantRating)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		applications = append(applications, a)
	}
	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return applications, nil
}

func (ar *ApplicationDBRepository) ListByApplicant(ctx context.Context, applicantID string) ([]Application, error) {
	query := `
	SELECT a.id, a.listing_id, a.applicant_id, a.created_at, l.title, l.status, u.name
	FROM application a
	JOIN listing l ON l.id = a.listing_id
	JOIN users u ON u.user_id = l.owner_id
	WHERE a.applicant_id = $1
	ORDER BY a.created_at DESC
	`

	rows, err := ar.DB.QueryContext(ctx, query, applicantID)
	if err != nil {
		ar.Logger.Errorf("Error listing applications of %v: %v", applicantID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		err := rows.Scan(&a.ID, &a.ListingID, &a.ApplicantID, &a.CreatedAt, &a.ListingTitle, &a.ListingStatus, &a.OwnerName)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		applications = append(applications, a)
	}
	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return applications, nil
}
