package favorite

import (
	"context"
	"database/sql"

	myErr "bicocerto/internal/types/errors"

	"go.uber.org/zap"
)

type FavoriteDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewFavoriteDBRepository(db *sql.DB, logger *zap.SugaredLogger) *FavoriteDBRepository {
	return &FavoriteDBRepository{
		DB:     db,
		Logger: logger,
	}
}

func (fr *FavoriteDBRepository) Add(ctx context.Context, userID, listingID string) error {
	query := `
	INSERT INTO favorite (user_id, listing_id)
	VALUES ($1, $2) ON CONFLICT (user_id, listing_id)
	DO NOTHING
	`

	_, err := fr.DB.ExecContext(ctx, query, userID, listingID)
	if err != nil {
		fr.Logger.Errorf("Error saving favorite: %v", err)
		return myErr.ErrDBInternal
	}

	return nil
}

func (fr *FavoriteDBRepository) Remove(ctx context.Context, userID, listingID string) error {
	query := `
	DELETE FROM favorite
	WHERE user_id = $1 AND listing_id = $2
	`

	res, err := fr.DB.ExecContext(ctx, query, userID, listingID)
	if err != nil {
		fr.Logger.Errorf("Error removing favorite: %v", err)
		return myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return myErr.ErrDBInternal
	}
	if affected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}

func (fr *FavoriteDBRepository) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	query := `
	SELECT f.listing_id, l.title, l.kind, l.status, l.rating, f.created_at
	FROM favorite f
	JOIN listing l ON l.id = f.listing_id
	WHERE f.user_id = $1
	ORDER BY f.created_at DESC
	`

	rows, err := fr.DB.QueryContext(ctx, query, userID)
	if err != nil {
		fr.Logger.Errorf("Error loading favorites of %v: %v", userID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ListingID, &f.Title, &f.Kind, &f.Status, &f.Rating, &f.SavedAt); err != nil {
			return nil, myErr.ErrDBInternal
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return favorites, nil
}
