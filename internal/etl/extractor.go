package etl

import (
	"database/sql"

	"bicocerto/internal/listing"

	"go.uber.org/zap"
	"golang.org/x/net/context"
)

type PostgresExtractor struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostgresExtractor(db *sql.DB, logger *zap.SugaredLogger) *PostgresExtractor {
	return &PostgresExtractor{
		DB:     db,
		Logger: logger,
	}
}

// ExtractNew fetches open listings that have not yet reached the search index.
func (e *PostgresExtractor) ExtractNew(ctx context.Context) ([]listing.Listing, error) {
	query := `
		SELECT id, title, description, kind, area_id, service_id, status
		FROM listing
		WHERE indexed = FALSE AND status = 'open'
		`

	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		e.Logger.Error("Failed to executing query", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []listing.Listing

	for rows.Next() {
		var l listing.Listing
		err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Kind, &l.AreaID, &l.ServiceID, &l.Status)
		if err != nil {
			e.Logger.Error("Failed to scan rows", zap.Error(err))
			return nil, err
		}
		result = append(result, l)
	}

	if err := rows.Err(); err != nil {
		e.Logger.Error("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return result, nil
}
