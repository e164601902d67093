package listing

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"bicocerto/internal/geo"
	myErr "bicocerto/internal/types/errors"
	types "bicocerto/internal/types/listing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewListingDBRepository(db *sql.DB, l *zap.SugaredLogger) *ListingDBRepository {
	return &ListingDBRepository{
		DB:     db,
		Logger: l,
	}
}

const listingColumns = `l.id, l.title, l.description, l.kind, l.owner_id, l.area_id, l.service_id, l.lat, l.lng, l.status, l.rating, l.rating_count, l.created_at`

func (lr *ListingDBRepository) Create(ctx context.Context, ownerID string, c types.CreateListing) (*Listing, error) {
	query := `
	INSERT INTO listing (
		id,
		title,
		description,
		kind,
		owner_id,
		area_id,
		service_id,
		lat,
		lng
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, title, description, kind, owner_id, area_id, service_id, lat, lng, status, rating, rating_count, created_at
	`

	var created Listing
	err := lr.DB.QueryRowContext(
		ctx,
		query,
		uuid.New().String(),
		c.Title,
		c.Description,
		c.Kind,
		ownerID,
		c.AreaID,
		c.ServiceID,
		c.Lat,
		c.Lng,
	).Scan(
		&created.ID,
		&created.Title,
		&created.Description,
		&created.Kind,
		&created.OwnerID,
		&created.AreaID,
		&created.ServiceID,
		&created.Lat,
		&created.Lng,
		&created.Status,
		&created.Rating,
		&created.RatingCount,
		&created.CreatedAt,
	)
	if err != nil {
		lr.Logger.Errorf("Error creating listing: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &created, nil
}

// distanceExpr yields the great-circle distance in meters between the origin
// placeholders and the listing's stored point. NULL when the listing has no
// point, so NULLS LAST pushes unlocated listings behind located ones.
func distanceExpr(latArg, lngArg int) string {
	lat := "$" + strconv.Itoa(latArg)
	lng := "$" + strconv.Itoa(lngArg)
	return `1000 * 6371 * acos(LEAST(1.0,
		cos(radians(` + lat + `)) * cos(radians(l.lat)) * cos(radians(l.lng) - radians(` + lng + `)) +
		sin(radians(` + lat + `)) * sin(radians(l.lat))))`
}

func (lr *ListingDBRepository) Search(ctx context.Context, f types.SearchFilter) ([]Listing, error) { // nolint:gocyclo
	args := []interface{}{}
	argID := 1

	selectCols := listingColumns
	distance := ""
	if f.Origin != nil {
		distance = distanceExpr(argID, argID+1)
		args = append(args, f.Origin.Lat, f.Origin.Lng)
		argID += 2
		selectCols += ", " + distance + " AS distance_m"
	}

	where := []string{"l.status = 'open'"}
	if f.Keyword != "" {
		pattern := "%" + strings.ToLower(f.Keyword) + "%"
		where = append(where, "(LOWER(l.title) LIKE $"+strconv.Itoa(argID)+" OR LOWER(l.description) LIKE $"+strconv.Itoa(argID)+")")
		args = append(args, pattern)
		argID++
	}
	if f.Kind != "" {
		where = append(where, "l.kind = $"+strconv.Itoa(argID))
		args = append(args, f.Kind)
		argID++
	}
	if f.AreaID != nil {
		where = append(where, "l.area_id = $"+strconv.Itoa(argID))
		args = append(args, *f.AreaID)
		argID++
	}
	if f.ServiceID != nil {
		where = append(where, "l.service_id = $"+strconv.Itoa(argID))
		args = append(args, *f.ServiceID)
		argID++
	}
	if f.RadiusKm != nil {
		if f.Origin == nil {
			return nil, myErr.ErrBadRadius
		}
		// Radius-bounded search only matches listings with a stored point.
		// The boundary is inclusive.
		where = append(where, "l.lat IS NOT NULL AND l.lng IS NOT NULL AND "+distance+" <= $"+strconv.Itoa(argID))
		args = append(args, *f.RadiusKm*1000)
		argID++
	}

	var order string
	switch f.SortBy {
	case types.SortRating:
		order = "l.rating DESC, l.created_at DESC"
	case types.SortDistance:
		if f.Origin == nil {
			return nil, myErr.ErrBadRadius
		}
		order = "distance_m ASC NULLS LAST, l.created_at DESC"
	default:
		order = "l.created_at DESC"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT " + selectCols + "\n\tFROM listing l" +
		"\n\tWHERE " + strings.Join(where, " AND ") +
		"\n\tORDER BY " + order +
		"\n\tLIMIT $" + strconv.Itoa(argID) + " OFFSET $" + strconv.Itoa(argID+1)
	args = append(args, limit, f.Offset)

	rows, err := lr.DB.QueryContext(ctx, query, args...)
	if err != nil {
		lr.Logger.Errorf("Error searching listings: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var l Listing
		dest := []interface{}{
			&l.ID, &l.Title, &l.Description, &l.Kind, &l.OwnerID,
			&l.AreaID, &l.ServiceID, &l.Lat, &l.Lng, &l.Status,
			&l.Rating, &l.RatingCount, &l.CreatedAt,
		}
		var dist sql.NullFloat64
		if f.Origin != nil {
			dest = append(dest, &dist)
		}
		if err := rows.Scan(dest...); err != nil {
			lr.Logger.Errorf("Error scanning listing: %v", err)
			return nil, myErr.ErrDBInternal
		}
		if dist.Valid {
			d := dist.Float64
			l.DistanceMeters = &d
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return listings, nil
}

func (lr *ListingDBRepository) GetByID(ctx context.Context, id string, origin *geo.Point) (*Listing, error) {
	query := `
	SELECT ` + listingColumns + `, u.name
	FROM listing l
	JOIN users u ON u.user_id = l.owner_id
	WHERE l.id = $1
	`

	var l Listing
	err := lr.DB.QueryRowContext(ctx, query, id).Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.Kind,
		&l.OwnerID,
		&l.AreaID,
		&l.ServiceID,
		&l.Lat,
		&l.Lng,
		&l.Status,
		&l.Rating,
		&l.RatingCount,
		&l.CreatedAt,
		&l.OwnerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		lr.Logger.Errorf("Error getting listing by ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	l.DistanceMeters = geo.Annotate(origin, l.Lat, l.Lng)

	return &l, nil
}

func (lr *ListingDBRepository) Delete(ctx context.Context, id, requesterID string) error {
	tx, err := lr.DB.BeginTx(ctx, nil)
	if err != nil {
		return myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	var ownerID string
	err = tx.QueryRowContext(ctx, `SELECT owner_id FROM listing WHERE id = $1 FOR UPDATE`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return myErr.ErrNotFound
		}
		lr.Logger.Errorf("Error locking listing for delete: %v", err)
		return myErr.ErrDBInternal
	}

	if ownerID != requesterID {
		return myErr.ErrNotOwner
	}

	var confirmed bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM confirmation WHERE listing_id = $1)`, id).Scan(&confirmed)
	if err != nil {
		lr.Logger.Errorf("Error checking confirmation for delete: %v", err)
		return myErr.ErrDBInternal
	}
	if confirmed {
		return myErr.ErrAlreadyConfirmed
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM application WHERE listing_id = $1`, id); err != nil {
		lr.Logger.Errorf("Error deleting applications: %v", err)
		return myErr.ErrDBInternal
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM listing WHERE id = $1`, id); err != nil {
		lr.Logger.Errorf("Error deleting listing: %v", err)
		return myErr.ErrDBInternal
	}

	if err := tx.Commit(); err != nil {
		return myErr.ErrDBInternal
	}

	return nil
}
