package user

import (
	"context"
	"database/sql"
	"errors"

	"bicocerto/internal/geo"
	myErr "bicocerto/internal/types/errors"
	types "bicocerto/internal/types/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewUserDBRepository(db *sql.DB, l *zap.SugaredLogger) *UserDBRepository {
	return &UserDBRepository{
		DB:     db,
		Logger: l,
	}
}

const userColumns = `user_id, name, email, phone_number, rating, rating_count, region_lat, region_lng, region_radius_km, registration_date`

func (ur *UserDBRepository) CreateUser(ctx context.Context, c types.CreateUser) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		ur.Logger.Errorf("Error hashing password: %v", err)
		return nil, myErr.ErrDBInternal
	}

	query := `
	INSERT INTO users (user_id, name, email, phone_number, password_hash)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + userColumns + `
	`

	u := &User{}
	err = ur.DB.QueryRowContext(ctx, query, uuid.New().String(), c.Name, c.Email, c.PhoneNumber, string(hash)).
		Scan(
			&u.ID, &u.Name, &u.Email, &u.PhoneNumber,
			&u.Rating, &u.RatingCount,
			&u.RegionLat, &u.RegionLng, &u.RegionRadiusKm,
			&u.RegistrationDate,
		)
	if err != nil {
		if myErr.IsUniqueViolation(err) {
			return nil, myErr.ErrAlreadyExists
		}
		ur.Logger.Errorf("Error creating user: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) CheckUser(ctx context.Context, email, password string) (*User, error) {
	query := `
	SELECT ` + userColumns + `, password_hash
	FROM users
	WHERE email = $1
	`

	u := &User{}
	err := ur.DB.QueryRowContext(ctx, query, email).
		Scan(
			&u.ID, &u.Name, &u.Email, &u.PhoneNumber,
			&u.Rating, &u.RatingCount,
			&u.RegionLat, &u.RegionLng, &u.RegionRadiusKm,
			&u.RegistrationDate, &u.PasswordHash,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Error fetching user by email: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, myErr.ErrBadPassword
	}

	return u, nil
}

func (ur *UserDBRepository) Info(ctx context.Context, userID string) (*User, error) {
	query := `
	SELECT ` + userColumns + `
	FROM users
	WHERE user_id = $1
	`

	u := &User{}
	err := ur.DB.QueryRowContext(ctx, query, userID).
		Scan(
			&u.ID, &u.Name, &u.Email, &u.PhoneNumber,
			&u.Rating, &u.RatingCount,
			&u.RegionLat, &u.RegionLng, &u.RegionRadiusKm,
			&u.RegistrationDate,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Error fetching user info: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) UpdateRegion(ctx context.Context, userID string, c types.ChangeRegion) (*User, error) {
	query := `
	UPDATE users
	SET region_lat = $1, region_lng = $2, region_radius_km = $3
	WHERE user_id = $4
	`

	res, err := ur.DB.ExecContext(ctx, query, c.Lat, c.Lng, c.RadiusKm, userID)
	if err != nil {
		ur.Logger.Warnf("Error updating region: %v", err)
		return nil, myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, myErr.ErrDBInternal
	}
	if affected == 0 {
		return nil, myErr.ErrNotFound
	}

	return ur.Info(ctx, userID)
}

func (ur *UserDBRepository) RegionOf(ctx context.Context, userID string) (*geo.Region, error) {
	query := `
	SELECT region_lat, region_lng, region_radius_km
	FROM users
	WHERE user_id = $1
	`

	var lat, lng, radius *float64
	err := ur.DB.QueryRowContext(ctx, query, userID).Scan(&lat, &lng, &radius)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Error fetching region: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if lat == nil || lng == nil || radius == nil {
		return nil, nil
	}

	return &geo.Region{
		Center:   geo.Point{Lat: *lat, Lng: *lng},
		RadiusKm: *radius,
	}, nil
}
