package user

import (
	"context"
	"time"

	"bicocerto/internal/geo"
	types "bicocerto/internal/types/user"
)

// User is the narrow identity record the marketplace core needs: a stable id,
// display data, a rating aggregate fed by the review ledger, and an optional
// region for proximity personalization.
type User struct {
	ID               string    `json:"user_id"` // uuid
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number"`
	PasswordHash     string    `json:"-"`
	Rating           float64   `json:"rating"`
	RatingCount      int       `json:"rating_count"`
	RegionLat        *float64  `json:"region_lat,omitempty"`
	RegionLng        *float64  `json:"region_lng,omitempty"`
	RegionRadiusKm   *float64  `json:"region_radius_km,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
}

// Region returns the user's region, nil when none is set.
func (u *User) Region() *geo.Region {
	if u.RegionLat == nil || u.RegionLng == nil || u.RegionRadiusKm == nil {
		return nil
	}
	return &geo.Region{
		Center:   geo.Point{Lat: *u.RegionLat, Lng: *u.RegionLng},
		RadiusKm: *u.RegionRadiusKm,
	}
}

//go:generate mockgen -source=user.go -destination=../mocks/mock_user.go -package=mocks
type UserRepo interface {
	// CreateUser registers a user with a bcrypt password hash.
	CreateUser(ctx context.Context, c types.CreateUser) (*User, error)
	// CheckUser verifies email and password.
	CheckUser(ctx context.Context, email, password string) (*User, error)
	// Info returns public info about a user.
	Info(ctx context.Context, userID string) (*User, error)
	// UpdateRegion sets the user's home point and radius.
	UpdateRegion(ctx context.Context, userID string, c types.ChangeRegion) (*User, error)
	// RegionOf returns the stored region of a user, nil when unset.
	RegionOf(ctx context.Context, userID string) (*geo.Region, error)
}
