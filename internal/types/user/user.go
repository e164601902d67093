package user

// CreateUser is the registration payload.
type CreateUser struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

// ChangeRegion sets the user's home point and service radius. Coordinates
// arrive already resolved; geocoding happens outside this service.
type ChangeRegion struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}
