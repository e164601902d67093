package listing

import "bicocerto/internal/geo"

// CreateListing is the publish request payload.
type CreateListing struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	AreaID      int      `json:"area_id"`
	ServiceID   int      `json:"service_id"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// Sort orders for search results.
const (
	SortRecent   = "recent"
	SortRating   = "rating"
	SortDistance = "distance"
)

// SearchFilter composes the public search. Origin is required for
// SortDistance and for RadiusKm; a radius-bounded search only matches
// listings with a stored point.
type SearchFilter struct {
	Keyword   string
	Kind      string
	AreaID    *int
	ServiceID *int
	Origin    *geo.Point
	RadiusKm  *float64
	SortBy    string
	Limit     int
	Offset    int
}
