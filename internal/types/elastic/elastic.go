package elastic

// ListingDoc is the search-index projection of a listing.
type ListingDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	AreaID      int    `json:"area_id"`
	ServiceID   int    `json:"service_id"`
	IsOpen      bool   `json:"is_open"`
}
