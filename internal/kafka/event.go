package kafka

import "time"

type EventType string

const (
	EventTypeListingPublished EventType = "listingPublished"
	EventTypeListingClosed    EventType = "listingClosed"
	EventTypeListingDeleted   EventType = "listingDeleted"
	EventTypeReviewSubmitted  EventType = "reviewSubmitted"
	EventTypeSearch           EventType = "search"
)

// Event is the listing lifecycle record put on the bus. The indexer keeps
// the search index in step with it; search events feed usage analytics.
type Event struct {
	UserID    string    `json:"user_id,omitempty"`
	Type      EventType `json:"type"`
	ListingID string    `json:"listing_id,omitempty"`
	Areas     []int     `json:"areas,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
