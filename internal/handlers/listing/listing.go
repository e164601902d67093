package listing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bicocerto/internal/contextutil"
	"bicocerto/internal/geo"
	"bicocerto/internal/kafka"
	"bicocerto/internal/listing"
	"bicocerto/internal/moderation"
	esDoc "bicocerto/internal/types/elastic"
	myErr "bicocerto/internal/types/errors"
	types "bicocerto/internal/types/listing"
	"bicocerto/internal/user"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Suggester is the slice of the Elasticsearch service the handler needs.
type Suggester interface {
	SearchByText(ctx context.Context, query string) ([]esDoc.ListingDoc, error)
}

type ListingHandler struct {
	Logger      *zap.SugaredLogger
	ListingRepo listing.ListingRepo
	UserRepo    user.UserRepo
	Moderator   moderation.Moderator
	Events      kafka.EventProducer
	Suggest     Suggester
}

func NewListingHandler(
	l *zap.SugaredLogger,
	lr listing.ListingRepo,
	ur user.UserRepo,
	m moderation.Moderator,
	ep kafka.EventProducer,
	sg Suggester,
) *ListingHandler {
	return &ListingHandler{
		Logger:      l,
		ListingRepo: lr,
		UserRepo:    ur,
		Moderator:   m,
		Events:      ep,
		Suggest:     sg,
	}
}

// Create handles POST /listing
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var input types.CreateListing
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSON, http.StatusBadRequest, h.Logger)
		return
	}

	if err := validateCreate(input); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	safe, err := h.Moderator.Check(r.Context(), input.Title, input.Description)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
	if !safe {
		myErr.SendErrorTo(w, myErr.ErrUnsafeContent, http.StatusBadRequest, h.Logger)
		return
	}

	created, err := h.ListingRepo.Create(r.Context(), userID, input)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.sendEvent(r.Context(), kafka.Event{
		UserID:    userID,
		Type:      kafka.EventTypeListingPublished,
		ListingID: created.ID,
		Areas:     []int{created.AreaID},
		Timestamp: time.Now().UTC(),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("listing created: %s", created.ID)
}

func validateCreate(input types.CreateListing) error {
	if input.Title == "" {
		return myErr.ErrEmptyTitle
	}
	if input.Description == "" {
		return myErr.ErrEmptyDescription
	}
	if input.AreaID == 0 {
		return myErr.ErrMissingArea
	}
	if input.ServiceID == 0 {
		return myErr.ErrMissingService
	}
	if _, ok := listing.ParseKind(input.Kind); !ok {
		return myErr.ErrBadKind
	}
	if (input.Lat == nil) != (input.Lng == nil) {
		return myErr.ErrBadRegion
	}
	return nil
}

// Search handles GET /listings/search
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	listings, err := h.ListingRepo.Search(r.Context(), *filter)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	if listings == nil {
		listings = []listing.Listing{}
	}

	if filter.Keyword != "" {
		userID, _ := contextutil.GetUserIDFromContext(r.Context())
		areas := []int{}
		if filter.AreaID != nil {
			areas = append(areas, *filter.AreaID)
		}
		h.sendEvent(r.Context(), kafka.Event{
			UserID:    userID,
			Type:      kafka.EventTypeSearch,
			Areas:     areas,
			Timestamp: time.Now().UTC(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(listings); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// parseFilter builds the search filter from query params. An authenticated
// caller without explicit lat/lng falls back to their stored region for
// distance annotation.
func (h *ListingHandler) parseFilter(r *http.Request) (*types.SearchFilter, error) {
	q := r.URL.Query()

	filter := types.SearchFilter{
		Keyword: q.Get("q"),
		SortBy:  q.Get("sort"),
	}

	if kind := q.Get("kind"); kind != "" {
		parsed, ok := listing.ParseKind(kind)
		if !ok {
			return nil, myErr.ErrBadKind
		}
		filter.Kind = string(parsed)
	}

	if v := q.Get("area_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, myErr.ErrBadID
		}
		filter.AreaID = &id
	}
	if v := q.Get("service_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, myErr.ErrBadID
		}
		filter.ServiceID = &id
	}

	origin, err := parseOrigin(q.Get("lat"), q.Get("lng"))
	if err != nil {
		return nil, err
	}
	if origin == nil {
		if userID, ok := contextutil.GetUserIDFromContext(r.Context()); ok {
			region, err := h.UserRepo.RegionOf(r.Context(), userID)
			if err == nil && region != nil {
				origin = &region.Center
			}
		}
	}
	filter.Origin = origin

	if v := q.Get("radius_km"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			return nil, myErr.ErrBadRadius
		}
		filter.RadiusKm = &radius
	}

	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	return &filter, nil
}

func parseOrigin(latStr, lngStr string) (*geo.Point, error) {
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, myErr.ErrBadRadius
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, myErr.ErrBadRadius
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, myErr.ErrBadRadius
	}

	return &geo.Point{Lat: lat, Lng: lng}, nil
}

// GetByID handles GET /listing/{id}
func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	q := r.URL.Query()
	origin, err := parseOrigin(q.Get("lat"), q.Get("lng"))
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}
	if origin == nil {
		if userID, ok := contextutil.GetUserIDFromContext(r.Context()); ok {
			region, err := h.UserRepo.RegionOf(r.Context(), userID)
			if err == nil && region != nil {
				origin = &region.Center
			}
		}
	}

	found, err := h.ListingRepo.GetByID(r.Context(), id, origin)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(found); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched listing by id: %s", id)
}

// Delete handles DELETE /listing/{id}
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.ListingRepo.Delete(r.Context(), id, userID); err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.sendEvent(r.Context(), kafka.Event{
		UserID:    userID,
		Type:      kafka.EventTypeListingDeleted,
		ListingID: id,
		Timestamp: time.Now().UTC(),
	})

	myErr.SendErrorTo(w, nil, http.StatusOK, h.Logger)
	h.Logger.Infof("listing deleted: %s", id)
}

// SuggestListings handles GET /listings/suggest?q=
func (h *ListingHandler) SuggestListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		myErr.SendErrorTo(w, errors.New("missing query parameter"), http.StatusBadRequest, h.Logger)
		return
	}

	docs, err := h.Suggest.SearchByText(r.Context(), q)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(docs); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// Event publication is best effort, requests never fail because of the bus.
func (h *ListingHandler) sendEvent(ctx context.Context, event kafka.Event) {
	if h.Events == nil {
		return
	}
	if err := h.Events.SendEvent(ctx, event); err != nil {
		h.Logger.Warnf("failed to send %s event: %v", event.Type, err)
	}
}
