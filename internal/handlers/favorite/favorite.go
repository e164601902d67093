package favorite

import (
	"encoding/json"
	"net/http"

	"bicocerto/internal/contextutil"
	"bicocerto/internal/favorite"
	myErr "bicocerto/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	Logger       *zap.SugaredLogger
	FavoriteRepo favorite.FavoriteRepo
}

func NewFavoriteHandler(l *zap.SugaredLogger, fr favorite.FavoriteRepo) *FavoriteHandler {
	return &FavoriteHandler{
		Logger:       l,
		FavoriteRepo: fr,
	}
}

// Add handles POST /favorite/{listingID}
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	vars := mux.Vars(r)
	listingID := vars["listingID"]
	if listingID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.FavoriteRepo.Add(r.Context(), userID, listingID); err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	myErr.SendErrorTo(w, nil, http.StatusCreated, h.Logger)
}

// Remove handles DELETE /favorite/{listingID}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	vars := mux.Vars(r)
	listingID := vars["listingID"]
	if listingID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.FavoriteRepo.Remove(r.Context(), userID, listingID); err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	myErr.SendErrorTo(w, nil, http.StatusOK, h.Logger)
}

// List handles GET /favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	favorites, err := h.FavoriteRepo.ListByUser(r.Context(), userID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	if favorites == nil {
		favorites = []favorite.Favorite{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(favorites); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}
