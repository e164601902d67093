package application

import (
	"encoding/json"
	"net/http"

	"bicocerto/internal/application"
	"bicocerto/internal/contextutil"
	myErr "bicocerto/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ApplicationHandler struct {
	Logger          *zap.SugaredLogger
	ApplicationRepo application.ApplicationRepo
}

func NewApplicationHandler(l *zap.SugaredLogger, ar application.ApplicationRepo) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:          l,
		ApplicationRepo: ar,
	}
}

// Apply handles POST /listing/{id}/apply
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	vars := mux.Vars(r)
	listingID := vars["id"]
	if listingID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	created, err := h.ApplicationRepo.Apply(r.Context(), listingID, userID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("user %s applied to listing %s", userID, listingID)
}

// ListApplicants handles GET /listing/{id}/applications (owner only)
func (h *ApplicationHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	vars := mux.Vars(r)
	listingID := vars["id"]
	if listingID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	applications, err := h.ApplicationRepo.ListByListing(r.Context(), listingID, userID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	if applications == nil {
		applications = []application.Application{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(applications); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// ListMine handles GET /applications/mine
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	applications, err := h.ApplicationRepo.ListByApplicant(r.Context(), userID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	if applications == nil {
		applications = []application.Application{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(applications); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}
