package confirmation

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bicocerto/internal/confirmation"
	"bicocerto/internal/contextutil"
	"bicocerto/internal/kafka"
	myErr "bicocerto/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ConfirmationHandler struct {
	Logger           *zap.SugaredLogger
	ConfirmationRepo confirmation.ConfirmationRepo
	Events           kafka.EventProducer
}

func NewConfirmationHandler(l *zap.SugaredLogger, cr confirmation.ConfirmationRepo, ep kafka.EventProducer) *ConfirmationHandler {
	return &ConfirmationHandler{
		Logger:           l,
		ConfirmationRepo: cr,
		Events:           ep,
	}
}

// Confirm handles POST /listing/{id}/confirm
func (h *ConfirmationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		ApplicantID string `json:"applicant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSON, http.StatusBadRequest, h.Logger)
		return
	}
	if input.ApplicantID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	created, err := h.ConfirmationRepo.Confirm(r.Context(), listingID, userID, input.ApplicantID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.sendEvent(r.Context(), kafka.Event{
		UserID:    userID,
		Type:      kafka.EventTypeListingClosed,
		ListingID: listingID,
		Timestamp: time.Now().UTC(),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("listing %s confirmed for applicant %s", listingID, input.ApplicantID)
}

// ListAsOwner handles GET /confirmations/owner
func (h *ConfirmationHandler) ListAsOwner(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.ConfirmationRepo.ListForOwner)
}

// ListAsApplicant handles GET /confirmations/applicant
func (h *ConfirmationHandler) ListAsApplicant(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.ConfirmationRepo.ListForApplicant)
}

func (h *ConfirmationHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context, string) ([]confirmation.Confirmation, error),
) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	confirmations, err := fetch(r.Context(), userID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	if confirmations == nil {
		confirmations = []confirmation.Confirmation{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(confirmations); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

func (h *ConfirmationHandler) sendEvent(ctx context.Context, event kafka.Event) {
	if h.Events == nil {
		return
	}
	if err := h.Events.SendEvent(ctx, event); err != nil {
		h.Logger.Warnf("failed to send %s event: %v", event.Type, err)
	}
}
