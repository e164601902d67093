package review

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bicocerto/internal/contextutil"
	"bicocerto/internal/kafka"
	"bicocerto/internal/review"
	myErr "bicocerto/internal/types/errors"
	types "bicocerto/internal/types/review"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	Logger     *zap.SugaredLogger
	ReviewRepo review.ReviewRepo
	Events     kafka.EventProducer
}

func NewReviewHandler(l *zap.SugaredLogger, rr review.ReviewRepo, ep kafka.EventProducer) *ReviewHandler {
	return &ReviewHandler{
		Logger:     l,
		ReviewRepo: rr,
		Events:     ep,
	}
}

// Submit handles POST /review
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var input types.SubmitReview
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSON, http.StatusBadRequest, h.Logger)
		return
	}

	if input.ConfirmationID == "" || input.TargetID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}
	if _, ok := review.ParseKind(input.Kind); !ok {
		myErr.SendErrorTo(w, myErr.ErrBadReviewKind, http.StatusBadRequest, h.Logger)
		return
	}
	if input.Score1 < 1 || input.Score1 > 5 || input.Score2 < 1 || input.Score2 > 5 {
		myErr.SendErrorTo(w, myErr.ErrInvalidRating, http.StatusBadRequest, h.Logger)
		return
	}

	created, err := h.ReviewRepo.Submit(r.Context(), userID, input)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.sendEvent(r.Context(), kafka.Event{
		UserID:    userID,
		Type:      kafka.EventTypeReviewSubmitted,
		Timestamp: time.Now().UTC(),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("review created: %s", created.ID)
}

// HasReviewed handles GET /review/check?confirmation_id=
func (h *ReviewHandler) HasReviewed(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	confirmationID := r.URL.Query().Get("confirmation_id")
	if confirmationID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	reviewed, err := h.ReviewRepo.HasReviewed(r.Context(), confirmationID, userID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	response := struct {
		HasReviewed bool `json:"has_reviewed"`
	}{
		HasReviewed: reviewed,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

// GetByUser handles GET /reviews/user/{user_id}
func (h *ReviewHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetID := vars["user_id"]
	if targetID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	reviews, err := h.ReviewRepo.ListByTarget(r.Context(), targetID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	if reviews == nil {
		reviews = []review.Review{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reviews); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

func (h *ReviewHandler) sendEvent(ctx context.Context, event kafka.Event) {
	if h.Events == nil {
		return
	}
	if err := h.Events.SendEvent(ctx, event); err != nil {
		h.Logger.Warnf("failed to send %s event: %v", event.Type, err)
	}
}
