package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Category sentinels. Every error returned by a repository wraps exactly one
// of these, so handlers classify with errors.Is and never see raw driver errors.
var (
	ErrValidation  = errors.New("validation error")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("storage unavailable")
)

var (
	ErrDBInternal = fmt.Errorf("%w: database internal error", ErrUnavailable)

	ErrEmptyTitle       = fmt.Errorf("%w: title is required", ErrValidation)
	ErrEmptyDescription = fmt.Errorf("%w: description is required", ErrValidation)
	ErrMissingArea      = fmt.Errorf("%w: area is required", ErrValidation)
	ErrMissingService   = fmt.Errorf("%w: service is required", ErrValidation)
	ErrBadKind          = fmt.Errorf("%w: unknown listing kind", ErrValidation)
	ErrBadReviewKind    = fmt.Errorf("%w: unknown review kind", ErrValidation)
	ErrInvalidRating    = fmt.Errorf("%w: the rating should be from 1 to 5", ErrValidation)
	ErrUnsafeContent    = fmt.Errorf("%w: content rejected by moderation", ErrValidation)
	ErrBadID            = fmt.Errorf("%w: bad id", ErrValidation)
	ErrBadRadius        = fmt.Errorf("%w: radius requires lat and lng", ErrValidation)
	ErrBadRegion        = fmt.Errorf("%w: region requires center and positive radius", ErrValidation)
	ErrInvalidJSON      = fmt.Errorf("%w: invalid JSON payload", ErrValidation)

	ErrNotOwner       = fmt.Errorf("%w: only the listing owner may do this", ErrForbidden)
	ErrNotParticipant = fmt.Errorf("%w: not a party of this confirmation", ErrForbidden)
	ErrBadTarget      = fmt.Errorf("%w: target is not the counterpart", ErrForbidden)
	ErrNoAuth         = fmt.Errorf("%w: authorization required", ErrForbidden)

	ErrListingClosed    = fmt.Errorf("%w: listing is closed", ErrConflict)
	ErrOwnListing       = fmt.Errorf("%w: cannot apply to own listing", ErrConflict)
	ErrAlreadyApplied   = fmt.Errorf("%w: already applied to this listing", ErrConflict)
	ErrAlreadyConfirmed = fmt.Errorf("%w: listing already has a confirmation", ErrConflict)
	ErrAlreadyReviewed  = fmt.Errorf("%w: already reviewed this confirmation", ErrConflict)
	ErrAlreadyExists    = fmt.Errorf("%w: record already exists", ErrConflict)

	ErrBadPassword      = errors.New("bad password")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsExpired = errors.New("session is expired")
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Repositories use it to translate a racing duplicate insert
// into the matching conflict sentinel.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// StatusFor maps an error category to the HTTP status handlers respond with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}
