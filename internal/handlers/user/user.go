package user

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"bicocerto/internal/contextutil"
	"bicocerto/internal/session"
	myErr "bicocerto/internal/types/errors"
	types "bicocerto/internal/types/user"
	"bicocerto/internal/user"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type UserHandler struct {
	Logger         *zap.SugaredLogger
	UserRepository user.UserRepo
	SessionManager session.SessionRepo
}

func NewUserHandler(l *zap.SugaredLogger, ur user.UserRepo, sr session.SessionRepo) *UserHandler {
	return &UserHandler{
		Logger:         l,
		UserRepository: ur,
		SessionManager: sr,
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form types.CreateUser
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSON, http.StatusBadRequest, h.Logger)
		return
	}

	if _, err := mail.ParseAddress(form.Email); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepository.CreateUser(r.Context(), form)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	sess, token, err := h.SessionManager.CreateSession(r.Context(), u.ID, u.Email)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(tokenResponse{Token: token}); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("created session for %v", sess.ID)
}

type RequestLoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form RequestLoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSON, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepository.CheckUser(r.Context(), form.Email, form.Password)
	if err != nil {
		if err == myErr.ErrBadPassword {
			myErr.SendErrorTo(w, err, http.StatusUnauthorized, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	sess, token, err := h.SessionManager.CreateSession(r.Context(), u.ID, u.Email)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(tokenResponse{Token: token}); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("created session for %v", sess.ID)
}

func (h *UserHandler) Info(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if _, err := uuid.Parse(id); err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	userInfo, err := h.UserRepository.Info(r.Context(), id)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userInfo); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("get info by user: %s", id)
}

// UpdateRegion handles PUT /user/region. Coordinates arrive already resolved
// by the external geocoder.
func (h *UserHandler) UpdateRegion(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var form types.ChangeRegion
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSON, http.StatusBadRequest, h.Logger)
		return
	}

	if form.RadiusKm <= 0 {
		myErr.SendErrorTo(w, myErr.ErrBadRegion, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepository.UpdateRegion(r.Context(), userID, form)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(u); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("region updated for user: %s", userID)
}
