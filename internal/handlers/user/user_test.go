package user

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bicocerto/internal/middleware"
	"bicocerto/internal/mocks"
	"bicocerto/internal/session"
	myErr "bicocerto/internal/types/errors"
	types "bicocerto/internal/types/user"
	"bicocerto/internal/user"
)

const invalidJSON = "Invalid JSON"

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

func TestUserHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepo(ctrl)
	mockSessions := mocks.NewMockSessionRepo(ctrl)
	handler := NewUserHandler(zap.NewNop().Sugar(), mockUsers, mockSessions)

	tests := []struct {
		name           string
		input          types.CreateUser
		mockBehavior   func(f types.CreateUser)
		expectedStatus int
	}{
		{
			name: "Success",
			input: types.CreateUser{
				Name:     "Joao",
				Email:    "joao@example.com",
				Password: "strong-password",
			},
			mockBehavior: func(f types.CreateUser) {
				mockUsers.EXPECT().
					CreateUser(gomock.Any(), f).
					Return(&user.User{ID: "user-1", Email: f.Email}, nil)
				mockSessions.EXPECT().
					CreateSession(gomock.Any(), "user-1", f.Email).
					Return(&session.Session{ID: "sess-1", UserID: "user-1"}, "signed.jwt.token", nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Invalid Email",
			input: types.CreateUser{
				Name:     "Joao",
				Email:    "not-an-email",
				Password: "strong-password",
			},
			mockBehavior:   func(f types.CreateUser) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Already Registered",
			input: types.CreateUser{
				Name:     "Joao",
				Email:    "joao@example.com",
				Password: "strong-password",
			},
			mockBehavior: func(f types.CreateUser) {
				mockUsers.EXPECT().
					CreateUser(gomock.Any(), f).
					Return(nil, myErr.ErrAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           invalidJSON,
			mockBehavior:   func(f types.CreateUser) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior(tt.input)

			var body io.Reader
			if tt.name == invalidJSON {
				body = strings.NewReader("{invalid-json}")
			} else {
				bodyBytes, _ := json.Marshal(tt.input) // nolint:errcheck
				body = bytes.NewReader(bodyBytes)
			}

			req := httptest.NewRequest(http.MethodPost, "/user/register", body)
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()
			handler.Register(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusCreated {
				var resp map[string]string
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.Equal(t, err, nil)
				assert.Equal(t, "signed.jwt.token", resp["token"])
			}
		})
	}
}

func TestUserHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepo(ctrl)
	mockSessions := mocks.NewMockSessionRepo(ctrl)
	handler := NewUserHandler(zap.NewNop().Sugar(), mockUsers, mockSessions)

	tests := []struct {
		name           string
		email          string
		password       string
		mockBehavior   func(email, password string)
		expectedStatus int
	}{
		{
			name:     "Success",
			email:    "joao@example.com",
			password: "strong-password",
			mockBehavior: func(email, password string) {
				mockUsers.EXPECT().
					CheckUser(gomock.Any(), email, password).
					Return(&user.User{ID: "user-1", Email: email}, nil)
				mockSessions.EXPECT().
					CreateSession(gomock.Any(), "user-1", email).
					Return(&session.Session{ID: "sess-1", UserID: "user-1"}, "signed.jwt.token", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "Wrong Password",
			email:    "joao@example.com",
			password: "oops",
			mockBehavior: func(email, password string) {
				mockUsers.EXPECT().
					CheckUser(gomock.Any(), email, password).
					Return(nil, myErr.ErrBadPassword)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:     "Unknown User",
			email:    "ghost@example.com",
			password: "whatever",
			mockBehavior: func(email, password string) {
				mockUsers.EXPECT().
					CheckUser(gomock.Any(), email, password).
					Return(nil, myErr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           invalidJSON,
			mockBehavior:   func(email, password string) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior(tt.email, tt.password)

			var body io.Reader
			if tt.name == invalidJSON {
				body = strings.NewReader("{invalid-json}")
			} else {
				bodyBytes, _ := json.Marshal(RequestLoginForm{Email: tt.email, Password: tt.password}) // nolint:errcheck
				body = bytes.NewReader(bodyBytes)
			}

			req := httptest.NewRequest(http.MethodPost, "/user/login", body)
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()
			handler.Login(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestUserHandler_Info(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepo(ctrl)
	handler := NewUserHandler(zap.NewNop().Sugar(), mockUsers, nil)

	const validID = "a3bb189e-8bf9-3888-9912-ace4e6543002"

	t.Run("success", func(t *testing.T) {
		mockUsers.EXPECT().
			Info(gomock.Any(), validID).
			Return(&user.User{ID: validID, Name: "Joao", Rating: 4.5, RatingCount: 2}, nil)

		req := httptest.NewRequest(http.MethodGet, "/user/"+validID, nil)
		req = mux.SetURLVars(req, map[string]string{"id": validID})
		rr := httptest.NewRecorder()
		handler.Info(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got user.User
		err := json.NewDecoder(rr.Body).Decode(&got)
		assert.Equal(t, err, nil)
		assert.Equal(t, "Joao", got.Name)
		assert.Equal(t, 4.5, got.Rating)
	})

	t.Run("not_a_uuid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/42", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "42"})
		rr := httptest.NewRecorder()
		handler.Info(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		mockUsers.EXPECT().
			Info(gomock.Any(), validID).
			Return(nil, myErr.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/user/"+validID, nil)
		req = mux.SetURLVars(req, map[string]string{"id": validID})
		rr := httptest.NewRecorder()
		handler.Info(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUserHandler_UpdateRegion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepo(ctrl)
	handler := NewUserHandler(zap.NewNop().Sugar(), mockUsers, nil)

	t.Run("success", func(t *testing.T) {
		form := types.ChangeRegion{Lat: -23.55, Lng: -46.63, RadiusKm: 10}
		lat, lng, radius := form.Lat, form.Lng, form.RadiusKm
		mockUsers.EXPECT().
			UpdateRegion(gomock.Any(), "user-1", form).
			Return(&user.User{ID: "user-1", RegionLat: &lat, RegionLng: &lng, RegionRadiusKm: &radius}, nil)

		bodyBytes, _ := json.Marshal(form) // nolint:errcheck
		req := authed(httptest.NewRequest(http.MethodPut, "/user/region", bytes.NewReader(bodyBytes)), "user-1")
		rr := httptest.NewRecorder()
		handler.UpdateRegion(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("no_auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/user/region", strings.NewReader(`{"lat":1,"lng":1,"radius_km":5}`))
		rr := httptest.NewRecorder()
		handler.UpdateRegion(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non_positive_radius", func(t *testing.T) {
		req := authed(httptest.NewRequest(http.MethodPut, "/user/region", strings.NewReader(`{"lat":1,"lng":1,"radius_km":0}`)), "user-1")
		rr := httptest.NewRecorder()
		handler.UpdateRegion(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
