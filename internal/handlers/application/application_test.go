package application

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bicocerto/internal/application"
	"bicocerto/internal/middleware"
	"bicocerto/internal/mocks"
	myErr "bicocerto/internal/types/errors"
)

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

func TestApplicationHandler_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockApplicationRepo(ctrl)
	handler := NewApplicationHandler(zap.NewNop().Sugar(), mockRepo)

	tests := []struct {
		name           string
		userID         string
		mockBehavior   func()
		expectedStatus int
	}{
		{
			name:   "Success",
			userID: "user-2",
			mockBehavior: func() {
				mockRepo.EXPECT().
					Apply(gomock.Any(), "lst-1", "user-2").
					Return(&application.Application{ID: "app-1", ListingID: "lst-1", ApplicantID: "user-2"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "No Auth",
			userID:         "",
			mockBehavior:   func() {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Own Listing",
			userID: "owner-1",
			mockBehavior: func() {
				mockRepo.EXPECT().
					Apply(gomock.Any(), "lst-1", "owner-1").
					Return(nil, myErr.ErrOwnListing)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Already Applied",
			userID: "user-2",
			mockBehavior: func() {
				mockRepo.EXPECT().
					Apply(gomock.Any(), "lst-1", "user-2").
					Return(nil, myErr.ErrAlreadyApplied)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Listing Closed",
			userID: "user-2",
			mockBehavior: func() {
				mockRepo.EXPECT().
					Apply(gomock.Any(), "lst-1", "user-2").
					Return(nil, myErr.ErrListingClosed)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Listing Not Found",
			userID: "user-2",
			mockBehavior: func() {
				mockRepo.EXPECT().
					Apply(gomock.Any(), "lst-1", "user-2").
					Return(nil, myErr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			req := httptest.NewRequest(http.MethodPost, "/listing/lst-1/apply", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "lst-1"})
			if tt.userID != "" {
				req = authed(req, tt.userID)
			}

			rr := httptest.NewRecorder()
			handler.Apply(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestApplicationHandler_ListApplicants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockApplicationRepo(ctrl)
	handler := NewApplicationHandler(zap.NewNop().Sugar(), mockRepo)

	t.Run("owner_gets_list", func(t *testing.T) {
		mockRepo.EXPECT().
			ListByListing(gomock.Any(), "lst-1", "owner-1").
			Return([]application.Application{{ID: "app-1", ApplicantName: "Bruno"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/listing/lst-1/applications", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "lst-1"})
		req = authed(req, "owner-1")

		rr := httptest.NewRecorder()
		handler.ListApplicants(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []application.Application
		err := json.NewDecoder(rr.Body).Decode(&got)
		assert.Equal(t, nil, err)
		assert.Equal(t, 1, len(got))
	})

	t.Run("stranger_is_forbidden", func(t *testing.T) {
		mockRepo.EXPECT().
			ListByListing(gomock.Any(), "lst-1", "stranger").
			Return(nil, myErr.ErrNotOwner)

		req := httptest.NewRequest(http.MethodGet, "/listing/lst-1/applications", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "lst-1"})
		req = authed(req, "stranger")

		rr := httptest.NewRecorder()
		handler.ListApplicants(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestApplicationHandler_ListMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockApplicationRepo(ctrl)
	handler := NewApplicationHandler(zap.NewNop().Sugar(), mockRepo)

	t.Run("empty_list_is_ok", func(t *testing.T) {
		mockRepo.EXPECT().
			ListByApplicant(gomock.Any(), "user-2").
			Return(nil, nil)

		req := authed(httptest.NewRequest(http.MethodGet, "/applications/mine", nil), "user-2")
		rr := httptest.NewRecorder()
		handler.ListMine(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})

	t.Run("no_auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/applications/mine", nil)
		rr := httptest.NewRecorder()
		handler.ListMine(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
