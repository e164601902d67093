package favorite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bicocerto/internal/favorite"
	"bicocerto/internal/middleware"
	"bicocerto/internal/mocks"
	myErr "bicocerto/internal/types/errors"
)

func authed(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

func TestFavoriteHandler_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFavoriteRepo(ctrl)
	handler := NewFavoriteHandler(zap.NewNop().Sugar(), mockRepo)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().
			Add(gomock.Any(), "user-1", "lst-1").
			Return(nil)

		req := authed(httptest.NewRequest(http.MethodPost, "/favorite/lst-1", nil), "user-1")
		req = mux.SetURLVars(req, map[string]string{"listingID": "lst-1"})
		rr := httptest.NewRecorder()
		handler.Add(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("no_auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/favorite/lst-1", nil)
		req = mux.SetURLVars(req, map[string]string{"listingID": "lst-1"})
		rr := httptest.NewRecorder()
		handler.Add(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown_listing", func(t *testing.T) {
		mockRepo.EXPECT().
			Add(gomock.Any(), "user-1", "ghost").
			Return(myErr.ErrNotFound)

		req := authed(httptest.NewRequest(http.MethodPost, "/favorite/ghost", nil), "user-1")
		req = mux.SetURLVars(req, map[string]string{"listingID": "ghost"})
		rr := httptest.NewRecorder()
		handler.Add(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestFavoriteHandler_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFavoriteRepo(ctrl)
	handler := NewFavoriteHandler(zap.NewNop().Sugar(), mockRepo)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().
			Remove(gomock.Any(), "user-1", "lst-1").
			Return(nil)

		req := authed(httptest.NewRequest(http.MethodDelete, "/favorite/lst-1", nil), "user-1")
		req = mux.SetURLVars(req, map[string]string{"listingID": "lst-1"})
		rr := httptest.NewRecorder()
		handler.Remove(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not_saved", func(t *testing.T) {
		mockRepo.EXPECT().
			Remove(gomock.Any(), "user-1", "lst-9").
			Return(myErr.ErrNotFound)

		req := authed(httptest.NewRequest(http.MethodDelete, "/favorite/lst-9", nil), "user-1")
		req = mux.SetURLVars(req, map[string]string{"listingID": "lst-9"})
		rr := httptest.NewRecorder()
		handler.Remove(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestFavoriteHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockFavoriteRepo(ctrl)
	handler := NewFavoriteHandler(zap.NewNop().Sugar(), mockRepo)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().
			ListByUser(gomock.Any(), "user-1").
			Return([]favorite.Favorite{
				{ListingID: "lst-1", Title: "Pintura residencial", Kind: "offer", Status: "open"},
				{ListingID: "lst-2", Title: "Aulas de violao", Kind: "service", Status: "closed"},
			}, nil)

		req := authed(httptest.NewRequest(http.MethodGet, "/favorites", nil), "user-1")
		rr := httptest.NewRecorder()
		handler.List(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []favorite.Favorite
		err := json.NewDecoder(rr.Body).Decode(&got)
		assert.Equal(t, err, nil)
		assert.Equal(t, 2, len(got))
		assert.Equal(t, "lst-1", got[0].ListingID)
	})

	t.Run("empty", func(t *testing.T) {
		mockRepo.EXPECT().
			ListByUser(gomock.Any(), "user-1").
			Return(nil, nil)

		req := authed(httptest.NewRequest(http.MethodGet, "/favorites", nil), "user-1")
		rr := httptest.NewRecorder()
		handler.List(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})

	t.Run("no_auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		rr := httptest.NewRecorder()
		handler.List(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
