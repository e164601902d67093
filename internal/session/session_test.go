package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	myErr "bicocerto/internal/types/errors"
)

func setupTestRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	logger := zaptest.NewLogger(t).Sugar()
	repo := NewSessionRepository(rdb, logger, "secret", 15*time.Minute)

	return repo, mr
}

func generateJWT(t *testing.T, secret, sessionID, userID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":      "user@example.com",
		"id":         userID,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(10 * time.Minute).Unix(),
		"session_id": sessionID,
	})
	tokenStr, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenStr
}

func TestCreateSession(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	ctx := context.Background()

	sess, token, err := repo.CreateSession(ctx, "user-123", "user@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-123", sess.UserID)

	val, err := mr.Get(sess.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, val)

	// token round-trips back to the same session
	got, err := repo.CheckToken(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
}

func TestCheckToken_Success(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sessionData := Session{
		ID:        "session-1",
		UserID:    "user-id",
		StartTime: time.Now().Add(-5 * time.Minute),
		EndTime:   time.Now().Add(10 * time.Minute),
	}
	data, _ := json.Marshal(sessionData) // nolint:errcheck
	mr.Set("session-1", string(data))    // nolint:errcheck

	tokenStr := generateJWT(t, "secret", sessionData.ID, sessionData.UserID)

	sess, err := repo.CheckToken(context.Background(), tokenStr)
	assert.NoError(t, err)
	assert.Equal(t, "user-id", sess.UserID)
}

func TestCheckToken_BadSignature(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	tokenStr := generateJWT(t, "wrong-secret", "session-1", "user-id")

	_, err := repo.CheckToken(context.Background(), tokenStr)
	assert.ErrorIs(t, err, myErr.ErrNoAuth)
}

func TestCheckToken_SessionGone(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	tokenStr := generateJWT(t, "secret", "missing-session", "user-id")

	_, err := repo.CheckToken(context.Background(), tokenStr)
	assert.ErrorIs(t, err, myErr.ErrSessionNotFound)
}

func TestCheckToken_Expired(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sessionData := Session{
		ID:        "session-1",
		UserID:    "user-id",
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(-time.Minute),
	}
	data, _ := json.Marshal(sessionData) // nolint:errcheck
	mr.Set("session-1", string(data))    // nolint:errcheck

	tokenStr := generateJWT(t, "secret", sessionData.ID, sessionData.UserID)

	_, err := repo.CheckToken(context.Background(), tokenStr)
	assert.ErrorIs(t, err, myErr.ErrSessionIsExpired)
}

func TestExtendSession(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	end := time.Now().Add(time.Minute)
	sessionData := Session{
		ID:        "session-1",
		UserID:    "user-id",
		StartTime: time.Now().Add(-5 * time.Minute),
		EndTime:   end,
	}
	data, _ := json.Marshal(sessionData) // nolint:errcheck
	mr.Set("session-1", string(data))    // nolint:errcheck

	err := repo.ExtendSession(context.Background(), "session-1")
	assert.NoError(t, err)

	raw, err := mr.Get("session-1")
	assert.NoError(t, err)

	var updated Session
	assert.NoError(t, json.Unmarshal([]byte(raw), &updated))
	assert.True(t, updated.EndTime.After(end))
}
