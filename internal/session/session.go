package session

import (
	"context"
	"time"
)

// Session - an authenticated identity window backed by Redis and carried to
// the client as a JWT.
type Session struct {
	ID        string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
}

//go:generate mockgen -source=session.go -destination=../mocks/mock_session.go -package=mocks
type SessionRepo interface {
	// CreateSession stores a new session in Redis and returns it together
	// with the signed JWT for the client.
	CreateSession(ctx context.Context, userID string, email string) (*Session, string, error)
	// CheckToken verifies a bearer token and resolves its live session.
	CheckToken(ctx context.Context, token string) (*Session, error)
	// ExtendSession pushes the session end time forward for active users.
	ExtendSession(ctx context.Context, sessionID string) error
}
