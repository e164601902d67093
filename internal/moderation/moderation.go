package moderation

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Moderator decides whether listing content may be published. Unsafe content
// is a hard rejection, not a retryable condition.
type Moderator interface {
	Check(ctx context.Context, title, description string) (bool, error)
}

// BlocklistModerator rejects content containing any configured term.
// Case-insensitive substring match.
type BlocklistModerator struct {
	Logger *zap.SugaredLogger
	terms  []string
}

func NewBlocklistModerator(logger *zap.SugaredLogger, terms []string) *BlocklistModerator {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}

	return &BlocklistModerator{
		Logger: logger,
		terms:  lowered,
	}
}

func (m *BlocklistModerator) Check(_ context.Context, title, description string) (bool, error) {
	content := strings.ToLower(title + " " + description)
	for _, term := range m.terms {
		if strings.Contains(content, term) {
			m.Logger.Infow("content rejected by moderation", "term", term)
			return false, nil
		}
	}

	return true, nil
}
