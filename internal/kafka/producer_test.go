package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// fakeWriter implements WriterInterface and remembers every message it got.
type fakeWriter struct {
	lastMessages []kafka.Message
	returnError  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.lastMessages = append(f.lastMessages, msgs...)
	return f.returnError
}

func (f *fakeWriter) Close() error {
	return nil
}

func zapTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	logger, err := zap.NewDevelopmentConfig().Build(zap.AddCallerSkip(1))
	if err != nil {
		t.Fatalf("failed to build zap logger: %v", err)
	}
	return logger.Sugar()
}

func TestProducer_SendEvent_Success(t *testing.T) {
	logger := zapTestLogger(t)
	defer func() { _ = logger.Sync() }()

	fw := &fakeWriter{returnError: nil}
	p := &Producer{
		Writer: fw,
		Logger: logger,
	}

	ctx := context.Background()
	evt := Event{
		UserID:    "user1",
		Type:      EventTypeListingPublished,
		ListingID: "lst-1",
		Areas:     []int{1, 2},
		Timestamp: time.Now().UTC(),
	}

	if err := p.SendEvent(ctx, evt); err != nil {
		t.Fatalf("expected SendEvent to succeed, got: %v", err)
	}

	if len(fw.lastMessages) != 1 {
		t.Fatalf("expected 1 written message, got %d", len(fw.lastMessages))
	}

	// The key partitions the topic per listing.
	if string(fw.lastMessages[0].Key) != evt.ListingID {
		t.Errorf("expected key %q, got %q", evt.ListingID, string(fw.lastMessages[0].Key))
	}

	var decoded Event
	if err := json.Unmarshal(fw.lastMessages[0].Value, &decoded); err != nil {
		t.Fatalf("failed to parse written message as JSON: %v", err)
	}
	if decoded.UserID != evt.UserID {
		t.Errorf("decoded UserID mismatch: expected %q, got %q", evt.UserID, decoded.UserID)
	}
	if decoded.Type != evt.Type {
		t.Errorf("decoded Type mismatch: expected %q, got %q", evt.Type, decoded.Type)
	}
	if decoded.ListingID != evt.ListingID {
		t.Errorf("decoded ListingID mismatch: expected %q, got %q", evt.ListingID, decoded.ListingID)
	}
}

func TestProducer_SendEvent_WriterError(t *testing.T) {
	logger := zapTestLogger(t)
	defer func() { _ = logger.Sync() }()

	wantErr := errors.New("broker unavailable")
	fw := &fakeWriter{returnError: wantErr}
	p := &Producer{
		Writer: fw,
		Logger: logger,
	}

	err := p.SendEvent(context.Background(), Event{Type: EventTypeSearch})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected writer error to propagate, got: %v", err)
	}
}
