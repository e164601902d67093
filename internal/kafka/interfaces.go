package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// ReaderInterface abstracts the Kafka reader for tests.
type ReaderInterface interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// WriterInterface abstracts the Kafka writer for tests.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type EventProducer interface {
	SendEvent(ctx context.Context, event Event) error
	Close() error
}

type EventConsumer interface {
	Consume(ctx context.Context, handler func(context.Context, Event) error)
	Close() error
}
