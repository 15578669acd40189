// Package pubsub provides a typed publish/subscribe broker used to move
// editor transactions, database notifications and log lines into the
// Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	// DocChanged is published when a transaction changed document content.
	DocChanged EventType = "doc_changed"
	// SelectionChanged is published when only the selection moved.
	SelectionChanged EventType = "selection_changed"
	// DocSaved is published after a document was persisted.
	DocSaved EventType = "doc_saved"
	// DBChanged is published when the database file changed on disk.
	DBChanged EventType = "db_changed"
	// LogWritten is published for every log line.
	LogWritten EventType = "log_written"
)

// Event wraps a payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes typed payloads.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
