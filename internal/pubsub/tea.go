package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and returns it as a tea.Msg.
// It returns nil when ctx is done or ch is closed, which ends the listen loop.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}

// Listener keeps one subscription open across Update calls.
// Re-issue Listen after handling each event to keep receiving.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to src for the lifetime of ctx.
func NewListener[T any](ctx context.Context, src Subscriber[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: src.Subscribe(ctx)}
}

// Listen returns a command that yields the next event.
func (l *Listener[T]) Listen() tea.Cmd {
	if l == nil {
		return nil
	}
	return ListenCmd(l.ctx, l.ch)
}
