package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEventAsMsg(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(DBChanged, "inkwell.db")

	msg := ListenCmd(ctx, ch)()
	ev, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, "inkwell.db", ev.Payload)
	require.Equal(t, DBChanged, ev.Type)
}

func TestListenCmd_NilOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan Event[string])
	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_NilOnClosedChannel(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)
	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestListener_KeepsReceiving(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener[int](ctx, broker)
	broker.Publish(DocChanged, 1)
	broker.Publish(DocChanged, 2)

	first := l.Listen()().(Event[int])
	second := l.Listen()().(Event[int])
	require.Equal(t, 1, first.Payload)
	require.Equal(t, 2, second.Payload)
}

func TestListener_NilSafe(t *testing.T) {
	var l *Listener[string]
	require.Nil(t, l.Listen())
}
