package service

import (
	"context"
	"sync"

	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/domain/event"
)

// mockTxManager runs the function directly without a real transaction
type mockTxManager struct{}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mockDispatcher records dispatched events for assertions
type mockDispatcher struct {
	mu     sync.Mutex
	events []*event.Event
}

func (m *mockDispatcher) Subscribe(eventType event.Type, handler dispatcher.Handler) {}

func (m *mockDispatcher) SubscribeNamed(eventType event.Type, name string, handler dispatcher.Handler) {
}

func (m *mockDispatcher) Unsubscribe(eventType event.Type, name string) {}

func (m *mockDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
	return nil
}

func (m *mockDispatcher) DispatchAsync(ctx context.Context, evt *event.Event) {
	m.Dispatch(ctx, evt)
}

func (m *mockDispatcher) Listen(types ...event.Type) (<-chan *event.Event, func()) {
	ch := make(chan *event.Event)
	close(ch)
	return ch, func() {}
}

func (m *mockDispatcher) Close() error { return nil }

func (m *mockDispatcher) dispatched() []*event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*event.Event, len(m.events))
	copy(out, m.events)
	return out
}

// noopLogger discards all log output
type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
