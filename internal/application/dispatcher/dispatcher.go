// Package dispatcher fans change events out to subscribers. Services
// dispatch an event after every store write; consumers either register a
// handler or take a channel via Listen and re-derive their views on each
// event.
package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/seatbook/seatbook/internal/domain/event"
)

// Dispatcher routes change events to registered subscribers
type Dispatcher interface {
	// Subscribe registers a handler for an event type
	Subscribe(eventType event.Type, handler Handler)

	// SubscribeNamed registers a handler with a name so it can be removed
	SubscribeNamed(eventType event.Type, name string, handler Handler)

	// Unsubscribe removes a handler by name
	Unsubscribe(eventType event.Type, name string)

	// Dispatch sends the event to all registered handlers synchronously,
	// in registration order; returns the first error encountered
	Dispatch(ctx context.Context, evt *event.Event) error

	// DispatchAsync sends the event to handlers without waiting for them
	DispatchAsync(ctx context.Context, evt *event.Event)

	// Listen returns a channel receiving every event of the given types,
	// plus a cancel function that unsubscribes and closes the channel.
	// Slow listeners drop events rather than block dispatch.
	Listen(types ...event.Type) (<-chan *event.Event, func())

	// Close shuts down the dispatcher and waits for async handlers
	Close() error
}

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type eventDispatcher struct {
	mu       sync.RWMutex
	handlers map[event.Type][]HandlerInfo
	logger   Logger

	listenSeq atomic.Int64

	// For async dispatch
	wg     sync.WaitGroup
	closed atomic.Bool
}

// Option configures the dispatcher
type Option func(*eventDispatcher)

// WithLogger sets a logger for the dispatcher
func WithLogger(logger Logger) Option {
	return func(d *eventDispatcher) {
		d.logger = logger
	}
}

// New creates a new change-event dispatcher
func New(opts ...Option) Dispatcher {
	d := &eventDispatcher{
		handlers: make(map[event.Type][]HandlerInfo),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Subscribe registers a handler with an auto-generated name
func (d *eventDispatcher) Subscribe(eventType event.Type, handler Handler) {
	name := fmt.Sprintf("handler-%d", len(d.handlers[eventType]))
	d.SubscribeNamed(eventType, name, handler)
}

// SubscribeNamed registers a handler with a specific name
func (d *eventDispatcher) SubscribeNamed(eventType event.Type, name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], HandlerInfo{
		Name:      name,
		EventType: eventType,
		Handler:   handler,
	})
}

// Unsubscribe removes a handler by name
func (d *eventDispatcher) Unsubscribe(eventType event.Type, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handlers := d.handlers[eventType]
	filtered := make([]HandlerInfo, 0, len(handlers))
	for _, h := range handlers {
		if h.Name != name {
			filtered = append(filtered, h)
		}
	}
	d.handlers[eventType] = filtered
}

// Dispatch sends the event to all registered handlers synchronously
func (d *eventDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	if evt == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if d.closed.Load() {
		return fmt.Errorf("dispatcher is closed")
	}

	d.mu.RLock()
	handlers := append([]HandlerInfo(nil), d.handlers[evt.Type]...)
	d.mu.RUnlock()

	for _, h := range handlers {
		if err := h.Handler(ctx, evt); err != nil {
			if d.logger != nil {
				d.logger.Error("Event handler failed",
					"event_type", evt.Type,
					"handler_name", h.Name,
					"error", err,
				)
			}
			return fmt.Errorf("handler %s: %w", h.Name, err)
		}
	}

	return nil
}

// DispatchAsync sends the event to handlers without waiting for them
func (d *eventDispatcher) DispatchAsync(ctx context.Context, evt *event.Event) {
	if evt == nil || d.closed.Load() {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.Dispatch(ctx, evt); err != nil && d.logger != nil {
			d.logger.Error("Async dispatch failed", "event_type", evt.Type, "error", err)
		}
	}()
}

// listener owns one Listen channel; the mutex keeps sends and the
// closing cancel from racing
type listener struct {
	mu     sync.Mutex
	closed bool
	ch     chan *event.Event
}

func (l *listener) send(evt *event.Event) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return true
	}
	select {
	case l.ch <- evt:
		return true
	default:
		return false
	}
}

func (l *listener) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
}

// Listen returns a channel of events for the given types and a cancel
// function. Each call creates an independent subscription.
func (d *eventDispatcher) Listen(types ...event.Type) (<-chan *event.Event, func()) {
	l := &listener{ch: make(chan *event.Event, 64)}
	name := fmt.Sprintf("listener-%d", d.listenSeq.Add(1))

	handler := func(ctx context.Context, evt *event.Event) error {
		if !l.send(evt) && d.logger != nil {
			d.logger.Error("Listener buffer full, dropping event",
				"listener", name,
				"event_type", evt.Type,
			)
		}
		return nil
	}

	for _, t := range types {
		d.SubscribeNamed(t, name, handler)
	}

	cancel := func() {
		for _, t := range types {
			d.Unsubscribe(t, name)
		}
		l.close()
	}

	return l.ch, cancel
}

// Close shuts down the dispatcher and waits for async handlers
func (d *eventDispatcher) Close() error {
	d.closed.Store(true)
	d.wg.Wait()
	return nil
}
