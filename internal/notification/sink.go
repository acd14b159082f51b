package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/domain/event"
)

// Sink writes every change event to the activity log. It subscribes to
// all event types and never returns an error, so it cannot stop other
// handlers in the chain.
type Sink struct {
	logger *zap.Logger
}

// NewSink creates a new activity log sink
func NewSink(logger *zap.Logger) *Sink {
	return &Sink{logger: logger}
}

// Attach subscribes the sink to every known event type
func (s *Sink) Attach(d dispatcher.Dispatcher) {
	for _, t := range event.All() {
		d.SubscribeNamed(t, "activity-log", s.handle)
	}
}

func (s *Sink) handle(_ context.Context, evt *event.Event) error {
	fields := []zap.Field{
		zap.String("event_id", evt.ID),
		zap.String("type", string(evt.Type)),
		zap.String("kind", string(evt.Kind)),
		zap.String("entity_id", evt.EntityID),
		zap.String("actor_id", evt.ActorID),
		zap.Time("timestamp", evt.Timestamp),
	}
	if status := evt.GetPayloadString("status"); status != "" {
		fields = append(fields, zap.String("status", status))
	}
	s.logger.Info("Change event", fields...)
	return nil
}
