package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/event"
)

func TestDispatch_OrderAndError(t *testing.T) {
	d := New()

	var order []string
	d.SubscribeNamed(event.TypeBookingCreated, "first", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "first")
		return nil
	})
	d.SubscribeNamed(event.TypeBookingCreated, "second", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "second")
		return errors.New("boom")
	})
	d.SubscribeNamed(event.TypeBookingCreated, "third", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "third")
		return nil
	})

	evt := event.New(event.TypeBookingCreated, entity.KindBooking, "bk-1", "emp-a", nil)
	err := d.Dispatch(context.Background(), evt)
	if err == nil {
		t.Fatal("Dispatch() error = nil, want handler error")
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handler order = %v, want [first second] (stop on first error)", order)
	}
}

func TestDispatch_TypeIsolation(t *testing.T) {
	d := New()

	called := false
	d.Subscribe(event.TypeTaskUpdated, func(ctx context.Context, evt *event.Event) error {
		called = true
		return nil
	})

	evt := event.New(event.TypeBookingCreated, entity.KindBooking, "bk-1", "emp-a", nil)
	if err := d.Dispatch(context.Background(), evt); err != nil {
		t.Fatalf("Dispatch() unexpected error: %v", err)
	}
	if called {
		t.Error("handler for other event type was called")
	}
}

func TestUnsubscribe(t *testing.T) {
	d := New()

	calls := 0
	d.SubscribeNamed(event.TypeIncidentUpdated, "counter", func(ctx context.Context, evt *event.Event) error {
		calls++
		return nil
	})

	evt := event.New(event.TypeIncidentUpdated, entity.KindIncident, "inc-1", "adm-1", nil)
	_ = d.Dispatch(context.Background(), evt)
	d.Unsubscribe(event.TypeIncidentUpdated, "counter")
	_ = d.Dispatch(context.Background(), evt)

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestListen(t *testing.T) {
	d := New()

	ch, cancel := d.Listen(event.TypeBookingCreated, event.TypeBookingDecided)
	defer cancel()

	created := event.New(event.TypeBookingCreated, entity.KindBooking, "bk-1", "emp-a", nil)
	decided := event.New(event.TypeBookingDecided, entity.KindBooking, "bk-1", "adm-1",
		map[string]interface{}{"status": entity.BookingStatusApproved})
	other := event.New(event.TypeTaskCreated, entity.KindTask, "tk-1", "adm-1", nil)

	for _, evt := range []*event.Event{created, other, decided} {
		if err := d.Dispatch(context.Background(), evt); err != nil {
			t.Fatalf("Dispatch() unexpected error: %v", err)
		}
	}

	got := []*event.Event{<-ch, <-ch}
	if got[0].Type != event.TypeBookingCreated || got[1].Type != event.TypeBookingDecided {
		t.Errorf("Listen delivered %v then %v, want booking.created then booking.decided", got[0].Type, got[1].Type)
	}
	if got[1].GetPayloadString("status") != entity.BookingStatusApproved {
		t.Errorf("payload status = %q, want approved", got[1].GetPayloadString("status"))
	}
}

func TestListen_Cancel(t *testing.T) {
	d := New()

	ch, cancel := d.Listen(event.TypeTimesheetOpened)
	cancel()

	// After cancel the channel is closed and delivery has stopped
	evt := event.New(event.TypeTimesheetOpened, entity.KindTimesheet, "ts-1", "emp-a", nil)
	if err := d.Dispatch(context.Background(), evt); err != nil {
		t.Fatalf("Dispatch() after cancel unexpected error: %v", err)
	}

	select {
	case _, open := <-ch:
		if open {
			t.Error("received event after cancel")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("channel not closed after cancel")
	}

	// Cancel is safe to call twice
	cancel()
}

func TestDispatchAsync_Close(t *testing.T) {
	d := New()

	done := make(chan struct{})
	d.Subscribe(event.TypeTaskCreated, func(ctx context.Context, evt *event.Event) error {
		close(done)
		return nil
	})

	evt := event.New(event.TypeTaskCreated, entity.KindTask, "tk-1", "adm-1", nil)
	d.DispatchAsync(context.Background(), evt)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async handler never ran")
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if err := d.Dispatch(context.Background(), evt); err == nil {
		t.Error("Dispatch() after Close() = nil, want error")
	}
}
