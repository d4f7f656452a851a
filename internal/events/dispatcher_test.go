package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/league-service/internal/domain"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var got []Event
	d.Subscribe(EventAttendanceMarked, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	event := Event{
		ID:        "e1",
		Type:      EventAttendanceMarked,
		Actor:     Actor{UserID: "u1", Role: domain.RoleAvenger},
		Timestamp: time.Now(),
	}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("handler saw %v, want one event e1", got)
	}

	// Events of other types do not reach the handler.
	if err := d.Publish(context.Background(), Event{ID: "e2", Type: EventUserRegistered}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("handler invoked %d times, want 1", len(got))
	}
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var secondCalled bool
	d.Subscribe(EventPaymentSent, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventPaymentSent, func(ctx context.Context, e Event) error {
		secondCalled = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{ID: "e1", Type: EventPaymentSent}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if !secondCalled {
		t.Error("handler after a failing one was not invoked")
	}
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Subscribe(EventUserRegistered, func(ctx context.Context, e Event) error { return nil })
		}()
		go func() {
			defer wg.Done()
			_ = d.Publish(context.Background(), Event{Type: EventUserRegistered})
		}()
	}
	wg.Wait()
}
