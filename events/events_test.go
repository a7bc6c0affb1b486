package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"rental-server/entities"

	amqp "github.com/rabbitmq/amqp091-go"
)

type stubPublisher struct {
	calls int
	err   error
}

func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestNewPropertyEvent(t *testing.T) {
	p := &entities.Property{ID: "p1", AgentID: "a1", Title: "Loft"}

	created := NewPropertyEvent(PropertyCreated, p)
	if created.PropertyID != "p1" || created.AgentID != "a1" || created.Property != p {
		t.Errorf("unexpected created event %+v", created)
	}
	if created.At.IsZero() {
		t.Errorf("expected timestamp")
	}

	deleted := NewPropertyEvent(PropertyDeleted, p)
	if deleted.Property != nil {
		t.Errorf("deleted events must not carry the listing")
	}
}

func TestMultiPublishesToEverySink(t *testing.T) {
	first := &stubPublisher{err: errors.New("first down")}
	second := &stubPublisher{}
	multi := Multi{first, second, Nop{}}

	err := multi.Publish(context.Background(), Event{Type: PropertyUpdated})
	if err == nil || err.Error() != "first down" {
		t.Errorf("expected joined error, got %v", err)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("every sink should be called once, got %d and %d", first.calls, second.calls)
	}

	if err := (Multi{}).Publish(context.Background(), Event{}); err != nil {
		t.Errorf("empty fan-out should succeed, got %v", err)
	}
}

func TestPublishingMessage(t *testing.T) {
	e := NewPropertyEvent(PropertyCreated, &entities.Property{ID: "p1", AgentID: "a1"})

	msg, err := publishing(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ContentType != "application/json" || msg.DeliveryMode != amqp.Persistent || msg.Type != PropertyCreated {
		t.Errorf("unexpected message headers %+v", msg)
	}

	var decoded Event
	if err := json.Unmarshal(msg.Body, &decoded); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if decoded.PropertyID != "p1" || decoded.Type != PropertyCreated {
		t.Errorf("unexpected body %+v", decoded)
	}
}
