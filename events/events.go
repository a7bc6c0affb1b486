// Package events fans listing changes out to realtime and messaging sinks.
package events

import (
	"context"
	"errors"
	"time"

	"rental-server/entities"
)

const (
	PropertyCreated = "property.created"
	PropertyUpdated = "property.updated"
	PropertyDeleted = "property.deleted"
)

// Event describes a listing change. Property is nil for deletions.
type Event struct {
	Type       string             `json:"type"`
	PropertyID string             `json:"propertyId"`
	AgentID    string             `json:"agentId"`
	At         time.Time          `json:"at"`
	Property   *entities.Property `json:"property,omitempty"`
}

func NewPropertyEvent(eventType string, p *entities.Property) Event {
	e := Event{
		Type:       eventType,
		PropertyID: p.ID,
		AgentID:    p.AgentID,
		At:         time.Now().UTC(),
	}
	if eventType != PropertyDeleted {
		e.Property = p
	}
	return e
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi publishes to every sink and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
