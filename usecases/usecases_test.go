package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"rental-server/entities"
	"rental-server/events"
	"rental-server/logging"
	"rental-server/repositories"
)

const (
	agentA = "agent-a"
	agentB = "agent-b"
	admin  = "admin-1"
)

// recordingPublisher keeps every event it is given.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store      *repositories.MemoryStore
	published  *recordingPublisher
	properties *PropertyUseCase
	users      *UserUseCase
}

func newFixture() *fixture {
	store := repositories.NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.AddUser(entities.User{
		ID: agentA, Name: "Alice Agent", Email: "alice@example.com", Phone: "555-0100",
		Company: "Acme Realty", LicenseNumber: "LIC-A", Role: entities.RoleAgent,
		UserType: entities.UserTypeAgent, IsActive: true, CreatedAt: base,
	})
	store.AddUser(entities.User{
		ID: agentB, Name: "Bob Broker", Email: "bob@example.com", Role: entities.RoleAgent,
		UserType: entities.UserTypeAgent, IsActive: true, CreatedAt: base.Add(time.Hour),
	})
	store.AddUser(entities.User{
		ID: admin, Name: "Ada Admin", Email: "ada@example.com", Role: entities.RoleAdmin,
		IsActive: true, CreatedAt: base,
	})

	published := &recordingPublisher{}
	return &fixture{
		store:      store,
		published:  published,
		properties: NewPropertyUseCase(store.Properties(), store.Users(), published, logging.Discard()),
		users:      NewUserUseCase(store.Users(), store.Properties()),
	}
}

func ptr[T any](v T) *T { return &v }

func validInput(title, city string, price float64, bedrooms int) PropertyInput {
	return PropertyInput{
		Title:        ptr(title),
		Description:  ptr("A lovely place"),
		Price:        ptr(price),
		PropertyType: ptr(entities.PropertyTypeApartment),
		Bedrooms:     ptr(bedrooms),
		Bathrooms:    ptr(1),
		Area:         ptr(750.0),
		Location: &LocationInput{
			Address: ptr("1 Main St"),
			City:    ptr(city),
			State:   ptr("IL"),
			ZipCode: ptr("62701"),
		},
	}
}

func (f *fixture) create(caller Caller, in PropertyInput) *entities.Property {
	p, err := f.properties.CreateProperty(context.Background(), caller, in)
	if err != nil {
		panic(err)
	}
	return p
}

var errSinkDown = errors.New("sink down")
