package usecases

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"rental-server/apperrors"
	"rental-server/entities"
	"rental-server/events"
	"rental-server/query"
	"rental-server/repositories"
)

type LocationInput struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
}

// PropertyInput is a create or partial-update request. Nil fields are left
// untouched. The owner is never taken from the request.
type PropertyInput struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Price        *float64          `json:"price"`
	PropertyType *string           `json:"propertyType"`
	Bedrooms     *int              `json:"bedrooms"`
	Bathrooms    *int              `json:"bathrooms"`
	Area         *float64          `json:"area"`
	Location     *LocationInput    `json:"location"`
	Amenities    *[]string         `json:"amenities"`
	Images       *[]entities.Image `json:"images"`
	IsAvailable  *bool             `json:"isAvailable"`
}

// missingNumbers lists required numeric fields absent from a create request.
// String fields are covered by the entity's own validation.
func (in PropertyInput) missingNumbers() []string {
	var msgs []string
	if in.Price == nil {
		msgs = append(msgs, "Please add a price")
	}
	if in.Bedrooms == nil {
		msgs = append(msgs, "Please add number of bedrooms")
	}
	if in.Bathrooms == nil {
		msgs = append(msgs, "Please add number of bathrooms")
	}
	if in.Area == nil {
		msgs = append(msgs, "Please add area in sq ft")
	}
	return msgs
}

func (in PropertyInput) apply(p *entities.Property) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.PropertyType != nil {
		p.PropertyType = *in.PropertyType
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
	}
	if in.Area != nil {
		p.Area = *in.Area
	}
	if loc := in.Location; loc != nil {
		if loc.Address != nil {
			p.Location.Address = *loc.Address
		}
		if loc.City != nil {
			p.Location.City = *loc.City
		}
		if loc.State != nil {
			p.Location.State = *loc.State
		}
		if loc.ZipCode != nil {
			p.Location.ZipCode = *loc.ZipCode
		}
	}
	if in.Amenities != nil {
		p.Amenities = *in.Amenities
	}
	if in.Images != nil {
		p.Images = *in.Images
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
}

type PropertyUseCase struct {
	Properties repositories.PropertyRepository
	Users      repositories.UserRepository
	Events     events.Publisher
	Log        *slog.Logger
}

func NewPropertyUseCase(properties repositories.PropertyRepository, users repositories.UserRepository, publisher events.Publisher, log *slog.Logger) *PropertyUseCase {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &PropertyUseCase{
		Properties: properties,
		Users:      users,
		Events:     publisher,
		Log:        log,
	}
}

// ListProperties returns one page of available listings with their agents.
func (uc *PropertyUseCase) ListProperties(ctx context.Context, filter query.PropertyFilter, page query.Page) ([]entities.Property, query.PageMeta, error) {
	filter.AvailableOnly = true
	properties, total, err := uc.Properties.Find(ctx, filter, page)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	if err := uc.joinAgents(ctx, properties, entities.User.PublicAgent); err != nil {
		return nil, query.PageMeta{}, err
	}
	return properties, query.NewPageMeta(page, len(properties), total), nil
}

// GetProperty returns a listing with its agent's contact details.
func (uc *PropertyUseCase) GetProperty(ctx context.Context, id string) (*entities.Property, error) {
	property, err := uc.getProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	one := []entities.Property{*property}
	if err := uc.joinAgents(ctx, one, entities.User.DetailAgent); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// CreateProperty stores a new listing owned by caller.
func (uc *PropertyUseCase) CreateProperty(ctx context.Context, caller Caller, in PropertyInput) (*entities.Property, error) {
	property := &entities.Property{
		Amenities:   []string{},
		Images:      []entities.Image{},
		IsAvailable: true,
	}
	in.apply(property)
	property.AgentID = caller.ID

	msgs := append(in.missingNumbers(), validationMessages(property)...)
	if len(msgs) > 0 {
		return nil, apperrors.Validation(msgs)
	}

	if err := uc.Properties.Create(ctx, property); err != nil {
		return nil, err
	}
	property.Agent = entities.AgentRef{ID: property.AgentID}
	uc.publish(ctx, events.PropertyCreated, property)
	return property, nil
}

// UpdateProperty applies a partial update on behalf of the owner or an admin.
func (uc *PropertyUseCase) UpdateProperty(ctx context.Context, caller Caller, id string, in PropertyInput) (*entities.Property, error) {
	property, err := uc.getProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(caller, property.AgentID) {
		return nil, apperrors.Forbidden("Not authorized to update this property")
	}

	in.apply(property)
	if msgs := validationMessages(property); len(msgs) > 0 {
		return nil, apperrors.Validation(msgs)
	}

	if err := uc.Properties.Update(ctx, property); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("Property not found")
		}
		return nil, err
	}
	property.Agent = entities.AgentRef{ID: property.AgentID}
	uc.publish(ctx, events.PropertyUpdated, property)
	return property, nil
}

// DeleteProperty removes a listing on behalf of the owner or an admin.
func (uc *PropertyUseCase) DeleteProperty(ctx context.Context, caller Caller, id string) error {
	property, err := uc.getProperty(ctx, id)
	if err != nil {
		return err
	}
	if !CanModify(caller, property.AgentID) {
		return apperrors.Forbidden("Not authorized to delete this property")
	}

	if err := uc.Properties.Delete(ctx, property.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("Property not found")
		}
		return err
	}
	uc.publish(ctx, events.PropertyDeleted, property)
	return nil
}

// ListAgentProperties returns every listing the caller owns, available or not.
func (uc *PropertyUseCase) ListAgentProperties(ctx context.Context, caller Caller) ([]entities.Property, error) {
	return uc.Properties.FindAll(ctx, query.PropertyFilter{AgentID: caller.ID})
}

func (uc *PropertyUseCase) getProperty(ctx context.Context, id string) (*entities.Property, error) {
	property, err := uc.Properties.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("Property not found")
	}
	return property, err
}

// joinAgents fills in each property's agent with a single user lookup.
func (uc *PropertyUseCase) joinAgents(ctx context.Context, properties []entities.Property, project func(entities.User) entities.AgentRef) error {
	if len(properties) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(properties))
	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		if !seen[p.AgentID] {
			seen[p.AgentID] = true
			ids = append(ids, p.AgentID)
		}
	}

	agents, err := uc.Users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range properties {
		if agent, ok := agents[properties[i].AgentID]; ok {
			properties[i].Agent = project(agent)
		} else {
			properties[i].Agent = entities.AgentRef{ID: properties[i].AgentID}
		}
	}
	return nil
}

func (uc *PropertyUseCase) publish(ctx context.Context, eventType string, p *entities.Property) {
	if err := uc.Events.Publish(ctx, events.NewPropertyEvent(eventType, p)); err != nil {
		uc.Log.Warn("failed to publish listing event", "type", eventType, "property_id", p.ID, "error", err)
	}
}
