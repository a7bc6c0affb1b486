package repositories

import (
	"context"

	"rental-server/entities"
	"rental-server/query"
)

// PropertyRepository stores listings. Lookups by an id that is absent or
// malformed for the backing store return apperrors.ErrNotFound.
type PropertyRepository interface {
	Create(ctx context.Context, property *entities.Property) error
	GetByID(ctx context.Context, id string) (*entities.Property, error)
	// Find returns one page of matches, newest first, and the total number
	// of matches.
	Find(ctx context.Context, filter query.PropertyFilter, page query.Page) ([]entities.Property, int64, error)
	// FindAll returns every match, newest first.
	FindAll(ctx context.Context, filter query.PropertyFilter) ([]entities.Property, error)
	// Update replaces the mutable fields. Owner and creation time are kept.
	Update(ctx context.Context, property *entities.Property) error
	Delete(ctx context.Context, id string) error
	// CountByAgents groups listings by owner in a single query. Agents with
	// no listings are absent from the result.
	CountByAgents(ctx context.Context, agentIDs []string) (map[string]entities.AgentStats, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
	// GetByIDs skips ids that do not resolve.
	GetByIDs(ctx context.Context, ids []string) (map[string]entities.User, error)
	// ListAgents returns active agents, newest first, and their total.
	ListAgents(ctx context.Context, page query.Page) ([]entities.User, int64, error)
	Update(ctx context.Context, user *entities.User) error
}
