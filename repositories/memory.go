package repositories

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"rental-server/apperrors"
	"rental-server/entities"
	"rental-server/query"

	"github.com/google/uuid"
)

// MemoryStore keeps listings and users in process. It backs local
// development and tests; data is lost on exit.
type MemoryStore struct {
	mu         sync.RWMutex
	properties map[string]memoryProperty
	users      map[string]entities.User
	seq        int64
}

type memoryProperty struct {
	property entities.Property
	seq      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties: make(map[string]memoryProperty),
		users:      make(map[string]entities.User),
	}
}

// Properties returns the store's PropertyRepository view.
func (s *MemoryStore) Properties() PropertyRepository { return memoryProperties{s} }

// Users returns the store's UserRepository view.
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

// AddUser inserts or replaces an account. A missing id is generated.
func (s *MemoryStore) AddUser(u entities.User) entities.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u
}

func cloneProperty(p entities.Property) entities.Property {
	p.Amenities = slices.Clone(p.Amenities)
	p.Images = slices.Clone(p.Images)
	p.Agent = entities.AgentRef{ID: p.AgentID}
	return p
}

func matches(p entities.Property, f query.PropertyFilter) bool {
	if f.AvailableOnly && !p.IsAvailable {
		return false
	}
	if f.AgentID != "" && p.AgentID != f.AgentID {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(p.Location.City), strings.ToLower(f.City)) {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MinPrice != nil && p.Price < float64(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price > float64(*f.MaxPrice) {
		return false
	}
	return true
}

type memoryProperties struct{ s *MemoryStore }

func (r memoryProperties) Create(_ context.Context, property *entities.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now().UTC()
	}
	r.s.seq++
	r.s.properties[property.ID] = memoryProperty{property: cloneProperty(*property), seq: r.s.seq}
	property.Agent = entities.AgentRef{ID: property.AgentID}
	return nil
}

func (r memoryProperties) GetByID(_ context.Context, id string) (*entities.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.properties[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	p := cloneProperty(stored.property)
	return &p, nil
}

// matching returns every match, newest first. Ties keep insertion order
// reversed.
func (r memoryProperties) matching(f query.PropertyFilter) []entities.Property {
	r.s.mu.RLock()
	var found []memoryProperty
	for _, stored := range r.s.properties {
		if matches(stored.property, f) {
			found = append(found, stored)
		}
	}
	r.s.mu.RUnlock()

	slices.SortFunc(found, func(a, b memoryProperty) int {
		if c := b.property.CreatedAt.Compare(a.property.CreatedAt); c != 0 {
			return c
		}
		return int(b.seq - a.seq)
	})
	out := make([]entities.Property, 0, len(found))
	for _, stored := range found {
		out = append(out, cloneProperty(stored.property))
	}
	return out
}

func (r memoryProperties) Find(_ context.Context, filter query.PropertyFilter, page query.Page) ([]entities.Property, int64, error) {
	all := r.matching(filter)
	total := int64(len(all))
	start, end := window(page, total)
	return all[start:end], total, nil
}

func (r memoryProperties) FindAll(_ context.Context, filter query.PropertyFilter) ([]entities.Property, error) {
	return r.matching(filter), nil
}

func (r memoryProperties) Update(_ context.Context, property *entities.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.properties[property.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	updated := cloneProperty(*property)
	updated.AgentID = stored.property.AgentID
	updated.CreatedAt = stored.property.CreatedAt
	stored.property = updated
	r.s.properties[property.ID] = stored
	return nil
}

func (r memoryProperties) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.properties, id)
	return nil
}

func (r memoryProperties) CountByAgents(_ context.Context, agentIDs []string) (map[string]entities.AgentStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stats := make(map[string]entities.AgentStats, len(agentIDs))
	for _, stored := range r.s.properties {
		p := stored.property
		if !slices.Contains(agentIDs, p.AgentID) {
			continue
		}
		st := stats[p.AgentID]
		st.TotalProperties++
		if p.IsAvailable {
			st.ActiveProperties++
		}
		stats[p.AgentID] = st
	}
	return stats, nil
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) GetByID(_ context.Context, id string) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r memoryUsers) GetByIDs(_ context.Context, ids []string) (map[string]entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make(map[string]entities.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users[id] = u
		}
	}
	return users, nil
}

func (r memoryUsers) ListAgents(_ context.Context, page query.Page) ([]entities.User, int64, error) {
	r.s.mu.RLock()
	var agents []entities.User
	for _, u := range r.s.users {
		if u.UserType == entities.UserTypeAgent && u.IsActive {
			agents = append(agents, u)
		}
	}
	r.s.mu.RUnlock()

	slices.SortFunc(agents, func(a, b entities.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	total := int64(len(agents))
	start, end := window(page, total)
	return agents[start:end], total, nil
}

// window returns the slice bounds of page within total records.
func window(page query.Page, total int64) (int64, int64) {
	start := min(max(page.Skip(), 0), total)
	end := min(start+max(page.Take(), 0), total)
	return start, end
}

func (r memoryUsers) Update(_ context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[user.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.s.users[user.ID] = *user
	return nil
}
