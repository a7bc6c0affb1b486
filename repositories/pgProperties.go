package repositories

import (
	"context"
	"errors"
	"strings"

	"rental-server/apperrors"
	"rental-server/db"
	"rental-server/entities"
	"rental-server/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type propertyPgRepository struct {
	db db.Database
}

func NewPropertyPgRepository(database db.Database) PropertyRepository {
	return &propertyPgRepository{db: database}
}

// condition is one parameterised WHERE fragment.
type condition struct {
	SQL string
	Arg interface{}
}

func propertyConditions(f query.PropertyFilter) []condition {
	var conds []condition
	if f.AvailableOnly {
		conds = append(conds, condition{"is_available = ?", true})
	}
	if f.AgentID != "" {
		conds = append(conds, condition{"agent_id = ?", f.AgentID})
	}
	if f.City != "" {
		conds = append(conds, condition{"location_city ILIKE ?", "%" + escapeLike(f.City) + "%"})
	}
	if f.PropertyType != "" {
		conds = append(conds, condition{"property_type = ?", f.PropertyType})
	}
	if f.MinBedrooms != nil {
		conds = append(conds, condition{"bedrooms >= ?", *f.MinBedrooms})
	}
	if f.MinPrice != nil {
		conds = append(conds, condition{"price >= ?", *f.MinPrice})
	}
	if f.MaxPrice != nil {
		conds = append(conds, condition{"price <= ?", *f.MaxPrice})
	}
	return conds
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func filterScope(f query.PropertyFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, c := range propertyConditions(f) {
			tx = tx.Where(c.SQL, c.Arg)
		}
		return tx
	}
}

func (r *propertyPgRepository) Create(ctx context.Context, property *entities.Property) error {
	if err := r.db.GetDB().WithContext(ctx).Create(property).Error; err != nil {
		return err
	}
	property.Agent = entities.AgentRef{ID: property.AgentID}
	return nil
}

func (r *propertyPgRepository) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrNotFound
	}
	var property entities.Property
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyPgRepository) Find(ctx context.Context, filter query.PropertyFilter, page query.Page) ([]entities.Property, int64, error) {
	var total int64
	err := r.db.GetDB().WithContext(ctx).Model(&entities.Property{}).Scopes(filterScope(filter)).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var properties []entities.Property
	err = r.db.GetDB().WithContext(ctx).
		Scopes(filterScope(filter)).
		Order("created_at DESC").
		Offset(int(page.Skip())).
		Limit(int(page.Take())).
		Find(&properties).Error
	return properties, total, err
}

func (r *propertyPgRepository) FindAll(ctx context.Context, filter query.PropertyFilter) ([]entities.Property, error) {
	var properties []entities.Property
	err := r.db.GetDB().WithContext(ctx).Scopes(filterScope(filter)).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

func (r *propertyPgRepository) Update(ctx context.Context, property *entities.Property) error {
	res := r.db.GetDB().WithContext(ctx).
		Model(property).
		Select("*").
		Omit("id", "agent_id", "created_at").
		Updates(property)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *propertyPgRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrNotFound
	}
	res := r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *propertyPgRepository) CountByAgents(ctx context.Context, agentIDs []string) (map[string]entities.AgentStats, error) {
	stats := make(map[string]entities.AgentStats, len(agentIDs))
	if len(agentIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		AgentID string
		Total   int64
		Active  int64
	}
	err := r.db.GetDB().WithContext(ctx).
		Model(&entities.Property{}).
		Select("agent_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE is_available) AS active").
		Where("agent_id IN ?", agentIDs).
		Group("agent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats[row.AgentID] = entities.AgentStats{ActiveProperties: row.Active, TotalProperties: row.Total}
	}
	return stats, nil
}
