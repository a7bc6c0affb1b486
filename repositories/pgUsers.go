package repositories

import (
	"context"
	"errors"

	"rental-server/apperrors"
	"rental-server/db"
	"rental-server/entities"
	"rental-server/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrNotFound
	}
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetByIDs(ctx context.Context, ids []string) (map[string]entities.User, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	users := make(map[string]entities.User, len(valid))
	if len(valid) == 0 {
		return users, nil
	}

	var found []entities.User
	if err := r.db.GetDB().WithContext(ctx).Where("id IN ?", valid).Find(&found).Error; err != nil {
		return nil, err
	}
	for _, u := range found {
		users[u.ID] = u
	}
	return users, nil
}

func (r *userPgRepository) ListAgents(ctx context.Context, page query.Page) ([]entities.User, int64, error) {
	agents := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_type = ? AND is_active = ?", entities.UserTypeAgent, true)
	}

	var total int64
	if err := r.db.GetDB().WithContext(ctx).Model(&entities.User{}).Scopes(agents).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entities.User
	err := r.db.GetDB().WithContext(ctx).
		Scopes(agents).
		Order("created_at DESC").
		Offset(int(page.Skip())).
		Limit(int(page.Take())).
		Find(&users).Error
	return users, total, err
}

func (r *userPgRepository) Update(ctx context.Context, user *entities.User) error {
	res := r.db.GetDB().WithContext(ctx).
		Model(user).
		Select("*").
		Omit("id", "created_at").
		Updates(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
