package usecases

import (
	"context"
	"errors"
	"strings"

	"rental-server/apperrors"
	"rental-server/entities"
	"rental-server/query"
	"rental-server/repositories"
)

// UserInput is an admin's partial profile update.
type UserInput struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Company       *string `json:"company"`
	LicenseNumber *string `json:"licenseNumber"`
	Role          *string `json:"role"`
	UserType      *string `json:"userType"`
	IsActive      *bool   `json:"isActive"`
}

func (in UserInput) apply(u *entities.User) {
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Company != nil {
		u.Company = *in.Company
	}
	if in.LicenseNumber != nil {
		u.LicenseNumber = *in.LicenseNumber
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.UserType != nil {
		u.UserType = *in.UserType
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
}

type UserUseCase struct {
	Users      repositories.UserRepository
	Properties repositories.PropertyRepository
}

func NewUserUseCase(users repositories.UserRepository, properties repositories.PropertyRepository) *UserUseCase {
	return &UserUseCase{Users: users, Properties: properties}
}

// GetUserProfile returns a user with their listing counts.
func (uc *UserUseCase) GetUserProfile(ctx context.Context, id string) (*entities.User, entities.AgentStats, error) {
	user, err := uc.getUser(ctx, id)
	if err != nil {
		return nil, entities.AgentStats{}, err
	}
	counts, err := uc.Properties.CountByAgents(ctx, []string{user.ID})
	if err != nil {
		return nil, entities.AgentStats{}, err
	}
	return user, counts[user.ID], nil
}

// GetUserProperties returns one page of a user's available listings.
func (uc *UserUseCase) GetUserProperties(ctx context.Context, id string, page query.Page) ([]entities.Property, query.PageMeta, error) {
	user, err := uc.getUser(ctx, id)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	filter := query.PropertyFilter{AgentID: user.ID, AvailableOnly: true}
	properties, total, err := uc.Properties.Find(ctx, filter, page)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	for i := range properties {
		properties[i].Agent = user.PublicAgent()
	}
	return properties, query.NewPageMeta(page, len(properties), total), nil
}

// ListAgents returns one page of active agents with their available listing
// counts, gathered in a single grouped query.
func (uc *UserUseCase) ListAgents(ctx context.Context, page query.Page) ([]entities.UserWithStats, query.PageMeta, error) {
	agents, total, err := uc.Users.ListAgents(ctx, page)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	ids := make([]string, 0, len(agents))
	for _, a := range agents {
		ids = append(ids, a.ID)
	}
	counts, err := uc.Properties.CountByAgents(ctx, ids)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	out := make([]entities.UserWithStats, 0, len(agents))
	for _, a := range agents {
		out = append(out, entities.UserWithStats{User: a, ActiveProperties: counts[a.ID].ActiveProperties})
	}
	return out, query.NewPageMeta(page, len(out), total), nil
}

// UpdateUser applies an admin's partial update.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id string, in UserInput) (*entities.User, error) {
	user, err := uc.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(user)
	if msgs := validationMessages(user); len(msgs) > 0 {
		return nil, apperrors.Validation(msgs)
	}

	if err := uc.Users.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) getUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := uc.Users.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	return user, err
}
