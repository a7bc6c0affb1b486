package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
	RoleUser  = "user"

	UserTypeAgent  = "agent"
	UserTypeTenant = "tenant"
)

// User represents an account known to the listing service. Accounts are
// provisioned elsewhere; this service only reads and administers them.
type User struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name" validate:"required,max=100"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Phone         string    `json:"phone"`
	Company       string    `json:"company"`
	LicenseNumber string    `json:"licenseNumber"`
	Role          string    `gorm:"type:varchar(16);not null;default:user" json:"role" validate:"omitempty,oneof=agent admin user"`
	UserType      string    `gorm:"type:varchar(16);index" json:"userType" validate:"omitempty,oneof=agent tenant"`
	IsActive      bool      `gorm:"index;not null;default:true" json:"isActive"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// PublicAgent returns the agent fields shown on listing cards.
func (u User) PublicAgent() AgentRef {
	return AgentRef{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Company: u.Company,
	}
}

// DetailAgent additionally exposes the license number on the detail page.
func (u User) DetailAgent() AgentRef {
	ref := u.PublicAgent()
	ref.LicenseNumber = u.LicenseNumber
	return ref
}

// AgentStats are the listing counts shown next to an agent.
type AgentStats struct {
	ActiveProperties int64 `json:"activeProperties"`
	TotalProperties  int64 `json:"totalProperties"`
}

// UserWithStats is an agent directory entry.
type UserWithStats struct {
	User
	ActiveProperties int64 `json:"activeProperties"`
}
