package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property types accepted by the listing store.
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeCondo     = "condo"
	PropertyTypeTownhouse = "townhouse"
	PropertyTypeStudio    = "studio"
)

var PropertyTypes = []string{
	PropertyTypeApartment,
	PropertyTypeHouse,
	PropertyTypeCondo,
	PropertyTypeTownhouse,
	PropertyTypeStudio,
}

func IsPropertyType(s string) bool {
	for _, t := range PropertyTypes {
		if t == s {
			return true
		}
	}
	return false
}

type Location struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" gorm:"index" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

type Image struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// AgentRef is the owning agent as rendered in responses. Only ID is
// guaranteed; the other fields are joined in by the listing queries.
type AgentRef struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Company       string `json:"company,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
}

// Property is a rental listing.
type Property struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title        string    `gorm:"type:varchar(100);not null" json:"title" validate:"required,max=100"`
	Description  string    `gorm:"type:varchar(1000);not null" json:"description" validate:"required,max=1000"`
	Price        float64   `gorm:"index;not null" json:"price" validate:"gte=0"`
	PropertyType string    `gorm:"type:varchar(16);index;not null" json:"propertyType" validate:"required,oneof=apartment house condo townhouse studio"`
	Bedrooms     int       `gorm:"index;not null" json:"bedrooms" validate:"gte=0"`
	Bathrooms    int       `gorm:"not null" json:"bathrooms" validate:"gte=0"`
	Area         float64   `gorm:"not null" json:"area" validate:"gte=0"`
	Location     Location  `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Amenities    []string  `gorm:"serializer:json" json:"amenities"`
	Images       []Image   `gorm:"serializer:json" json:"images"`
	AgentID      string    `gorm:"type:varchar(36);index;not null" json:"-" validate:"required"`
	Agent        AgentRef  `gorm:"-" json:"agent"`
	IsAvailable  bool      `gorm:"index;not null" json:"isAvailable"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return nil
}

// AfterFind keeps the rendered agent reference in step with the stored owner.
func (p *Property) AfterFind(tx *gorm.DB) (err error) {
	p.Agent = AgentRef{ID: p.AgentID}
	return nil
}
