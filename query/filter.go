// Package query turns listing request parameters into store-neutral filter
// and pagination values.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"rental-server/apperrors"
	"rental-server/entities"
)

// PropertyFilter is a conjunction of listing constraints. Nil pointers and
// empty strings mean "no constraint".
type PropertyFilter struct {
	City         string
	PropertyType string
	MinPrice     *int
	MaxPrice     *int
	MinBedrooms  *int
	// AvailableOnly restricts results to isAvailable=true. Public listing
	// queries set it; an agent's own listing does not.
	AvailableOnly bool
	// AgentID restricts results to one owner.
	AgentID string
}

// HasPriceRange reports whether either price bound is set.
func (f PropertyFilter) HasPriceRange() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

// ParsePropertyFilter reads city, minPrice, maxPrice, propertyType and
// bedrooms from the query string. The result is always scoped to available
// listings.
func ParsePropertyFilter(values url.Values) (PropertyFilter, error) {
	f := PropertyFilter{AvailableOnly: true}

	f.City = strings.TrimSpace(values.Get("city"))

	if pt := strings.TrimSpace(values.Get("propertyType")); pt != "" {
		if !entities.IsPropertyType(pt) {
			return f, apperrors.InvalidInput(fmt.Sprintf("propertyType must be one of %s", strings.Join(entities.PropertyTypes, ", ")))
		}
		f.PropertyType = pt
	}

	var err error
	if f.MinPrice, err = optionalNonNegativeInt(values, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = optionalNonNegativeInt(values, "maxPrice"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, apperrors.InvalidInput("minPrice cannot be greater than maxPrice")
	}
	if f.MinBedrooms, err = optionalNonNegativeInt(values, "bedrooms"); err != nil {
		return f, err
	}

	return f, nil
}

func optionalNonNegativeInt(values url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s must be a whole number", name))
	}
	if n < 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s cannot be negative", name))
	}
	return &n, nil
}
