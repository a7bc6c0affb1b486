package query

import (
	"errors"
	"net/url"
	"testing"

	"rental-server/apperrors"
)

func TestParsePropertyFilter(t *testing.T) {
	values := url.Values{
		"city":         {"  spring "},
		"minPrice":     {"1000"},
		"maxPrice":     {"2500"},
		"propertyType": {"condo"},
		"bedrooms":     {"2"},
	}

	f, err := ParsePropertyFilter(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.AvailableOnly {
		t.Errorf("expected public filter to be limited to available listings")
	}
	if f.City != "spring" {
		t.Errorf("expected trimmed city, got %q", f.City)
	}
	if f.PropertyType != "condo" {
		t.Errorf("expected condo, got %q", f.PropertyType)
	}
	if f.MinPrice == nil || *f.MinPrice != 1000 {
		t.Errorf("expected minPrice 1000, got %v", f.MinPrice)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 2500 {
		t.Errorf("expected maxPrice 2500, got %v", f.MaxPrice)
	}
	if f.MinBedrooms == nil || *f.MinBedrooms != 2 {
		t.Errorf("expected bedrooms 2, got %v", f.MinBedrooms)
	}
	if !f.HasPriceRange() {
		t.Errorf("expected price range to be set")
	}
}

func TestParsePropertyFilterEmpty(t *testing.T) {
	f, err := ParsePropertyFilter(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.City != "" || f.PropertyType != "" || f.MinPrice != nil || f.MaxPrice != nil || f.MinBedrooms != nil {
		t.Errorf("expected no constraints, got %+v", f)
	}
	if f.HasPriceRange() {
		t.Errorf("expected no price range")
	}
}

func TestParsePropertyFilterRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"non-numeric price", url.Values{"minPrice": {"cheap"}}},
		{"negative price", url.Values{"maxPrice": {"-1"}}},
		{"inverted range", url.Values{"minPrice": {"3000"}, "maxPrice": {"1000"}}},
		{"fractional bedrooms", url.Values{"bedrooms": {"2.5"}}},
		{"unknown property type", url.Values{"propertyType": {"castle"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePropertyFilter(tt.values)
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("expected invalid input error, got %v", err)
			}
		})
	}
}

func TestParsePropertyFilterAllowsEqualBounds(t *testing.T) {
	f, err := ParsePropertyFilter(url.Values{"minPrice": {"1500"}, "maxPrice": {"1500"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *f.MinPrice != 1500 || *f.MaxPrice != 1500 {
		t.Errorf("unexpected bounds %d-%d", *f.MinPrice, *f.MaxPrice)
	}
}
