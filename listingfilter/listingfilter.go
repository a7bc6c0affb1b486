// Package listingfilter is the agent dashboard's in-memory view over its own
// listings. Dashboard listings describe price and bedrooms as ranges, unlike
// the flat values kept by the listing store; FromProperty bridges the two.
package listingfilter

import (
	"sort"
	"strings"

	"rental-server/entities"
)

// Range is an inclusive min/max pair.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Listing is a dashboard listing. ID increases with creation order.
type Listing struct {
	ID           int64    `json:"id"`
	PropertyID   string   `json:"propertyId,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PriceRange   Range    `json:"priceRange"`
	BedroomRange Range    `json:"bedroomRange"`
	Location     string   `json:"location"`
	Images       []string `json:"images"`
	Status       string   `json:"status"`
}

// Bounds is an optional range filter; nil means unset.
type Bounds struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

type Filters struct {
	PriceRange Bounds `json:"priceRange"`
	Bedrooms   Bounds `json:"bedrooms"`
	Location   string `json:"location"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.PriceRange.Min == nil && f.PriceRange.Max == nil &&
		f.Bedrooms.Min == nil && f.Bedrooms.Max == nil &&
		strings.TrimSpace(f.Location) == ""
}

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortBedrooms  SortOrder = "bedrooms"
)

// SortOrders lists the orders in the sequence the dashboard cycles through.
var SortOrders = []SortOrder{SortNewest, SortPriceLow, SortPriceHigh, SortBedrooms}

func (s SortOrder) Label() string {
	switch s {
	case SortPriceLow:
		return "Price: low to high"
	case SortPriceHigh:
		return "Price: high to low"
	case SortBedrooms:
		return "Most bedrooms"
	default:
		return "Newest first"
	}
}

// Next returns the order after s.
func (s SortOrder) Next() SortOrder {
	for i, o := range SortOrders {
		if o == s {
			return SortOrders[(i+1)%len(SortOrders)]
		}
	}
	return SortNewest
}

// Apply filters and sorts listings. The input slice is not modified.
func Apply(listings []Listing, f Filters, order SortOrder) []Listing {
	location := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if f.PriceRange.Min != nil && l.PriceRange.Min < *f.PriceRange.Min {
			continue
		}
		if f.PriceRange.Max != nil && l.PriceRange.Max > *f.PriceRange.Max {
			continue
		}
		if f.Bedrooms.Min != nil && l.BedroomRange.Min < *f.Bedrooms.Min {
			continue
		}
		if f.Bedrooms.Max != nil && l.BedroomRange.Max > *f.Bedrooms.Max {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(l.Location), location) {
			continue
		}
		out = append(out, l)
	}

	Sort(out, order)
	return out
}

// Sort orders listings in place.
func Sort(listings []Listing, order SortOrder) {
	var less func(a, b Listing) bool
	switch order {
	case SortPriceLow:
		less = func(a, b Listing) bool { return a.PriceRange.Min < b.PriceRange.Min }
	case SortPriceHigh:
		less = func(a, b Listing) bool { return a.PriceRange.Max > b.PriceRange.Max }
	case SortBedrooms:
		less = func(a, b Listing) bool { return a.BedroomRange.Max > b.BedroomRange.Max }
	default:
		less = func(a, b Listing) bool { return a.ID > b.ID }
	}
	sort.SliceStable(listings, func(i, j int) bool { return less(listings[i], listings[j]) })
}

// FromProperty maps a stored property to a dashboard listing whose ranges
// collapse to the property's single price and bedroom count.
func FromProperty(p entities.Property) Listing {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}

	status := "Active"
	if !p.IsAvailable {
		status = "Inactive"
	}

	price := int(p.Price)
	loc := p.Location
	parts := make([]string, 0, 4)
	for _, s := range []string{loc.Address, loc.City, loc.State, loc.ZipCode} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	return Listing{
		ID:           p.CreatedAt.UnixNano(),
		PropertyID:   p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PriceRange:   Range{Min: price, Max: price},
		BedroomRange: Range{Min: p.Bedrooms, Max: p.Bedrooms},
		Location:     strings.Join(parts, ", "),
		Images:       images,
		Status:       status,
	}
}

// FromProperties maps a slice of stored properties.
func FromProperties(props []entities.Property) []Listing {
	out := make([]Listing, 0, len(props))
	for _, p := range props {
		out = append(out, FromProperty(p))
	}
	return out
}
