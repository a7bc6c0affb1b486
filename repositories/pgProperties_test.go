package repositories

import (
	"testing"

	"rental-server/query"
)

func intPtr(n int) *int { return &n }

func TestPropertyConditions(t *testing.T) {
	f := query.PropertyFilter{
		City:          "50%_off",
		PropertyType:  "condo",
		MinPrice:      intPtr(1000),
		MaxPrice:      intPtr(2000),
		MinBedrooms:   intPtr(2),
		AvailableOnly: true,
		AgentID:       "agent-1",
	}

	want := []condition{
		{"is_available = ?", true},
		{"agent_id = ?", "agent-1"},
		{"location_city ILIKE ?", `%50\%\_off%`},
		{"property_type = ?", "condo"},
		{"bedrooms >= ?", 2},
		{"price >= ?", 1000},
		{"price <= ?", 2000},
	}

	got := propertyConditions(f)
	if len(got) != len(want) {
		t.Fatalf("expected %d conditions, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("condition %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPropertyConditionsEmpty(t *testing.T) {
	if got := propertyConditions(query.PropertyFilter{}); len(got) != 0 {
		t.Errorf("expected no conditions, got %+v", got)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"Springfield": "Springfield",
		"100%":        `100\%`,
		"a_b":         `a\_b`,
		`back\slash`:  `back\\slash`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
