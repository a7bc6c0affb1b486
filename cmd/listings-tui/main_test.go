package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"rental-server/entities"
	"rental-server/listingfilter"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m model, keys ...string) model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func properties() listingsLoadedMsg {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return listingsLoadedMsg{
		{ID: "p-loft", Title: "Loft", Description: "Bright", Price: 1200, PropertyType: "apartment", Bedrooms: 1, Bathrooms: 1, Area: 650,
			Location: entities.Location{Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"}, IsAvailable: true, CreatedAt: base},
		{ID: "p-house", Title: "House", Price: 2500, Bedrooms: 3, Location: entities.Location{City: "Shelbyville"}, IsAvailable: true, CreatedAt: base.Add(time.Hour)},
		{ID: "p-studio", Title: "Studio", Price: 800, Location: entities.Location{City: "Springville"}, IsAvailable: false, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func loadedFrom(apiURL string) model {
	m := initialModel(apiURL, "token")
	next, _ := m.Update(properties())
	return next.(model)
}

func loaded() model {
	return loadedFrom("http://api")
}

func titles(m model) string {
	out := make([]string, 0, len(m.visible))
	for _, l := range m.visible {
		out = append(out, l.Title)
	}
	return strings.Join(out, ",")
}

func TestLoadedListingsNewestFirst(t *testing.T) {
	m := loaded()
	if m.step != stepBrowsing {
		t.Fatalf("expected browsing step")
	}
	if got := titles(m); got != "Studio,House,Loft" {
		t.Errorf("unexpected order %s", got)
	}
}

func TestSortCycling(t *testing.T) {
	m := press(loaded(), "s")
	if m.order != listingfilter.SortPriceLow || titles(m) != "Studio,Loft,House" {
		t.Errorf("after one press: %s %s", m.order, titles(m))
	}
	m = press(m, "s")
	if titles(m) != "House,Loft,Studio" {
		t.Errorf("price high: %s", titles(m))
	}
}

func TestFilterForm(t *testing.T) {
	m := press(loaded(), "f")
	if m.step != stepEditingFilter || m.field != fieldMinPrice {
		t.Fatalf("expected filter form")
	}

	// min price 1000, max price blank, min bedrooms blank, max bedrooms blank, location "spring"
	m = press(m, "1", "0", "0", "0", "enter", "enter", "enter", "enter", "s", "p", "r", "i", "n", "g", "enter")
	if m.step != stepBrowsing {
		t.Fatalf("expected to return to browsing, at field %d", m.field)
	}
	if got := titles(m); got != "Loft" {
		t.Errorf("unexpected filtered listings %s", got)
	}
	if !strings.Contains(m.View(), "1 of 3 listings") {
		t.Errorf("view should show the filtered count:\n%s", m.View())
	}

	m = press(m, "c")
	if titles(m) != "Studio,House,Loft" {
		t.Errorf("clear should restore every listing, got %s", titles(m))
	}
}

func TestFilterFormRejectsBadNumber(t *testing.T) {
	m := press(loaded(), "f", "x", "enter")
	if m.step != stepEditingFilter || m.field != fieldMinPrice {
		t.Fatalf("expected to stay on the min price prompt")
	}
	if !strings.Contains(m.message, "not a whole number") {
		t.Errorf("expected an error message, got %q", m.message)
	}

	m = press(m, "backspace", "esc")
	if m.step != stepBrowsing {
		t.Errorf("esc should leave the form")
	}
}

func TestLoadError(t *testing.T) {
	m := initialModel("http://api", "token")
	next, _ := m.Update(errMsg{errors.New("Not authorized to access this route")})
	m = next.(model)
	if m.step != stepBrowsing || !strings.Contains(m.View(), "Not authorized") {
		t.Errorf("expected error to be shown:\n%s", m.View())
	}
}

func TestParseBound(t *testing.T) {
	if n, err := parseBound(" 42 "); err != nil || *n != 42 {
		t.Errorf("unexpected %v %v", n, err)
	}
	if n, err := parseBound(""); err != nil || n != nil {
		t.Errorf("blank should clear, got %v %v", n, err)
	}
	if _, err := parseBound("-1"); err == nil {
		t.Errorf("negative bound should fail")
	}
}
