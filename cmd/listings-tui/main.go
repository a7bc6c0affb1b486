package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"rental-server/entities"
	"rental-server/listingfilter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepLoading step = iota
	stepBrowsing
	stepEditingFilter
	stepEditingListing
	stepConfirmDelete
	stepSaving
)

// filterField is one prompt of the filter form, in the order asked.
type filterField int

const (
	fieldMinPrice filterField = iota
	fieldMaxPrice
	fieldMinBedrooms
	fieldMaxBedrooms
	fieldLocation
	fieldCount
)

var fieldPrompts = [fieldCount]string{
	fieldMinPrice:    "Minimum price",
	fieldMaxPrice:    "Maximum price",
	fieldMinBedrooms: "Minimum bedrooms",
	fieldMaxBedrooms: "Maximum bedrooms",
	fieldLocation:    "Location contains",
}

type model struct {
	apiURL       string
	token        string
	step         step
	properties   map[string]entities.Property // by property id
	listings     []listingfilter.Listing
	visible      []listingfilter.Listing
	filters      listingfilter.Filters
	order        listingfilter.SortOrder
	cursor       int
	field        filterField
	currentInput string
	form         []string
	formIndex    int
	editingID    string // empty while adding
	message      string
	quitting     bool
}

func initialModel(apiURL, token string) model {
	return model{
		apiURL: apiURL,
		token:  token,
		step:   stepLoading,
		order:  listingfilter.SortNewest,
	}
}

func (m model) Init() tea.Cmd {
	return fetchMyListings(m.apiURL, m.token)
}

func (m *model) refresh() {
	m.visible = listingfilter.Apply(m.listings, m.filters, m.order)
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

// parseBound reads an optional whole number; blank input clears the bound.
func parseBound(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%q is not a whole number", s)
	}
	return &n, nil
}

func (m *model) setField(input string) error {
	if m.field == fieldLocation {
		m.filters.Location = strings.TrimSpace(input)
		return nil
	}
	n, err := parseBound(input)
	if err != nil {
		return err
	}
	switch m.field {
	case fieldMinPrice:
		m.filters.PriceRange.Min = n
	case fieldMaxPrice:
		m.filters.PriceRange.Max = n
	case fieldMinBedrooms:
		m.filters.Bedrooms.Min = n
	case fieldMaxBedrooms:
		m.filters.Bedrooms.Max = n
	}
	return nil
}

// selected returns the listing under the cursor.
func (m model) selected() (entities.Property, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return entities.Property{}, false
	}
	p, ok := m.properties[m.visible[m.cursor].PropertyID]
	return p, ok
}

func (m *model) startListingForm(p *entities.Property) {
	m.step = stepEditingListing
	m.formIndex = 0
	m.currentInput = ""
	m.message = ""
	m.editingID = ""
	m.form = make([]string, formFieldCount)
	if p != nil {
		m.editingID = p.ID
		m.form = formValues(*p)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.step {
		case stepEditingFilter:
			return m.updateFilterForm(msg)
		case stepEditingListing:
			return m.updateListingForm(msg)
		case stepConfirmDelete:
			return m.updateConfirmDelete(msg)
		case stepSaving:
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}

		case "s":
			m.order = m.order.Next()
			m.refresh()

		case "f":
			if m.step == stepBrowsing {
				m.step = stepEditingFilter
				m.field = fieldMinPrice
				m.currentInput = ""
				m.message = ""
			}

		case "c":
			m.filters = listingfilter.Filters{}
			m.refresh()

		case "a":
			if m.step == stepBrowsing {
				m.startListingForm(nil)
			}

		case "e":
			if p, ok := m.selected(); ok && m.step == stepBrowsing {
				m.startListingForm(&p)
			}

		case "t":
			if p, ok := m.selected(); ok && m.step == stepBrowsing {
				note := "Listing marked inactive"
				if !p.IsAvailable {
					note = "Listing marked active"
				}
				m.step = stepSaving
				m.message = ""
				return m, updateListing(m.apiURL, m.token, p.ID, map[string]interface{}{"isAvailable": !p.IsAvailable}, note)
			}

		case "d":
			if _, ok := m.selected(); ok && m.step == stepBrowsing {
				m.step = stepConfirmDelete
				m.message = ""
			}

		case "r":
			m.step = stepLoading
			m.message = ""
			return m, fetchMyListings(m.apiURL, m.token)
		}

	case listingsLoadedMsg:
		m.properties = make(map[string]entities.Property, len(msg))
		for _, p := range msg {
			m.properties[p.ID] = p
		}
		m.listings = listingfilter.FromProperties(msg)
		m.step = stepBrowsing
		m.refresh()

	case listingSavedMsg:
		m.step = stepLoading
		m.message = successStyle.Render("✓ " + msg.note)
		return m, fetchMyListings(m.apiURL, m.token)

	case errMsg:
		m.step = stepBrowsing
		m.message = errorStyle.Render("✗ " + msg.err.Error())
	}

	return m, nil
}

func (m model) updateFilterForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.step = stepBrowsing
		m.currentInput = ""

	case "backspace":
		if len(m.currentInput) > 0 {
			m.currentInput = m.currentInput[:len(m.currentInput)-1]
		}

	case "enter":
		if err := m.setField(m.currentInput); err != nil {
			m.message = errorStyle.Render("✗ " + err.Error())
			return m, nil
		}
		m.message = ""
		m.currentInput = ""
		m.field++
		if m.field == fieldCount {
			m.step = stepBrowsing
			m.refresh()
		}

	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.currentInput += msg.String()
		}
	}
	return m, nil
}

func (m model) updateListingForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.step = stepBrowsing
		m.currentInput = ""
		m.message = ""

	case "backspace":
		if len(m.currentInput) > 0 {
			m.currentInput = m.currentInput[:len(m.currentInput)-1]
		}

	case "enter":
		value := strings.TrimSpace(m.currentInput)
		if value == "" && m.editingID != "" {
			value = m.form[m.formIndex]
		}
		if err := checkFormValue(listingFields[m.formIndex].kind, value); err != nil {
			m.message = errorStyle.Render("✗ " + err.Error())
			return m, nil
		}
		m.form[m.formIndex] = value
		m.message = ""
		m.currentInput = ""
		m.formIndex++
		if m.formIndex < formFieldCount {
			return m, nil
		}

		m.step = stepSaving
		payload := listingPayload(m.form)
		if m.editingID == "" {
			return m, createListing(m.apiURL, m.token, payload)
		}
		return m, updateListing(m.apiURL, m.token, m.editingID, payload, "Listing updated")

	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.currentInput += msg.String()
		}
	}
	return m, nil
}

func (m model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "y", "Y":
		if p, ok := m.selected(); ok {
			m.step = stepSaving
			return m, deleteListing(m.apiURL, m.token, p.ID)
		}
	}
	m.step = stepBrowsing
	m.message = mutedStyle.Render("Delete cancelled")
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("My Listings") + "\n")

	switch m.step {
	case stepLoading:
		s.WriteString("Loading listings...\n")

	case stepEditingFilter:
		s.WriteString(promptStyle.Render(fieldPrompts[m.field]+":") + "\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\n" + mutedStyle.Render("Enter to confirm (blank clears), Esc to cancel") + "\n")
		if m.message != "" {
			s.WriteString("\n" + m.message + "\n")
		}

	case stepEditingListing:
		heading := "New listing"
		if m.editingID != "" {
			heading = "Edit listing"
		}
		s.WriteString(mutedStyle.Render(fmt.Sprintf("%s, step %d of %d", heading, m.formIndex+1, formFieldCount)) + "\n")
		s.WriteString(promptStyle.Render(listingFields[m.formIndex].label+":") + "\n")
		if m.editingID != "" {
			s.WriteString(mutedStyle.Render("current: "+m.form[m.formIndex]) + "\n")
		}
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		hint := "Enter to confirm, Esc to cancel"
		if m.editingID != "" {
			hint = "Enter to confirm (blank keeps the current value), Esc to cancel"
		}
		s.WriteString("\n\n" + mutedStyle.Render(hint) + "\n")
		if m.message != "" {
			s.WriteString("\n" + m.message + "\n")
		}

	case stepConfirmDelete:
		if p, ok := m.selected(); ok {
			s.WriteString(promptStyle.Render(fmt.Sprintf("Delete %q? (y/n)", p.Title)) + "\n")
		}

	case stepSaving:
		s.WriteString("Saving...\n")

	case stepBrowsing:
		s.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d listings, sorted by %s", len(m.visible), len(m.listings), m.order.Label())) + "\n")
		if !m.filters.IsZero() {
			s.WriteString(mutedStyle.Render("Filters: "+describeFilters(m.filters)) + "\n")
		}
		s.WriteString("\n")

		if len(m.visible) == 0 {
			s.WriteString(normalStyle.Render("No listings match.") + "\n")
		}
		for i, l := range m.visible {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			line := fmt.Sprintf("%s  $%s  %s bd  %s  [%s]",
				l.Title, formatRange(l.PriceRange), formatRange(l.BedroomRange), l.Location, l.Status)
			s.WriteString(cursor + style.Render(line) + "\n")
		}

		if m.message != "" {
			s.WriteString("\n" + m.message + "\n")
		}
		s.WriteString("\n" + mutedStyle.Render("↑/↓ move, s sort, f filter, c clear, a add, e edit, t toggle status, d delete, r reload, q quit") + "\n")
	}

	return s.String()
}

func formatRange(r listingfilter.Range) string {
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

func describeFilters(f listingfilter.Filters) string {
	var parts []string
	if b := describeBounds(f.PriceRange); b != "" {
		parts = append(parts, "price "+b)
	}
	if b := describeBounds(f.Bedrooms); b != "" {
		parts = append(parts, "bedrooms "+b)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		parts = append(parts, fmt.Sprintf("location %q", loc))
	}
	return strings.Join(parts, ", ")
}

func describeBounds(b listingfilter.Bounds) string {
	switch {
	case b.Min != nil && b.Max != nil:
		return fmt.Sprintf("%d-%d", *b.Min, *b.Max)
	case b.Min != nil:
		return fmt.Sprintf(">= %d", *b.Min)
	case b.Max != nil:
		return fmt.Sprintf("<= %d", *b.Max)
	}
	return ""
}

func main() {
	apiURL := flag.String("api", envOr("LISTINGS_API", "http://localhost:3536"), "listing service base URL")
	token := flag.StringP("token", "t", os.Getenv("LISTINGS_TOKEN"), "agent bearer token")
	flag.Parse()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "a bearer token is required (--token or LISTINGS_TOKEN)")
		os.Exit(2)
	}

	p := tea.NewProgram(initialModel(*apiURL, *token))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
