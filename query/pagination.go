package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"rental-server/apperrors"
)

const (
	DefaultPropertyLimit = 10
	// DefaultDirectoryLimit applies to agent and per-user listings.
	DefaultDirectoryLimit = 12
	MaxLimit              = 100
	// MaxOffset bounds how many records a page may skip.
	MaxOffset = math.MaxInt32
)

// Page is a validated pagination request.
type Page struct {
	Number int
	Limit  int
}

// Skip is the number of records before this page.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// Take is the page size.
func (p Page) Take() int64 {
	return int64(p.Limit)
}

// ParsePage reads page and limit. Missing values fall back to page 1 and
// defaultLimit; non-numeric, zero or negative values are rejected; limits
// above MaxLimit are clamped. Pages that would skip more than MaxOffset
// records are rejected.
func ParsePage(values url.Values, defaultLimit int) (Page, error) {
	p := Page{Number: 1, Limit: defaultLimit}

	var err error
	if p.Number, err = positiveInt(values, "page", 1); err != nil {
		return p, err
	}
	if p.Limit, err = positiveInt(values, "limit", defaultLimit); err != nil {
		return p, err
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if int64(p.Number-1) > MaxOffset/int64(p.Limit) {
		return p, apperrors.InvalidInput("page is too large")
	}
	return p, nil
}

func positiveInt(values url.Values, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("%s must be a positive whole number", name))
	}
	return n, nil
}

// PageMeta is the pagination block of a listing response.
type PageMeta struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
}

// NewPageMeta computes the metadata for count items returned out of total.
func NewPageMeta(p Page, count int, total int64) PageMeta {
	return PageMeta{
		Count: count,
		Total: total,
		Page:  p.Number,
		Pages: PageCount(total, p.Limit),
	}
}

// PageCount is ceil(total/limit). A non-positive limit yields zero pages.
func PageCount(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
