package models

import (
	"sort"
	"strings"
	"time"

	dErrors "provision/pkg/domain-errors"
)

// Order is the sort direction over price.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder restricts the order parameter to its two literal values.
// An empty value defaults to ascending.
func ParseOrder(raw string) (Order, error) {
	switch raw {
	case "", string(OrderAsc):
		return OrderAsc, nil
	case string(OrderDesc):
		return OrderDesc, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "order must be 'asc' or 'desc'")
	}
}

// Pagination bounds.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Filter is the predicate/ordering/window specification for listing queries.
// All predicates combine with logical AND; zero values mean "no constraint".
type Filter struct {
	// Query matches case-insensitively as a substring of Title or of
	// Details when Details is non-null.
	Query       string
	ServiceType string
	// MinPrice and MaxPrice are inclusive bounds.
	MinPrice *int64
	MaxPrice *int64
	// AvailableOn is a calendar date (UTC midnight); it matches listings
	// whose AvailableAt falls anywhere within that UTC day.
	AvailableOn *time.Time
	Order       Order
	Offset      int
	Limit       int
}

// DayWindow returns the inclusive [start-of-day, end-of-day] bounds of
// AvailableOn in UTC.
func (f Filter) DayWindow() (time.Time, time.Time) {
	start := f.AvailableOn.UTC().Truncate(24 * time.Hour)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// Matches evaluates every predicate against l. Ordering and windowing are not
// part of the match; apply them with SortAndWindow.
func (f Filter) Matches(l *Listing) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		inTitle := strings.Contains(strings.ToLower(l.Title), q)
		inDetails := l.Details != nil && strings.Contains(strings.ToLower(*l.Details), q)
		if !inTitle && !inDetails {
			return false
		}
	}
	if f.ServiceType != "" && l.ServiceType != f.ServiceType {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.AvailableOn != nil {
		start, end := f.DayWindow()
		if l.AvailableAt.Before(start) || l.AvailableAt.After(end) {
			return false
		}
	}
	return true
}

// SortAndWindow orders listings by price per f.Order and applies the
// offset/limit window. The sort is stable so ties keep their input order.
func (f Filter) SortAndWindow(listings []Listing) []Listing {
	sort.SliceStable(listings, func(i, j int) bool {
		if f.Order == OrderDesc {
			return listings[i].Price > listings[j].Price
		}
		return listings[i].Price < listings[j].Price
	})

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if f.Offset >= len(listings) {
		return []Listing{}
	}
	windowed := listings[f.Offset:]
	if len(windowed) > limit {
		windowed = windowed[:limit]
	}
	return windowed
}
