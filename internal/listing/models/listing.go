// Package models defines the service-listing entity, the request shapes that
// mutate it, and the pure validation and normalization rules applied before
// anything reaches a store.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Listing is a bookable provider offering.
//
// Invariants:
//   - ID and CreatedAt are assigned once by the store and never mutated
//   - Title is never persisted empty or whitespace-only
//   - Phone is only persisted in normalized +digits form (7-15 digits)
//   - AvailableAt always carries a timezone; naive input is defaulted to UTC
type Listing struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Details      *string   `json:"details"`
	ServiceType  string    `json:"service_type"`
	ProviderName *string   `json:"provider_name"`
	Phone        string    `json:"phone"`
	Price        int64     `json:"price"`
	AvailableAt  time.Time `json:"available_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Timestamp decodes JSON timestamps for request bodies. RFC 3339 values keep
// their offset; offset-less values are reinterpreted as UTC rather than
// rejected.
type Timestamp struct {
	time.Time
}

// ErrInvalidTimestamp reports a request timestamp that is not a recognized
// date-time string. The decode boundary matches on it to report the failure
// against the offending field.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// naiveLayout matches ISO 8601 date-times without a zone designator.
// time.Parse tolerates elided fractional seconds, so one layout covers both
// "2026-05-01T10:00:00" and "2026-05-01T10:00:00.123".
const naiveLayout = "2006-01-02T15:04:05"

// ParseTimestamp parses s as RFC 3339, falling back to the naive layout
// interpreted in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(naiveLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: value is not a string", ErrInvalidTimestamp)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
