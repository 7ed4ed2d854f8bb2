// Package audit records every listing mutation. Publishers are append-only
// sinks; the service emits an event after each successful create, update or
// delete and treats publish failures as non-fatal.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Action identifies the mutation type.
type Action string

const (
	ActionCreated Action = "listing.created"
	ActionUpdated Action = "listing.updated"
	ActionDeleted Action = "listing.deleted"
)

// Event is one recorded mutation.
type Event struct {
	Action    Action    `json:"action"`
	ListingID int64     `json:"listing_id"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes audit events to the structured log. It is the default
// sink when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "audit event",
		"action", string(event.Action),
		"listing_id", event.ListingID,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp.Format(time.RFC3339Nano),
	)
	return nil
}
