// Package events publishes site lifecycle events to Redis Streams so other
// services can react to configuration changes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// StreamName is the Redis stream site events are appended to.
const StreamName = "site-events"

// EventType represents the type of site event.
type EventType string

const (
	// SiteEnabled indicates a site was switched on.
	SiteEnabled EventType = "SITE_ENABLED"
	// SiteDisabled indicates a site was switched off.
	SiteDisabled EventType = "SITE_DISABLED"
	// SitesImported indicates a bulk import changed the configured set.
	SitesImported EventType = "SITES_IMPORTED"
)

// SiteEvent is the envelope for all site-related events.
type SiteEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	SiteID    string    `json:"site_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// TogglePayload carries the detail of an enable/disable event.
type TogglePayload struct {
	SiteName string `json:"site_name"`
	Enabled  bool   `json:"enabled"`
}

// ImportPayload carries the detail of a bulk import event.
type ImportPayload struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}
