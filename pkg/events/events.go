package events

import "time"

// Payload shapes for server-emitted envelopes. These are small and
// versionable; changes should be additive so older clients keep working.

// CallEvent is the data of call_created, call_scheduled, and
// call_updated envelopes.
type CallEvent struct {
	ID          int        `json:"id"`
	LeadID      int        `json:"leadId"`
	Status      string     `json:"status"`
	CallerName  string     `json:"callerName,omitempty"`
	LeadName    string     `json:"leadName,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// ActivityEvent is the data of activity_created envelopes.
type ActivityEvent struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
