package models

import "time"

type Call struct {
	ID              int        `json:"id"`
	LeadID          int        `json:"leadId"`
	UserID          int        `json:"userId"`
	Status          string     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
	Outcome         *string    `json:"outcome,omitempty"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
