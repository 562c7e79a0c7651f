package models

import "time"

type Activity struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	LeadID      *int      `json:"leadId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
