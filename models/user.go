package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TeamMemberStats aggregates one team member's performance counters
// for the dashboard's team view.
type TeamMemberStats struct {
	UserID         int    `json:"userId"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	CallsCompleted int    `json:"callsCompleted"`
	CallsScheduled int    `json:"callsScheduled"`
	LeadsCreated   int    `json:"leadsCreated"`
	LeadsClosed    int    `json:"leadsClosed"`
}
