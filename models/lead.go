package models

import "time"

type Lead struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	PropertyAddress string    `json:"propertyAddress"`
	Status          string    `json:"status"`
	AssignedTo      *int      `json:"assignedTo,omitempty"`
	Notes           string    `json:"notes"`
	IsDeleted       bool      `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
