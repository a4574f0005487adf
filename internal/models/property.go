package models

import "time"

// Property is a cost center that scopes incomes and expenses. Order controls
// display position in listings.
type Property struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Order       int       `json:"order,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
