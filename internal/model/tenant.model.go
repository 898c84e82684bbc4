package model

import "time"

// Tenant is the "model" partition every other entity belongs to.
type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
