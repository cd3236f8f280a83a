package domain

import "time"

// Participant is a household member who completes tasks.
type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
