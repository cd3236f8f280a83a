package domain

import "time"

// Completion is one entry of the append-only completion log.
type Completion struct {
	ID            string    `json:"id"`
	TaskID        string    `json:"task_id"`
	CompletedBy   string    `json:"completed_by"`
	ParticipantID *string   `json:"participant_id"`
	CompletedAt   time.Time `json:"completed_at"`
}

// HasParticipant reports whether the completion references a participant.
func (c *Completion) HasParticipant() bool {
	return c != nil && c.ParticipantID != nil && *c.ParticipantID != ""
}

// CompletionView is a completion joined with its task title and participant name.
// Either joined field is empty when the referenced row is missing.
type CompletionView struct {
	Completion
	TaskTitle       string `json:"task_title,omitempty"`
	ParticipantName string `json:"participant_name,omitempty"`
}

// CompletionEvent is published after a completion has been stored.
type CompletionEvent struct {
	CompletionID  string    `json:"completion_id"`
	TaskID        string    `json:"task_id"`
	TaskTitle     string    `json:"task_title"`
	ParticipantID string    `json:"participant_id"`
	CompletedBy   string    `json:"completed_by"`
	CompletedAt   time.Time `json:"completed_at"`
	Archived      bool      `json:"archived"`
}
