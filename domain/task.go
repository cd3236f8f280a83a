package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// RecurrenceType is the repeat policy of a task. The zero value means the task never recurs.
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = ""
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// ParseRecurrenceType accepts the wire names plus "none" and the empty string.
func ParseRecurrenceType(raw string) (RecurrenceType, error) {
	switch strings.TrimSpace(raw) {
	case "", "none":
		return RecurrenceNone, nil
	case string(RecurrenceDaily):
		return RecurrenceDaily, nil
	case string(RecurrenceWeekly):
		return RecurrenceWeekly, nil
	case string(RecurrenceMonthly):
		return RecurrenceMonthly, nil
	default:
		return RecurrenceNone, ErrInvalidRecurrence
	}
}

func (r RecurrenceType) MarshalJSON() ([]byte, error) {
	if r == RecurrenceNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

func (r *RecurrenceType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RecurrenceNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseRecurrenceType(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Task is a household chore, either recurring or one-and-done.
type Task struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	IsOneAndDone   bool           `json:"is_one_and_done"`
	IsArchived     bool           `json:"is_archived"`
	RecurrenceType RecurrenceType `json:"recurrence_type"`
	RecurrenceDays []int          `json:"recurrence_days"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Recurs reports whether the task carries a repeat policy at all.
func (t *Task) Recurs() bool {
	return t != nil && !t.IsOneAndDone && t.RecurrenceType != RecurrenceNone
}

// LastCompletion is the most recent completion of a task as shown in list views.
type LastCompletion struct {
	CompletedBy string    `json:"completed_by"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskWithLast decorates a task with its latest completion and computed next due time.
type TaskWithLast struct {
	Task
	LastCompletion *LastCompletion `json:"last_completion"`
	NextDue        *time.Time      `json:"next_due"`
}
