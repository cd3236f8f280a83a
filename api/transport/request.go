package transport

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title          string      `json:"title"`
	IsOneAndDone   bool        `json:"isOneAndDone"`
	RecurrenceType *string     `json:"recurrenceType"`
	RecurrenceDays WeekdayList `json:"recurrenceDays"`
}

// RecurrenceTypeValue returns the requested type, empty when absent or null.
func (r CreateTaskRequest) RecurrenceTypeValue() string {
	if r.RecurrenceType == nil {
		return ""
	}
	return *r.RecurrenceType
}

// CompleteTaskRequest is the body of POST /api/tasks/{id}/complete.
type CompleteTaskRequest struct {
	ParticipantID string `json:"participantId"`
}

// WeekdayList decodes a lenient list of weekday numbers. Elements may be integers or
// strings holding integers; anything else is dropped rather than rejected. A value that is
// not an array decodes to an empty list.
type WeekdayList []int

func (w *WeekdayList) UnmarshalJSON(data []byte) error {
	*w = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	days := make(WeekdayList, 0, len(raw))
	for _, item := range raw {
		if day, ok := weekday(item); ok {
			days = append(days, day)
		}
	}
	*w = days
	return nil
}

func weekday(item json.RawMessage) (int, bool) {
	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	switch val := v.(type) {
	case json.Number:
		num = val
	case string:
		num = json.Number(strings.TrimSpace(val))
	default:
		return 0, false
	}

	f, err := strconv.ParseFloat(string(num), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
