package postgres

import (
	"time"

	"github.com/fastygo/choreboard/domain"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullRecurrence(r domain.RecurrenceType) interface{} {
	if r == domain.RecurrenceNone {
		return nil
	}
	return string(r)
}

func weekdaysToDB(days []int) interface{} {
	if len(days) == 0 {
		return nil
	}
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

func weekdaysFromDB(days []int32) []int {
	if len(days) == 0 {
		return nil
	}
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}
