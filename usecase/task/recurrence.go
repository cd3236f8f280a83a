package task

import (
	"sort"
	"time"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/pkg/calendar"
)

// NextDue computes when a task becomes due again. last is the time of the most recent
// completion, nil when the task was never completed. Weekday and calendar-day arithmetic
// happen in loc. The result is nil for tasks that do not recur.
func NextDue(task domain.Task, last *time.Time, now time.Time, loc *time.Location) *time.Time {
	if task.IsOneAndDone || task.RecurrenceType == domain.RecurrenceNone {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	if last == nil {
		// Never completed: due right away, except that a weekday rule still has to land
		// on one of its weekdays (today included).
		if task.RecurrenceType == domain.RecurrenceWeekly && len(task.RecurrenceDays) > 0 {
			return nextFromWeekdays(now.In(loc), task.RecurrenceDays, true)
		}
		switch task.RecurrenceType {
		case domain.RecurrenceDaily, domain.RecurrenceWeekly, domain.RecurrenceMonthly:
			due := now
			return &due
		default:
			return nil
		}
	}

	base := last.In(loc)
	var due time.Time
	switch task.RecurrenceType {
	case domain.RecurrenceDaily:
		due = base.AddDate(0, 0, 1)
	case domain.RecurrenceWeekly:
		if len(task.RecurrenceDays) > 0 {
			return nextFromWeekdays(base, task.RecurrenceDays, false)
		}
		due = base.AddDate(0, 0, 7)
	case domain.RecurrenceMonthly:
		due = calendar.AddMonths(base, 1)
	default:
		return nil
	}
	return &due
}

// nextFromWeekdays finds the first instant on or after base (strictly after base's day
// unless includeToday) whose weekday is in days. The wall clock of base is kept.
func nextFromWeekdays(base time.Time, days []int, includeToday bool) *time.Time {
	normalized := NormalizeWeekdays(days)
	if len(normalized) == 0 {
		return nil
	}
	allowed := make(map[int]struct{}, len(normalized))
	for _, d := range normalized {
		allowed[d] = struct{}{}
	}

	start := 1
	if includeToday {
		start = 0
	}
	baseDay := int(base.Weekday())
	for offset := start; offset <= 7; offset++ {
		if _, ok := allowed[(baseDay+offset)%7]; ok {
			due := base.AddDate(0, 0, offset)
			return &due
		}
	}
	due := base.AddDate(0, 0, 7)
	return &due
}

// NormalizeWeekdays drops values outside 0..6 (0 is Sunday), removes duplicates and sorts.
func NormalizeWeekdays(days []int) []int {
	seen := make(map[int]struct{}, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// SortByNextDue orders tasks by next due time ascending. Tasks without one go last; ties
// keep their input order.
func SortByNextDue(tasks []domain.TaskWithLast) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].NextDue, tasks[j].NextDue
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
