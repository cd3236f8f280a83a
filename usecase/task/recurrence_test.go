package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/choreboard/domain"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func at(loc *time.Location, year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

func TestNextDue(t *testing.T) {
	loc := saoPaulo(t)
	friday := at(loc, 2024, time.March, 1, 10, 0)
	monday := at(loc, 2024, time.March, 4, 9, 0)
	wednesday := at(loc, 2024, time.March, 6, 9, 0)

	tests := []struct {
		name string
		task domain.Task
		last *time.Time
		now  time.Time
		want *time.Time
	}{
		{
			name: "one and done never recurs",
			task: domain.Task{IsOneAndDone: true, RecurrenceType: domain.RecurrenceDaily},
			now:  friday,
		},
		{
			name: "no recurrence",
			task: domain.Task{},
			now:  friday,
		},
		{
			name: "unknown recurrence",
			task: domain.Task{RecurrenceType: domain.RecurrenceType("yearly")},
			now:  friday,
		},
		{
			name: "daily never completed is due now",
			task: domain.Task{RecurrenceType: domain.RecurrenceDaily},
			now:  friday,
			want: &friday,
		},
		{
			name: "daily adds one day",
			task: domain.Task{RecurrenceType: domain.RecurrenceDaily},
			last: ptr(at(loc, 2024, time.February, 29, 20, 0)),
			now:  friday,
			want: ptr(at(loc, 2024, time.March, 1, 20, 0)),
		},
		{
			name: "monthly never completed is due now",
			task: domain.Task{RecurrenceType: domain.RecurrenceMonthly},
			now:  friday,
			want: &friday,
		},
		{
			name: "monthly clamps to month end",
			task: domain.Task{RecurrenceType: domain.RecurrenceMonthly},
			last: ptr(at(loc, 2024, time.January, 31, 8, 0)),
			now:  friday,
			want: ptr(at(loc, 2024, time.February, 29, 8, 0)),
		},
		{
			name: "weekly without days never completed is due now",
			task: domain.Task{RecurrenceType: domain.RecurrenceWeekly},
			now:  friday,
			want: &friday,
		},
		{
			name: "weekly without days adds seven days",
			task: domain.Task{RecurrenceType: domain.RecurrenceWeekly},
			last: &friday,
			now:  friday,
			want: ptr(at(loc, 2024, time.March, 8, 10, 0)),
		},
		{
			name: "single weekday completed that day waits a week",
			task: domain.Task{RecurrenceType: domain.RecurrenceWeekly, RecurrenceDays: []int{1}},
			last: &monday,
			now:  monday,
			want: ptr(at(loc, 2024, time.March, 11, 9, 0)),
		},
		{
			name: "never completed on a scheduled weekday is due today",
			task: domain.Task{RecurrenceType: domain.RecurrenceWeekly, RecurrenceDays: []int{1, 3}},
			now:  wednesday,
			want: &wednesday,
		},
		{
			name: "never completed waits for the next scheduled weekday",
			task: domain.Task{RecurrenceType: domain.RecurrenceWeekly, RecurrenceDays: []int{2, 5}},
			now:  monday,
			want: ptr(at(loc, 2024, time.March, 5, 9, 0)),
		},
		{
			name: "completed friday moves to tuesday",
			task: domain.Task{RecurrenceType: domain.RecurrenceWeekly, RecurrenceDays: []int{2, 5}},
			last: &friday,
			now:  friday,
			want: ptr(at(loc, 2024, time.March, 5, 10, 0)),
		},
		{
			name: "weekdays outside range are ignored",
			task: domain.Task{RecurrenceType: domain.RecurrenceWeekly, RecurrenceDays: []int{9, -1}},
			now:  friday,
		},
		{
			name: "weekday resolved in home timezone",
			task: domain.Task{RecurrenceType: domain.RecurrenceWeekly, RecurrenceDays: []int{2}},
			// Monday 22:30 in Sao Paulo is already Tuesday in UTC.
			last: ptr(at(loc, 2024, time.March, 4, 22, 30).UTC()),
			now:  monday,
			want: ptr(at(loc, 2024, time.March, 5, 22, 30)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDue(tt.task, tt.last, tt.now, loc)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNormalizeWeekdays(t *testing.T) {
	assert.Equal(t, []int{0, 2, 6}, NormalizeWeekdays([]int{6, 2, 2, 7, 0, -3}))
	assert.Equal(t, []int{}, NormalizeWeekdays(nil))
}

func TestSortByNextDue(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.TaskWithLast{
		{Task: domain.Task{ID: "none-a"}},
		{Task: domain.Task{ID: "late"}, NextDue: ptr(base.Add(48 * time.Hour))},
		{Task: domain.Task{ID: "none-b"}},
		{Task: domain.Task{ID: "early"}, NextDue: ptr(base)},
		{Task: domain.Task{ID: "early-tie"}, NextDue: ptr(base)},
	}

	SortByNextDue(tasks)

	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"early", "early-tie", "late", "none-a", "none-b"}, ids)
}

func ptr(t time.Time) *time.Time { return &t }
