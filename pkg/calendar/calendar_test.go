package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestDayKeyUsesHomeTimezone(t *testing.T) {
	saoPaulo := mustLoad(t, "America/Sao_Paulo")

	// 01:30 UTC on the 2nd is still the evening of the 1st in Sao Paulo (UTC-3).
	instant := time.Date(2024, time.March, 2, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-01", DayKey(instant, saoPaulo))
	assert.Equal(t, "2024-03-02", DayKey(instant, time.UTC))
	assert.Equal(t, "2024-03-02", DayKey(instant, nil))
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		delta int
		want  string
	}{
		{"same day", "2024-05-10", 0, "2024-05-10"},
		{"month rollover", "2024-01-31", 1, "2024-02-01"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"non leap", "2023-02-28", 1, "2023-03-01"},
		{"year rollover", "2023-12-31", 1, "2024-01-01"},
		{"backwards across year", "2024-01-01", -1, "2023-12-31"},
		{"backwards a month", "2024-03-01", -30, "2024-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddDays(tt.key, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddDaysRejectsMalformedKey(t *testing.T) {
	_, err := AddDays("2024/01/01", 1)
	assert.Error(t, err)
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"leap year clamp",
			time.Date(2024, time.January, 31, 9, 15, 0, 0, time.UTC),
			time.Date(2024, time.February, 29, 9, 15, 0, 0, time.UTC),
		},
		{
			"non leap clamp",
			time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"thirty day month",
			time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			"no clamp needed",
			time.Date(2024, time.May, 15, 18, 0, 0, 0, time.UTC),
			time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			"year rollover",
			time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(AddMonths(tt.in, 1)), "got %s", AddMonths(tt.in, 1))
		})
	}
}

func TestAddMonthsKeepsLocation(t *testing.T) {
	loc := mustLoad(t, "America/Sao_Paulo")
	in := time.Date(2024, time.January, 31, 22, 0, 0, 0, loc)

	got := AddMonths(in, 1)

	assert.Equal(t, loc, got.Location())
	assert.Equal(t, "2024-02-29", DayKey(got, loc))
	assert.Equal(t, 22, got.Hour())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
	assert.Equal(t, 30, DaysInMonth(2024, time.November))
}

func TestRange(t *testing.T) {
	keys, err := Range("2024-02-27", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, keys)
}

func TestStartOfDayAndMidnight(t *testing.T) {
	loc := mustLoad(t, "America/Sao_Paulo")
	instant := time.Date(2024, time.March, 2, 1, 30, 0, 0, time.UTC)

	start := StartOfDay(instant, loc)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), start)

	midnight, err := Midnight("2024-03-01", loc)
	require.NoError(t, err)
	assert.True(t, start.Equal(midnight))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "05/03", Label("2024-03-05"))
	assert.Equal(t, "garbage", Label("garbage"))
}
