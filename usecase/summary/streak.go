package summary

import (
	"time"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/pkg/calendar"
)

// DaySet is the set of distinct day keys on which a participant completed anything.
type DaySet map[string]struct{}

// ComputeStreak counts consecutive days with completions, anchored on today when today is in
// days and on yesterday otherwise. A participant with neither has no streak.
func ComputeStreak(days DaySet, today string) int {
	cursor := today
	if _, ok := days[cursor]; !ok {
		yesterday, err := calendar.AddDays(today, -1)
		if err != nil {
			return 0
		}
		if _, ok := days[yesterday]; !ok {
			return 0
		}
		cursor = yesterday
	}

	streak := 0
	for {
		if _, ok := days[cursor]; !ok {
			return streak
		}
		streak++
		prev, err := calendar.AddDays(cursor, -1)
		if err != nil {
			return streak
		}
		cursor = prev
	}
}

// StreakDays groups completion history into per-participant day sets. Completions without a
// participant are skipped.
func StreakDays(history []domain.CompletionView, loc *time.Location) map[string]DaySet {
	out := make(map[string]DaySet)
	for _, c := range history {
		if !c.HasParticipant() {
			continue
		}
		id := *c.ParticipantID
		set, ok := out[id]
		if !ok {
			set = make(DaySet)
			out[id] = set
		}
		set[calendar.DayKey(c.CompletedAt, loc)] = struct{}{}
	}
	return out
}

// AttachStreaks fills CurrentStreak on every global participant entry of summary.
// Per-day entries never carry a streak.
func AttachStreaks(summary *domain.Summary, history []domain.CompletionView, today string, loc *time.Location) {
	days := StreakDays(history, loc)
	for i := range summary.Participants {
		summary.Participants[i].CurrentStreak = ComputeStreak(days[summary.Participants[i].ID], today)
	}
}
