package domain

import (
	"strings"
	"time"
)

// Period selects the length of the summary window.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// PeriodDays maps each period to the number of trailing calendar days it covers.
var PeriodDays = map[Period]int{
	PeriodWeekly:  7,
	PeriodMonthly: 30,
}

// ParsePeriod defaults to weekly for an empty value.
func ParsePeriod(raw string) (Period, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PeriodWeekly, nil
	}
	period := Period(raw)
	if _, ok := PeriodDays[period]; !ok {
		return "", ErrInvalidPeriod
	}
	return period, nil
}

// TaskCount is the number of completions of one task title.
type TaskCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// ParticipantTally is a participant's activity within one day bucket.
type ParticipantTally struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Count int         `json:"count"`
	Tasks []TaskCount `json:"tasks"`
}

// SummaryDay is one calendar day of the reporting window.
type SummaryDay struct {
	Date         string             `json:"date"`
	Label        string             `json:"label"`
	Count        int                `json:"count"`
	Tasks        []TaskCount        `json:"tasks"`
	Participants []ParticipantTally `json:"participants"`
}

// SummaryParticipant holds a participant's totals over the whole window.
type SummaryParticipant struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Count         int         `json:"count"`
	CurrentStreak int         `json:"current_streak"`
	Tasks         []TaskCount `json:"tasks"`
}

// SummaryRange reports the window both as instants and as day keys.
type SummaryRange struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	StartDay string    `json:"start_day"`
	EndDay   string    `json:"end_day"`
}

// Summary is the aggregated view of completions over a window.
type Summary struct {
	Period       Period               `json:"period"`
	Range        SummaryRange         `json:"range"`
	Total        int                  `json:"total"`
	Participants []SummaryParticipant `json:"participants"`
	Days         []SummaryDay         `json:"days"`
}

// Digest lists the tasks due by the end of a given day.
type Digest struct {
	Day   string         `json:"day"`
	Tasks []TaskWithLast `json:"tasks"`
}
