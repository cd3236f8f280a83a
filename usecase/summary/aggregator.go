package summary

import (
	"sort"
	"time"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/pkg/calendar"
)

const (
	untitledTask       = "Untitled task"
	unknownParticipant = "Unknown"
)

// Window is a run of trailing calendar days ending today, inclusive.
type Window struct {
	Period domain.Period
	Days   []string  // day keys, oldest first
	Start  time.Time // local midnight of the first day
	End    time.Time // the moment the window was built
}

// NewWindow builds the window for period as seen at now in loc.
func NewWindow(period domain.Period, now time.Time, loc *time.Location) (Window, error) {
	n, ok := domain.PeriodDays[period]
	if !ok {
		return Window{}, domain.ErrInvalidPeriod
	}
	if loc == nil {
		loc = time.UTC
	}
	today := calendar.DayKey(now, loc)
	first, err := calendar.AddDays(today, -(n - 1))
	if err != nil {
		return Window{}, err
	}
	days, err := calendar.Range(first, n)
	if err != nil {
		return Window{}, err
	}
	start, err := calendar.Midnight(first, loc)
	if err != nil {
		return Window{}, err
	}
	return Window{Period: period, Days: days, Start: start, End: now}, nil
}

// Today is the last day key of the window.
func (w Window) Today() string {
	if len(w.Days) == 0 {
		return ""
	}
	return w.Days[len(w.Days)-1]
}

// taskTally counts completions per task title, remembering first-seen order.
type taskTally struct {
	index map[string]int
	items []domain.TaskCount
}

func newTaskTally() *taskTally {
	return &taskTally{index: make(map[string]int), items: make([]domain.TaskCount, 0)}
}

func (t *taskTally) add(title string) {
	if i, ok := t.index[title]; ok {
		t.items[i].Count++
		return
	}
	t.index[title] = len(t.items)
	t.items = append(t.items, domain.TaskCount{Title: title, Count: 1})
}

func (t *taskTally) sorted() []domain.TaskCount {
	out := make([]domain.TaskCount, len(t.items))
	copy(out, t.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

type participantTally struct {
	id    string
	name  string
	count int
	tasks *taskTally
}

func newParticipantTally(id, name string) *participantTally {
	return &participantTally{id: id, name: name, tasks: newTaskTally()}
}

// participantIndex is an insertion-ordered map of participant tallies.
type participantIndex struct {
	index map[string]int
	items []*participantTally
}

func newParticipantIndex() *participantIndex {
	return &participantIndex{index: make(map[string]int)}
}

func (p *participantIndex) get(id, name string) *participantTally {
	if i, ok := p.index[id]; ok {
		return p.items[i]
	}
	tally := newParticipantTally(id, name)
	p.index[id] = len(p.items)
	p.items = append(p.items, tally)
	return tally
}

type dayBucket struct {
	key          string
	count        int
	tasks        *taskTally
	participants *participantIndex
}

// aggregator accumulates completions into day and participant buckets.
type aggregator struct {
	loc          *time.Location
	days         map[string]*dayBucket
	order        []*dayBucket
	participants *participantIndex
}

func newAggregator(window Window, roster []domain.Participant, loc *time.Location) *aggregator {
	a := &aggregator{
		loc:          loc,
		days:         make(map[string]*dayBucket, len(window.Days)),
		order:        make([]*dayBucket, 0, len(window.Days)),
		participants: newParticipantIndex(),
	}
	for _, key := range window.Days {
		bucket := &dayBucket{key: key, tasks: newTaskTally(), participants: newParticipantIndex()}
		a.days[key] = bucket
		a.order = append(a.order, bucket)
	}
	for _, p := range roster {
		a.participants.get(p.ID, p.Name)
	}
	return a
}

// record applies one completion to every counter it touches: the day total, the day's task
// tally, the day's participant tally and the window-wide participant tally.
func (a *aggregator) record(c domain.CompletionView) {
	title := c.TaskTitle
	if title == "" {
		title = untitledTask
	}
	var participantID, participantName string
	if c.HasParticipant() {
		participantID = *c.ParticipantID
		participantName = c.ParticipantName
		if participantName == "" {
			participantName = unknownParticipant
		}
	}

	if day, ok := a.days[calendar.DayKey(c.CompletedAt, a.loc)]; ok {
		day.count++
		day.tasks.add(title)
		if participantID != "" {
			dp := day.participants.get(participantID, participantName)
			dp.count++
			dp.tasks.add(title)
		}
	}

	if participantID != "" {
		gp := a.participants.get(participantID, participantName)
		gp.count++
		gp.tasks.add(title)
	}
}

func (a *aggregator) result(window Window) domain.Summary {
	summary := domain.Summary{
		Period:       window.Period,
		Participants: make([]domain.SummaryParticipant, 0, len(a.participants.items)),
		Days:         make([]domain.SummaryDay, 0, len(a.order)),
	}
	if len(window.Days) > 0 {
		summary.Range = domain.SummaryRange{
			Start:    window.Start,
			End:      window.End,
			StartDay: window.Days[0],
			EndDay:   window.Today(),
		}
	}

	for _, day := range a.order {
		participants := make([]domain.ParticipantTally, 0, len(day.participants.items))
		for _, p := range day.participants.items {
			participants = append(participants, domain.ParticipantTally{
				ID:    p.id,
				Name:  p.name,
				Count: p.count,
				Tasks: p.tasks.sorted(),
			})
		}
		sort.SliceStable(participants, func(i, j int) bool {
			return participants[i].Count > participants[j].Count
		})
		summary.Days = append(summary.Days, domain.SummaryDay{
			Date:         day.key,
			Label:        calendar.Label(day.key),
			Count:        day.count,
			Tasks:        day.tasks.sorted(),
			Participants: participants,
		})
	}

	for _, p := range a.participants.items {
		summary.Participants = append(summary.Participants, domain.SummaryParticipant{
			ID:    p.id,
			Name:  p.name,
			Count: p.count,
			Tasks: p.tasks.sorted(),
		})
		// Completions without a participant never reach this sum.
		summary.Total += p.count
	}
	return summary
}

// Summarize reduces completions into per-day and per-participant statistics over window.
// Every window day and every roster participant appears in the result, even with zero
// completions. Completions outside the window only count toward participant totals when
// the caller passes them in, so callers should pre-filter to the window.
func Summarize(roster []domain.Participant, completions []domain.CompletionView, window Window, loc *time.Location) domain.Summary {
	if loc == nil {
		loc = time.UTC
	}
	agg := newAggregator(window, roster, loc)
	for _, c := range completions {
		agg.record(c)
	}
	return agg.result(window)
}
