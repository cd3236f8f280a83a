package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fastygo/choreboard/domain"
)

const (
	colorBorder = "#3A3F55"
	colorHeader = "#A78BFA"
	colorMuted  = "#6D7383"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHeader)).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
)

var weekdayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())
}

func renderEmpty(w io.Writer, msg string) {
	fmt.Fprintln(w, mutedStyle.Render(msg))
}

// schedule describes a task's repeat policy in a single cell.
func schedule(t domain.Task) string {
	if t.IsOneAndDone {
		return "once"
	}
	switch t.RecurrenceType {
	case domain.RecurrenceDaily:
		return "daily"
	case domain.RecurrenceWeekly, domain.RecurrenceMonthly:
		if len(t.RecurrenceDays) == 0 {
			return string(t.RecurrenceType)
		}
		days := make([]string, 0, len(t.RecurrenceDays))
		for _, d := range t.RecurrenceDays {
			if d >= 0 && d < len(weekdayNames) {
				days = append(days, weekdayNames[d])
			}
		}
		return fmt.Sprintf("%s (%s)", t.RecurrenceType, strings.Join(days, ","))
	default:
		return "-"
	}
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("2006-01-02 15:04")
}
