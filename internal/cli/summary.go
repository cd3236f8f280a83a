package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	summaryUC "github.com/fastygo/choreboard/usecase/summary"
)

func newSummaryCommand(a *app) *cobra.Command {
	var (
		period string
		asJSON bool
		perDay bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show completions per participant over the last week or month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			uc := summaryUC.New(store.Participants, store.Completions, a.cfg.Location, a.logger)
			summary, err := uc.Summary(cmd.Context(), period)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			fmt.Fprintf(out, "%s summary %s to %s, %d completion(s)\n",
				summary.Period, summary.Range.StartDay, summary.Range.EndDay, summary.Total)

			if len(summary.Participants) == 0 {
				renderEmpty(out, "Nobody completed anything in this window.")
			} else {
				rows := make([][]string, 0, len(summary.Participants))
				for _, p := range summary.Participants {
					top := "-"
					if len(p.Tasks) > 0 {
						top = p.Tasks[0].Title
					}
					rows = append(rows, []string{p.Name, strconv.Itoa(p.Count), strconv.Itoa(p.CurrentStreak), top})
				}
				renderTable(out, []string{"PARTICIPANT", "DONE", "STREAK", "TOP TASK"}, rows)
			}

			if perDay {
				rows := make([][]string, 0, len(summary.Days))
				for _, d := range summary.Days {
					leader := "-"
					if len(d.Participants) > 0 {
						leader = d.Participants[0].Name
					}
					rows = append(rows, []string{d.Label, strconv.Itoa(d.Count), leader})
				}
				renderTable(out, []string{"DAY", "DONE", "LEADER"}, rows)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "weekly", "window length: weekly or monthly")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&perDay, "days", false, "also print the per-day breakdown")
	return cmd
}
