package cli

import (
	"github.com/spf13/cobra"

	"github.com/fastygo/choreboard/domain"
	taskUC "github.com/fastygo/choreboard/usecase/task"
)

func (a *app) taskUseCase(cmd *cobra.Command) (*taskUC.UseCase, error) {
	store, err := a.open(cmd.Context())
	if err != nil {
		return nil, err
	}
	return taskUC.New(store.Tasks, store.Participants, store.Completions, a.cfg.Location, a.logger), nil
}

func newTasksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect tasks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active tasks by next due time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := a.taskUseCase(cmd)
			if err != nil {
				return err
			}
			tasks, err := uc.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				renderEmpty(out, "No active tasks.")
				return nil
			}
			renderTable(out, []string{"TITLE", "SCHEDULE", "LAST DONE", "BY", "NEXT DUE"}, taskRows(tasks, a))
			return nil
		},
	})

	return cmd
}

func taskRows(tasks []domain.TaskWithLast, a *app) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		lastAt, lastBy := "-", "-"
		if t.LastCompletion != nil {
			lastAt = formatTime(&t.LastCompletion.CompletedAt, a.cfg.Location)
			lastBy = t.LastCompletion.CompletedBy
		}
		rows = append(rows, []string{
			t.Title,
			schedule(t.Task),
			lastAt,
			lastBy,
			formatTime(t.NextDue, a.cfg.Location),
		})
	}
	return rows
}
