package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	redisInfra "github.com/fastygo/choreboard/internal/infrastructure/redis"
	redisRepo "github.com/fastygo/choreboard/repository/redis"
	"github.com/fastygo/choreboard/usecase"
	reminderUC "github.com/fastygo/choreboard/usecase/reminder"
)

func newDigestCommand(a *app) *cobra.Command {
	var publish bool

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Show the tasks due by the end of today",
		Long: `Show the tasks due by the end of today in the home timezone, overdue ones included.

With --publish the digest is also sent to the configured Redis channel, the same
way the scheduled reminder does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := a.taskUseCase(cmd)
			if err != nil {
				return err
			}

			var publisher usecase.EventPublisher = usecase.NopPublisher{}
			if publish {
				if !a.cfg.RedisEnabled() {
					return fmt.Errorf("--publish needs REDIS_URL")
				}
				client, err := redisInfra.NewClient(ctx, a.cfg.Redis)
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				defer client.Close()
				publisher = redisRepo.NewEventPublisher(client, a.cfg.Redis.ChannelPrefix)
			}

			uc := reminderUC.New(tasks, publisher, a.cfg.Location, a.logger)
			digest, err := uc.Publish(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(digest.Tasks) == 0 {
				renderEmpty(out, fmt.Sprintf("Nothing due on %s.", digest.Day))
				return nil
			}
			fmt.Fprintf(out, "Due by end of %s:\n", digest.Day)
			renderTable(out, []string{"TITLE", "SCHEDULE", "LAST DONE", "BY", "NEXT DUE"}, taskRows(digest.Tasks, a))
			if publish {
				fmt.Fprintln(out, "digest published")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&publish, "publish", false, "send the digest to the event channel")
	return cmd
}
