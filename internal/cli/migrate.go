package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/choreboard/internal/config"
	pgInfra "github.com/fastygo/choreboard/internal/infrastructure/postgres"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations",
		Long: `Apply pending migrations from MIGRATIONS_PATH to the configured Postgres database,
regardless of RUN_MIGRATIONS. The bolt driver has no schema and needs none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfg.Store.Driver != config.DriverPostgres {
				fmt.Fprintf(out, "store driver %q has no migrations\n", a.cfg.Store.Driver)
				return nil
			}
			if err := pgInfra.RunMigrations(a.cfg, true, a.logger); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(out, "migrations applied")
			return nil
		},
	}
}
