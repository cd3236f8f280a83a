// Package cli implements choresctl, the admin command line for the chore board.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/choreboard/internal/config"
	"github.com/fastygo/choreboard/internal/storage"
	"github.com/fastygo/choreboard/pkg/logger"
)

// app holds what the subcommands share. The store opens lazily so that commands
// which never touch it (migrate on a bolt setup, help) do not create files.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *storage.Storage
	logLevel string
}

func (a *app) open(ctx context.Context) (*storage.Storage, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := storage.Open(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// NewRootCommand builds the command tree. Configuration comes from the same
// environment the server reads.
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "choresctl",
		Short: "Administer the household chore board",
		Long: `choresctl reads and maintains the chore board store directly.

It uses the server configuration (environment variables or .env), so STORE_DRIVER,
DATABASE_URL, BOLT_PATH and APP_TIMEZONE select the same data the API serves.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Config{Level: a.logLevel, Encoding: "console", Output: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = log.Named("choresctl")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		newParticipantsCommand(a),
		newTasksCommand(a),
		newSummaryCommand(a),
		newDigestCommand(a),
		newMigrateCommand(a),
	)
	return root, a
}

// Execute runs choresctl with os.Args and reports errors on errOut.
func Execute(ctx context.Context, errOut io.Writer) error {
	root, a := newRootCommand()
	// PersistentPostRunE is skipped when a command fails.
	defer a.close()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return err
	}
	return nil
}
