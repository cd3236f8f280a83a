package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	participantUC "github.com/fastygo/choreboard/usecase/participant"
)

func newParticipantsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "participants",
		Aliases: []string{"people"},
		Short:   "Manage the household roster",
	}

	useCase := func(cmd *cobra.Command) (*participantUC.UseCase, error) {
		store, err := a.open(cmd.Context())
		if err != nil {
			return nil, err
		}
		return participantUC.New(store.Participants, a.logger), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List participants in name order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := useCase(cmd)
			if err != nil {
				return err
			}
			participants, err := uc.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(participants) == 0 {
				renderEmpty(out, "No participants yet. Add one with 'choresctl participants add NAME'.")
				return nil
			}
			rows := make([][]string, 0, len(participants))
			for _, p := range participants {
				rows = append(rows, []string{p.Name, p.ID})
			}
			renderTable(out, []string{"NAME", "ID"}, rows)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Add a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := useCase(cmd)
			if err != nil {
				return err
			}
			p, err := uc.Add(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", p.Name, p.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import FILE",
		Short: "Import participants from a YAML roster",
		Long: `Import participants from a YAML file of the form:

  participants:
    - name: Ana
    - name: Bruno

Names already on the roster are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open roster: %w", err)
			}
			defer f.Close()

			uc, err := useCase(cmd)
			if err != nil {
				return err
			}
			added, err := uc.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d participant(s)\n", len(added))
			return nil
		},
	})

	return cmd
}
