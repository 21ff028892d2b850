package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// newMigrateCmd creates the migrate command. Migration rewrites backend
// data, so an interactive confirmation guards it unless --yes is given.
func newMigrateCmd(st *rootState) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate legacy assessment data on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				result := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(),
					"Migrate legacy assessment data? This rewrites backend records.")
				if result.Cancelled {
					return errors.New("could not read confirmation")
				}
				if !result.Accepted {
					cmd.Println("Migration aborted.")
					return nil
				}
			}

			result, err := st.client.Migrate(cmd.Context())
			if err != nil {
				return err
			}

			logger.Info().Ctx(cmd.Context()).
				Int("created", result.Created).
				Int("updated", result.Updated).
				Msg("migration finished")
			cmd.Printf("Migration complete: %d created, %d updated, %d total.\n",
				result.Created, result.Updated, result.Total)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
