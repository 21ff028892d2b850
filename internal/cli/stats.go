package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// newStatsCmd creates the stats command. With --watch it re-fetches on the
// configured refresh interval until interrupted.
func newStatsCmd(st *rootState) *cobra.Command {
	var (
		watch  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Company-wide assessment statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			printOnce := func() error {
				stats, err := st.client.GetStats(ctx)
				if err != nil {
					return err
				}
				if output == "json" {
					return renderJSON(out, stats)
				}
				renderStats(out, stats)
				return nil
			}

			if err := printOnce(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			interval := st.cfg.UI.RefreshInterval.Std()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					fmt.Fprintf(out, "\n--- %s ---\n", time.Now().Format(time.TimeOnly))
					if err := printOnce(); err != nil {
						// Keep watching through transient failures.
						cmd.PrintErrf("stats refresh failed: %v\n", err)
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "refresh continuously until interrupted")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}
