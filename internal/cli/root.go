package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pinka12/amdash/internal/api"
	"github.com/pinka12/amdash/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootState carries the loaded configuration and the backend client from
// the root command's PersistentPreRunE into the subcommands.
type rootState struct {
	cfg       config.Config
	client    *api.Client
	logCloser io.Closer
}

// NewRootCmd creates the root Cobra command for the amdash CLI.
// It wires up configuration loading, logging, tracing, and subcommands.
func NewRootCmd(ver string) *cobra.Command {
	st := &rootState{}

	cmd := &cobra.Command{
		Use:     "amdash",
		Short:   "Manager assessment dashboard",
		Long:    "amdash: a terminal dashboard for 360-degree manager assessment data",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// CLI flags override environment variables and config file.
			if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
				cfg.API.BaseURL = baseURL
			}
			if cmd.Flags().Changed("page-size") {
				cfg.UI.PageSize, _ = cmd.Flags().GetInt("page-size")
			}

			st.cfg = cfg
			st.logCloser = setupLogging(cmd, cfg)
			st.client = api.NewClient(cfg.API.BaseURL, cfg.API.Timeout.Std())
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if st.logCloser != nil {
				return st.logCloser.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to the console")
	cmd.PersistentFlags().String("config", "", "path to config file (default: user config dir)")
	cmd.PersistentFlags().String("base-url", "", "backend base URL (overrides config and env)")
	cmd.PersistentFlags().Int("page-size", 0, "items per page for listings")

	cmd.AddCommand(
		newDashboardCmd(st),
		newManagersCmd(st),
		newStatsCmd(st),
		newHierarchyCmd(st),
		newReportCmd(st),
		newExportCmd(st),
		newMigrateCmd(st),
		newHealthCmd(st),
	)

	return cmd
}

const rootCmdExample = `  # Open the interactive dashboard
  amdash dashboard

  # List managers sorted by overall score, worst first
  amdash managers list --sort overall:asc

  # Search within a department
  amdash managers list --department Engineering --search smith

  # Show one manager with assessment history
  amdash managers show "Jane Smith" --include-assessments

  # Company-wide stats, refreshed every 30 seconds
  amdash stats --watch

  # Reporting structure as a tree
  amdash hierarchy --tree

  # Generate a report and wait for it
  amdash report generate "Jane Smith" --wait

  # Export all managers to CSV
  amdash export csv -o managers.csv`
