package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pinka12/amdash/internal/api"
	"github.com/pinka12/amdash/internal/cli/pagination"
	"github.com/pinka12/amdash/internal/logging"
	"github.com/pinka12/amdash/internal/tui"
)

// newDashboardCmd creates the dashboard command: the interactive TUI in a
// terminal, a one-shot plain snapshot otherwise.
func newDashboardCmd(st *rootState) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive assessment dashboard",
		Long: "Open the full-screen dashboard: summary stats above a paginated,\n" +
			"sortable, searchable managers table. Falls back to a plain snapshot\n" +
			"when stdout is not a terminal or --plain is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			warnOnIncompatibleBackend(cmd, st)

			query := newQuery(st)
			if plain || !tui.IsTTY(cmd.OutOrStdout()) || !isTerminal(os.Stdin) {
				return runDashboardSnapshot(cmd, st, query)
			}

			model := tui.NewDashboardModel(ctx, st.client, query, st.cfg.UI.RefreshInterval.Std())
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running dashboard: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "force plain text output instead of the TUI")
	return cmd
}

// newQuery builds the listing query-state controller from config.
func newQuery(st *rootState) *pagination.Query {
	q := pagination.NewQuery(st.cfg.UI.PageSize)
	q.SortResetsPage = st.cfg.UI.SortResetsPage
	return q
}

// runDashboardSnapshot fetches stats and the first page concurrently and
// prints them once.
func runDashboardSnapshot(cmd *cobra.Command, st *rootState, query *pagination.Query) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	var (
		stats api.StatsResult
		page  api.PageResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = st.client.GetStats(gctx)
		return err
	})
	seq := query.BeginFetch()
	params := query.Params()
	g.Go(func() error {
		var err error
		page, err = st.client.ListManagers(gctx, params)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	query.Reconcile(seq, page.Total)

	log.Debug().Ctx(ctx).Int("managers", len(page.Managers)).Int("total", page.Total).Msg("dashboard snapshot")

	out := cmd.OutOrStdout()
	renderStats(out, stats)
	fmt.Fprintln(out)
	return renderManagersTable(out, page.Managers, query.Meta())
}

// warnOnIncompatibleBackend performs the version handshake and warns on
// stderr without failing: an incompatible backend may still serve most
// endpoints.
func warnOnIncompatibleBackend(cmd *cobra.Command, st *rootState) {
	version, compatible, err := st.client.CheckVersion(cmd.Context())
	if err != nil {
		logger.Warn().Err(err).Msg("backend health check failed")
		return
	}
	if !compatible {
		cmd.PrintErrf("Warning: backend version %s is outside the supported range %s\n",
			version, api.SupportedBackends)
	}
}
