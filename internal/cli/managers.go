package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pinka12/amdash/internal/cli/pagination"
)

// newManagersCmd creates the managers command group with list and show
// subcommands.
func newManagersCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "managers",
		Short: "Browse manager assessment summaries",
	}
	cmd.AddCommand(newManagersListCmd(st), newManagersShowCmd(st))
	return cmd
}

func newManagersListCmd(st *rootState) *cobra.Command {
	var (
		page       int
		sortExpr   string
		search     string
		department string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List managers, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := newQuery(st)
			query.Page = page
			if err := query.Validate(); err != nil {
				return err
			}

			if sortExpr != "" {
				field, order, err := pagination.ParseSortExpression(sortExpr)
				if err != nil {
					return err
				}
				query.SortField = field
				query.SortOrder = order
			}
			query.SetFilter("search", search)
			query.SetFilter("department", department)

			seq := query.BeginFetch()
			result, err := st.client.ListManagers(cmd.Context(), query.Params())
			if err != nil {
				return err
			}
			query.Reconcile(seq, result.Total)

			switch output {
			case "json":
				return renderJSON(cmd.OutOrStdout(), struct {
					Managers   any `json:"managers"`
					Pagination any `json:"pagination"`
				}{result.Managers, query.Meta()})
			case "table":
				return renderManagersTable(cmd.OutOrStdout(), result.Managers, query.Meta())
			default:
				return fmt.Errorf("unsupported output format: %s (supported: table, json)", output)
			}
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().StringVar(&sortExpr, "sort", "",
		"sort expression, field[:asc|desc] (fields: "+sortFieldList()+")")
	cmd.Flags().StringVar(&search, "search", "", "substring match on manager name")
	cmd.Flags().StringVar(&department, "department", "", "exact department filter")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}

func newManagersShowCmd(st *rootState) *cobra.Command {
	var (
		includeAssessments bool
		output             string
	)

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show one manager's assessment summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := st.client.GetManager(cmd.Context(), args[0], includeAssessments)
			if err != nil {
				return err
			}

			switch output {
			case "json":
				return renderJSON(cmd.OutOrStdout(), detail)
			case "table":
				renderManagerDetail(cmd.OutOrStdout(), detail)
				return nil
			default:
				return fmt.Errorf("unsupported output format: %s (supported: table, json)", output)
			}
		},
	}

	cmd.Flags().BoolVar(&includeAssessments, "include-assessments", false,
		"include individual assessment history")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}

func sortFieldList() string {
	return strings.Join(pagination.ValidSortFields(), ", ")
}
