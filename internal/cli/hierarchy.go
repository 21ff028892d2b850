package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pinka12/amdash/internal/tui"
)

// newHierarchyCmd creates the hierarchy command. The default output is the
// flat roots-and-children snapshot rendered as an indented tree; --tree
// asks the backend for the nested snapshot with depth statistics instead.
func newHierarchyCmd(st *rootState) *cobra.Command {
	var (
		nested bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "hierarchy",
		Short: "Reporting structure of assessed managers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if nested {
				tree, err := st.client.GetHierarchyTree(ctx)
				if err != nil {
					return err
				}
				if output == "json" {
					return renderJSON(out, tree)
				}
				fmt.Fprint(out, tui.RenderHierarchyTree(tree))
				return nil
			}

			h, err := st.client.GetHierarchy(ctx)
			if err != nil {
				return err
			}
			if output == "json" {
				return renderJSON(out, h)
			}
			fmt.Fprint(out, tui.RenderHierarchy(h))
			return nil
		},
	}

	cmd.Flags().BoolVar(&nested, "tree", false, "fetch the nested tree with depth statistics")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}
