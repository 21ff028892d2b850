package cli

import (
	"github.com/spf13/cobra"
)

// newExportCmd creates the export command group.
func newExportCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export assessment data",
	}
	cmd.AddCommand(newExportCSVCmd(st))
	return cmd
}

func newExportCSVCmd(st *rootState) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export the full manager listing as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := st.client.ExportManagersCSV(cmd.Context(), outPath)
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %s (%d bytes)\n", outPath, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "managers.csv", "destination file")
	return cmd
}
