package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinka12/amdash/internal/api"
)

// newReportCmd creates the report command group: generate, show, email,
// and pdf subcommands.
func newReportCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and fetch manager assessment reports",
	}
	cmd.AddCommand(
		newReportGenerateCmd(st),
		newReportShowCmd(st),
		newReportEmailCmd(st),
		newReportPDFCmd(st),
	)
	return cmd
}

func newReportGenerateCmd(st *rootState) *cobra.Command {
	var (
		wait         bool
		pollInterval time.Duration
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate NAME",
		Short: "Start report generation for a manager",
		Long: "Start report generation for a manager. Generation is asynchronous;\n" +
			"--wait polls until the report is ready or generation fails.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			if err := st.client.GenerateReport(ctx, name); err != nil {
				return err
			}
			if !wait {
				cmd.Printf("Report generation started for %s. Check progress with: amdash report show %q\n", name, name)
				return nil
			}

			waitCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				waitCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			cmd.Printf("Waiting for report on %s...\n", name)
			report, err := st.client.AwaitReport(waitCtx, name, pollInterval)
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the report is ready")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", api.DefaultPollInterval,
		"how often to poll with --wait")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "give up waiting after this long (0 = no limit)")
	return cmd
}

func newReportShowCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show the current report for a manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := st.client.GetReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}
	return cmd
}

func newReportEmailCmd(st *rootState) *cobra.Command {
	var (
		to      []string
		message string
	)

	cmd := &cobra.Command{
		Use:   "email NAME",
		Short: "Email a manager's report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.client.EmailReport(cmd.Context(), args[0], to, message); err != nil {
				return err
			}
			cmd.Printf("Report for %s sent to %d recipient(s).\n", args[0], len(to))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&to, "to", nil, "recipient email address (repeatable)")
	cmd.Flags().StringVar(&message, "message", "", "cover message to include")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newReportPDFCmd(st *rootState) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "pdf NAME",
		Short: "Download a manager's report as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if outPath == "" {
				outPath = name + ".pdf"
			}
			n, err := st.client.DownloadReportPDF(cmd.Context(), name, outPath)
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %s (%d bytes)\n", outPath, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "destination file (default: NAME.pdf)")
	return cmd
}

func printReport(cmd *cobra.Command, report api.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Manager: %s\n", report.ManagerName)
	fmt.Fprintf(out, "Status:  %s\n", report.Status)
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(out, "Generated: %s\n", report.GeneratedAt.Format(time.RFC3339))
	}
	if report.Summary != "" {
		fmt.Fprintf(out, "\n%s\n", report.Summary)
	}
	if report.Content != "" {
		fmt.Fprintf(out, "\n%s\n", report.Content)
	}
}
