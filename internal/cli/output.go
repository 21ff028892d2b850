package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pinka12/amdash/internal/api"
	"github.com/pinka12/amdash/internal/cli/pagination"
)

// tabwriterPadding is the minimum padding between columns in plain tables.
const tabwriterPadding = 2

// countPrinter groups digits in large counters (1,234 assessments).
var countPrinter = message.NewPrinter(language.English) //nolint:gochecknoglobals // Shared formatter.

// renderManagersTable writes one page of managers as a plain text table
// with a pagination footer.
func renderManagersTable(w io.Writer, managers []api.Manager, meta pagination.Meta) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	fmt.Fprintln(tw, "MANAGER\tDEPARTMENT\tTRUSTING\tTASKING\tTENDING\tOVERALL\tASSESSMENTS\tUPDATED")
	for _, m := range managers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			m.Name,
			orDash(m.Department),
			formatScore(m.CategoryAverages.Trusting),
			formatScore(m.CategoryAverages.Tasking),
			formatScore(m.CategoryAverages.Tending),
			formatScore(m.CategoryAverages.Overall()),
			m.TotalAssessments,
			formatDate(m.LastUpdated),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nShowing %s (page %d", meta.RangeLabel(), meta.Page)
	if meta.TotalPages > 0 {
		fmt.Fprintf(w, " of %d", meta.TotalPages)
	}
	fmt.Fprintln(w, ")")
	return nil
}

// renderManagerDetail writes a single manager with optional assessment
// history.
func renderManagerDetail(w io.Writer, detail api.ManagerDetail) {
	fmt.Fprintf(w, "Manager:      %s\n", detail.Name)
	if detail.ReportingTo != "" {
		fmt.Fprintf(w, "Reports to:   %s\n", detail.ReportingTo)
	}
	if detail.Department != "" {
		fmt.Fprintf(w, "Department:   %s\n", detail.Department)
	}
	if detail.Email != "" {
		fmt.Fprintf(w, "Email:        %s\n", detail.Email)
	}
	fmt.Fprintf(w, "Assessments:  %d\n", detail.TotalAssessments)
	fmt.Fprintf(w, "Trusting:     %s\n", formatScore(detail.CategoryAverages.Trusting))
	fmt.Fprintf(w, "Tasking:      %s\n", formatScore(detail.CategoryAverages.Tasking))
	fmt.Fprintf(w, "Tending:      %s\n", formatScore(detail.CategoryAverages.Tending))
	fmt.Fprintf(w, "Overall:      %s\n", formatScore(detail.CategoryAverages.Overall()))
	fmt.Fprintf(w, "Last updated: %s\n", formatDate(detail.LastUpdated))

	if len(detail.Assessments) == 0 {
		return
	}
	fmt.Fprintln(w, "\nHistory:")
	for _, a := range detail.Assessments {
		fmt.Fprintf(w, "  %s  trusting %s  tasking %s  tending %s  overall %s\n",
			formatDate(a.SubmittedAt),
			formatScore(a.CategoryAverages.Trusting),
			formatScore(a.CategoryAverages.Tasking),
			formatScore(a.CategoryAverages.Tending),
			formatScore(a.OverallScore),
		)
	}
}

// renderStats writes the company-wide counters and category averages.
func renderStats(w io.Writer, stats api.StatsResult) {
	countPrinter.Fprintf(w, "Managers:    %d\n", stats.Stats.TotalManagers)
	countPrinter.Fprintf(w, "Assessments: %d\n", stats.Stats.TotalAssessments)
	countPrinter.Fprintf(w, "Reports:     %d\n", stats.Stats.TotalReports)
	fmt.Fprintf(w, "Averages:    trusting %s, tasking %s, tending %s (overall %s)\n",
		formatScore(stats.Averages.Trusting),
		formatScore(stats.Averages.Tasking),
		formatScore(stats.Averages.Tending),
		formatScore(stats.Averages.Overall()),
	)
}

// renderJSON writes v as indented JSON, the machine-readable counterpart
// of the table output.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatScore(score float64) string {
	if score <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", score)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
