package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pinka12/amdash/internal/api"
)

// View renders the current view (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return fmt.Sprintf("Error: %v\n", m.listErr)
	case ViewStateLoading:
		return "\n" + m.loading.View() + "\n\n"
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateHierarchy:
		return m.renderHierarchyView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

// renderListView renders the stats box, the managers table, and the
// status bar, with the search input below when active.
func (m DashboardModel) renderListView() string {
	sections := []string{m.renderStatsBox()}

	if m.listErr != nil {
		sections = append(sections, CriticalStyle.Render(fmt.Sprintf("Listing failed: %v", m.listErr)))
	}

	sections = append(sections, m.table.View())
	sections = append(sections, m.renderStatusBar())

	if m.showFilter {
		label := "Search: "
		if m.filterTarget == "department" {
			label = "Department: "
		}
		sections = append(sections, LabelStyle.Render(label)+m.searchInput.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatsBox renders the summary counters and company-wide averages.
// When stats are unavailable the last good snapshot stays up with an
// error note; the table below is unaffected.
func (m DashboardModel) renderStatsBox() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("MANAGER ASSESSMENTS"))
	content.WriteString("\n")

	if !m.statsKnown {
		content.WriteString(SubtleStyle.Render("Loading stats..."))
	} else {
		content.WriteString(LabelStyle.Render("Managers: "))
		content.WriteString(ValueStyle.Render(fmt.Sprintf("%d", m.stats.Stats.TotalManagers)))
		content.WriteString(LabelStyle.Render("   Assessments: "))
		content.WriteString(ValueStyle.Render(fmt.Sprintf("%d", m.stats.Stats.TotalAssessments)))
		content.WriteString(LabelStyle.Render("   Reports: "))
		content.WriteString(ValueStyle.Render(fmt.Sprintf("%d", m.stats.Stats.TotalReports)))
		content.WriteString("\n")
		content.WriteString(LabelStyle.Render("Averages  "))
		content.WriteString(renderCategoryScores(m.stats.Averages))
	}

	if m.statsErr != nil {
		content.WriteString("\n")
		content.WriteString(WarningStyle.Render(fmt.Sprintf("Stats refresh failed: %v", m.statsErr)))
	}

	return BoxStyle.Width(m.width - borderPadding).Render(content.String())
}

// renderStatusBar displays page position, sort, and filter status.
func (m DashboardModel) renderStatusBar() string {
	meta := m.query.Meta()

	var parts []string
	if m.query.TotalKnown() {
		parts = append(parts, fmt.Sprintf("Page %d/%d (%s)", meta.Page, max(meta.TotalPages, 1), meta.RangeLabel()))
	} else {
		parts = append(parts, fmt.Sprintf("Page %d", meta.Page))
	}
	parts = append(parts, fmt.Sprintf("Sort: %s %s", m.query.SortField, m.query.SortOrder))
	if search := m.query.Filter("search"); search != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", search))
	}
	if dept := m.query.Filter("department"); dept != "" {
		parts = append(parts, fmt.Sprintf("Department: %q", dept))
	}
	parts = append(parts, "s sort | o order | / search | d dept | h hierarchy | pgup/pgdn page | r refresh | q quit")

	return SubtleStyle.Render(strings.Join(parts, " | "))
}

// renderHierarchyView renders the reporting structure. A failed fetch
// replaces only this section; Esc returns to the unharmed list view.
func (m DashboardModel) renderHierarchyView() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("REPORTING STRUCTURE"))
	content.WriteString("\n\n")

	switch {
	case m.hierarchyErr != nil:
		content.WriteString(CriticalStyle.Render(fmt.Sprintf("Hierarchy failed to load: %v", m.hierarchyErr)))
		content.WriteString("\n")
		content.WriteString(SubtleStyle.Render("Press 'r' to retry"))
		content.WriteString("\n")
	case !m.hierarchyKnown:
		content.WriteString(SubtleStyle.Render("Loading hierarchy..."))
		content.WriteString("\n")
	default:
		content.WriteString(RenderHierarchy(m.hierarchy))
	}

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))

	return BoxStyle.Width(m.width - borderPadding).Render(content.String())
}

// renderDetailView renders the selected manager with assessments when the
// detail fetch has landed.
func (m DashboardModel) renderDetailView() string {
	if m.selectedName == "" {
		return msgSelectedOutOfBounds
	}

	var content strings.Builder

	content.WriteString(HeaderStyle.Render("MANAGER DETAIL"))
	content.WriteString("\n\n")
	content.WriteString(LabelStyle.Render("Name:        "))
	content.WriteString(ValueStyle.Render(m.detail.Name))
	content.WriteString("\n")
	if m.detail.ReportingTo != "" {
		content.WriteString(LabelStyle.Render("Reports to:  "))
		content.WriteString(ValueStyle.Render(m.detail.ReportingTo))
		content.WriteString("\n")
	}
	if m.detail.Department != "" {
		content.WriteString(LabelStyle.Render("Department:  "))
		content.WriteString(ValueStyle.Render(m.detail.Department))
		content.WriteString("\n")
	}
	content.WriteString(LabelStyle.Render("Assessments: "))
	content.WriteString(ValueStyle.Render(fmt.Sprintf("%d", m.detail.TotalAssessments)))
	content.WriteString("\n\n")

	content.WriteString(HeaderStyle.Render("CATEGORY AVERAGES"))
	content.WriteString("\n")
	content.WriteString("  " + renderCategoryScores(m.detail.CategoryAverages))
	content.WriteString("\n\n")

	renderDetailAssessments(&content, m.detail.Assessments)

	if m.detailErr != nil {
		content.WriteString(CriticalStyle.Render(fmt.Sprintf("Could not load assessments: %v", m.detailErr)))
		content.WriteString("\n")
	}

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))

	return BoxStyle.Width(m.width - borderPadding).Render(content.String())
}

// renderDetailAssessments writes the per-assessment history, newest first
// as delivered by the backend.
func renderDetailAssessments(content *strings.Builder, assessments []api.Assessment) {
	if len(assessments) == 0 {
		return
	}
	content.WriteString(HeaderStyle.Render("ASSESSMENTS"))
	content.WriteString("\n")
	for _, a := range assessments {
		content.WriteString(LabelStyle.Render("  " + formatDate(a.SubmittedAt) + "  "))
		content.WriteString(renderCategoryScores(a.CategoryAverages))
		content.WriteString(LabelStyle.Render("  overall "))
		content.WriteString(scoreStyle(a.OverallScore).Render(formatScore(a.OverallScore)))
		content.WriteString("\n")
	}
	content.WriteString("\n")
}

// renderCategoryScores renders the tripod triple on one line with weak
// scores highlighted.
func renderCategoryScores(scores api.CategoryScores) string {
	return LabelStyle.Render("trusting ") + scoreStyle(scores.Trusting).Render(formatScore(scores.Trusting)) +
		LabelStyle.Render("  tasking ") + scoreStyle(scores.Tasking).Render(formatScore(scores.Tasking)) +
		LabelStyle.Render("  tending ") + scoreStyle(scores.Tending).Render(formatScore(scores.Tending))
}
