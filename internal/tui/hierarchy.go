package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pinka12/amdash/internal/api"
)

// RenderHierarchy renders the flat hierarchy snapshot as an indented tree,
// roots first, each manager's direct reports below it. Managers reached
// twice (bad reporting_to data forming a cycle) are rendered once and
// noted, never recursed into again.
func RenderHierarchy(h api.Hierarchy) string {
	var b strings.Builder
	seen := make(map[string]bool)

	for _, root := range h.Roots {
		renderHierarchyEntry(&b, h.Children, root, 0, seen)
	}

	if b.Len() == 0 {
		return SubtleStyle.Render("No managers in the hierarchy.") + "\n"
	}
	return b.String()
}

func renderHierarchyEntry(b *strings.Builder, children map[string][]api.HierarchyEntry, entry api.HierarchyEntry, depth int, seen map[string]bool) {
	indent := strings.Repeat("  ", depth)

	if seen[entry.Name] {
		b.WriteString(indent)
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%s (already shown, reporting cycle?)", entry.Name)))
		b.WriteString("\n")
		return
	}
	seen[entry.Name] = true

	b.WriteString(indent)
	b.WriteString(ValueStyle.Render(entry.Name))
	if entry.Department != "" {
		b.WriteString(SubtleStyle.Render("  [" + entry.Department + "]"))
	}
	b.WriteString(LabelStyle.Render(fmt.Sprintf("  overall %s, %d assessments",
		formatScore(entry.CategoryAverages.Overall()), entry.TotalAssessments)))
	b.WriteString("\n")

	reports := children[entry.Name]
	sort.Slice(reports, func(i, j int) bool { return reports[i].Name < reports[j].Name })
	for _, report := range reports {
		renderHierarchyEntry(b, children, report, depth+1, seen)
	}
}

// RenderHierarchyTree renders the nested snapshot plus its statistics line.
func RenderHierarchyTree(tree api.HierarchyTree) string {
	var b strings.Builder

	for _, root := range tree.Roots {
		renderHierarchyNode(&b, root, 0)
	}
	if b.Len() == 0 {
		b.WriteString(SubtleStyle.Render("No managers in the hierarchy."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d roots, %d managers, max depth %d",
		tree.Stats.RootCount, tree.Stats.TotalManagers, tree.Stats.MaxDepth)))
	b.WriteString("\n")

	return b.String()
}

func renderHierarchyNode(b *strings.Builder, node api.HierarchyNode, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(ValueStyle.Render(node.Name))
	if node.Department != "" {
		b.WriteString(SubtleStyle.Render("  [" + node.Department + "]"))
	}
	b.WriteString(LabelStyle.Render(fmt.Sprintf("  overall %s", formatScore(node.CategoryAverages.Overall()))))
	b.WriteString("\n")

	for _, report := range node.DirectReports {
		renderHierarchyNode(b, report, depth+1)
	}
}
