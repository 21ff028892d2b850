package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinka12/amdash/internal/api"
)

func TestRenderHierarchy(t *testing.T) {
	h := api.Hierarchy{
		Roots: []api.HierarchyEntry{
			{Name: "Alice", Department: "Engineering", TotalAssessments: 10,
				CategoryAverages: api.CategoryScores{Trusting: 8, Tasking: 8, Tending: 8}},
		},
		Children: map[string][]api.HierarchyEntry{
			"Alice": {
				{Name: "Carol", ReportingTo: "Alice", TotalAssessments: 3},
				{Name: "Bob", ReportingTo: "Alice", TotalAssessments: 5},
			},
			"Bob": {
				{Name: "Dave", ReportingTo: "Bob", TotalAssessments: 1},
			},
		},
	}

	out := RenderHierarchy(h)

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "Dave")

	// Direct reports render below their manager, sorted by name, indented
	// one level deeper.
	aliceIdx := indexOf(t, out, "Alice")
	bobIdx := indexOf(t, out, "Bob")
	carolIdx := indexOf(t, out, "Carol")
	daveIdx := indexOf(t, out, "Dave")
	assert.Less(t, aliceIdx, bobIdx)
	assert.Less(t, bobIdx, daveIdx)
	assert.Less(t, bobIdx, carolIdx)
}

func TestRenderHierarchy_Empty(t *testing.T) {
	out := RenderHierarchy(api.Hierarchy{})
	assert.Contains(t, out, "No managers")
}

func TestRenderHierarchy_CycleIsTerminated(t *testing.T) {
	// Bad reporting_to data: Alice and Bob report to each other.
	h := api.Hierarchy{
		Roots: []api.HierarchyEntry{{Name: "Alice"}},
		Children: map[string][]api.HierarchyEntry{
			"Alice": {{Name: "Bob", ReportingTo: "Alice"}},
			"Bob":   {{Name: "Alice", ReportingTo: "Bob"}},
		},
	}

	out := RenderHierarchy(h)

	assert.Contains(t, out, "reporting cycle")
	assert.Less(t, len(out), 2000, "rendering terminates instead of recursing forever")
}

func TestRenderHierarchyTree(t *testing.T) {
	tree := api.HierarchyTree{
		Roots: []api.HierarchyNode{
			{
				HierarchyEntry: api.HierarchyEntry{Name: "Alice"},
				DirectReports: []api.HierarchyNode{
					{HierarchyEntry: api.HierarchyEntry{Name: "Bob"}, Level: 1},
				},
			},
		},
		Stats: api.TreeStats{RootCount: 1, TotalManagers: 2, MaxDepth: 1},
	}

	out := RenderHierarchyTree(tree)

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "1 roots, 2 managers, max depth 1")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	assert.GreaterOrEqual(t, idx, 0, "expected %q in output", needle)
	return idx
}
