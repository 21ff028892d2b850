package api

import "time"

// CategoryScores holds the three tripod category averages for a manager,
// each on the backend's 1-10 scale.
type CategoryScores struct {
	Trusting float64 `json:"trusting"`
	Tasking  float64 `json:"tasking"`
	Tending  float64 `json:"tending"`
}

// Overall is the mean of the three category averages.
func (s CategoryScores) Overall() float64 {
	return (s.Trusting + s.Tasking + s.Tending) / 3
}

// Manager is one manager-summary record from the list endpoint. The
// listing treats it as opaque display data; only the hierarchy and detail
// views interpret individual fields.
type Manager struct {
	Name             string         `json:"manager_name"`
	ReportingTo      string         `json:"reporting_to,omitempty"`
	Email            string         `json:"email,omitempty"`
	Department       string         `json:"department,omitempty"`
	TotalAssessments int            `json:"total_assessments"`
	CategoryAverages CategoryScores `json:"category_averages"`
	ConfidenceScore  int            `json:"confidence_score"`
	LastUpdated      time.Time      `json:"last_updated"`
}

// PageResult is one page of the manager listing plus the total count
// across all pages (not just the returned page).
type PageResult struct {
	Managers []Manager
	Total    int
}

// Assessment is a single submitted assessment, included in manager detail
// when requested.
type Assessment struct {
	SubmittedAt      time.Time      `json:"submitted_at"`
	CategoryAverages CategoryScores `json:"category_averages"`
	OverallScore     float64        `json:"overall_score"`
}

// ManagerDetail is the single-manager payload, optionally including the
// raw assessments behind the aggregates.
type ManagerDetail struct {
	Manager
	Assessments []Assessment `json:"assessments,omitempty"`
}

// Stats are the dashboard summary counters.
type Stats struct {
	TotalManagers    int `json:"total_managers"`
	TotalAssessments int `json:"total_assessments"`
	TotalReports     int `json:"total_reports"`
}

// StatsResult bundles the counters with company-wide category averages.
type StatsResult struct {
	Stats    Stats          `json:"stats"`
	Averages CategoryScores `json:"averages"`
}

// HierarchyEntry is one manager in the flat hierarchy snapshot.
type HierarchyEntry struct {
	Name             string         `json:"manager_name"`
	ReportingTo      string         `json:"reporting_to,omitempty"`
	Department       string         `json:"department,omitempty"`
	TotalAssessments int            `json:"total_assessments"`
	CategoryAverages CategoryScores `json:"category_averages"`
}

// Hierarchy is the flat snapshot: root managers plus a manager-name to
// direct-reports mapping. Names absent from Children have no reports.
type Hierarchy struct {
	Roots    []HierarchyEntry            `json:"roots"`
	Children map[string][]HierarchyEntry `json:"children"`
}

// HierarchyNode is one node of the nested tree snapshot.
type HierarchyNode struct {
	HierarchyEntry
	Level         int             `json:"hierarchy_level"`
	DirectReports []HierarchyNode `json:"direct_reports,omitempty"`
}

// TreeStats summarize a nested hierarchy snapshot.
type TreeStats struct {
	RootCount     int `json:"root_count"`
	TotalManagers int `json:"total_managers"`
	MaxDepth      int `json:"max_depth"`
}

// HierarchyTree is the nested snapshot with organizational statistics.
type HierarchyTree struct {
	Roots []HierarchyNode `json:"tree"`
	Stats TreeStats       `json:"statistics"`
}

// ReportStatus is the lifecycle state of an assessment report.
type ReportStatus string

// Report generation states.
const (
	ReportPending ReportStatus = "pending"
	ReportReady   ReportStatus = "ready"
	ReportFailed  ReportStatus = "failed"
)

// Report is a generated manager assessment report.
type Report struct {
	ManagerName string       `json:"manager_name"`
	Status      ReportStatus `json:"status"`
	Summary     string       `json:"summary,omitempty"`
	Content     string       `json:"content,omitempty"`
	GeneratedAt time.Time    `json:"generated_at,omitempty"`
}

// MigrationResult is the outcome of a legacy-data migration run.
type MigrationResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}
