package tui

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pinka12/amdash/internal/api"
	"github.com/pinka12/amdash/internal/cli/pagination"
)

// searchDebounce is how long the search input must be quiet before its
// value is committed as a filter and a fetch is issued.
const searchDebounce = 500 * time.Millisecond

// DefaultRefreshInterval is the stats re-fetch cadence when the caller
// passes a non-positive interval.
const DefaultRefreshInterval = 30 * time.Second

// sortCycle is the order the sort key walks through table columns.
var sortCycle = []string{"last_updated", "manager_name", "overall", "assessments"}

// Backend is the slice of the API client the dashboard consumes. Narrow
// on purpose so tests can substitute a fake.
type Backend interface {
	ListManagers(ctx context.Context, params url.Values) (api.PageResult, error)
	GetStats(ctx context.Context) (api.StatsResult, error)
	GetManager(ctx context.Context, name string, includeAssessments bool) (api.ManagerDetail, error)
	GetHierarchy(ctx context.Context) (api.Hierarchy, error)
}

// ManagersLoadedMsg carries one page of the manager listing. Seq ties the
// response to the fetch that produced it; stale responses are dropped.
type ManagersLoadedMsg struct {
	Seq  uint64
	Page api.PageResult
	Err  error
}

// StatsLoadedMsg carries the dashboard summary counters.
type StatsLoadedMsg struct {
	Stats api.StatsResult
	Err   error
}

// statsTickMsg triggers a background stats refresh.
type statsTickMsg struct{}

// searchDebounceMsg fires when the search input has been quiet long
// enough. Seq identifies the keystroke that scheduled it; a newer
// keystroke invalidates older ticks.
type searchDebounceMsg struct {
	seq uint64
}

// HierarchyLoadedMsg carries the reporting-structure snapshot for the
// hierarchy view.
type HierarchyLoadedMsg struct {
	Hierarchy api.Hierarchy
	Err       error
}

// DetailLoadedMsg carries the full manager detail for the detail view.
type DetailLoadedMsg struct {
	Name   string
	Detail api.ManagerDetail
	Err    error
}

// DashboardModel is the Bubble Tea model for the interactive assessment
// dashboard: a stats summary box above a paginated, sortable, searchable
// managers table.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx     context.Context
	backend Backend
	query   *pagination.Query

	// View state
	state    ViewState
	managers []api.Manager
	width    int
	height   int

	// Interactive components
	table        table.Model
	searchInput  textinput.Model
	showFilter   bool
	filterTarget string // which named filter the input edits
	debounceSeq  uint64

	// Stats box
	stats      api.StatsResult
	statsKnown bool
	statsErr   error

	refreshInterval time.Duration

	// Detail view
	selectedName string
	detail       api.ManagerDetail
	detailErr    error

	// Hierarchy view
	hierarchy      api.Hierarchy
	hierarchyKnown bool
	hierarchyErr   error

	// Loading spinner
	loading *LoadingState

	// Listing errors stay scoped to the table; the stats box keeps
	// rendering its last good snapshot and vice versa.
	listErr error
}

// NewDashboardModel creates the dashboard model. The query controls page,
// sort, and filter state and is owned by the model from here on.
func NewDashboardModel(ctx context.Context, backend Backend, query *pagination.Query, refreshInterval time.Duration) DashboardModel {
	if refreshInterval <= 0 {
		refreshInterval = DefaultRefreshInterval
	}
	m := DashboardModel{
		ctx:             ctx,
		backend:         backend,
		query:           query,
		state:           ViewStateLoading,
		width:           defaultWidth,
		height:          defaultHeight,
		searchInput:     newSearchInput(),
		filterTarget:    "search",
		refreshInterval: refreshInterval,
		loading:         NewLoadingState(),
	}
	m.table = m.buildManagersTable()
	return m
}

// Init starts the spinner, the first fetches, and the stats refresh tick.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.loading.Init(),
		m.fetchManagers(),
		m.fetchStats(),
		m.statsTick(),
	)
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil
	case ManagersLoadedMsg:
		return m.handleManagersLoaded(msg)
	case StatsLoadedMsg:
		return m.handleStatsLoaded(msg)
	case statsTickMsg:
		// Re-chain the tick so the stats box keeps refreshing.
		return m, tea.Batch(m.fetchStats(), m.statsTick())
	case searchDebounceMsg:
		return m.handleSearchDebounce(msg)
	case DetailLoadedMsg:
		return m.handleDetailLoaded(msg)
	case HierarchyLoadedMsg:
		if msg.Err != nil {
			m.hierarchyErr = msg.Err
			return m, nil
		}
		m.hierarchy = msg.Hierarchy
		m.hierarchyKnown = true
		m.hierarchyErr = nil
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		if cmd := m.loading.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleQuitKeys(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateHierarchy:
		return m.handleHierarchyUpdate(msg)
	case ViewStateQuitting, ViewStateError:
		return m, nil
	default:
		return m, nil
	}
}

func (m DashboardModel) handleManagersLoaded(msg ManagersLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// A stale failure belongs to state the user already left behind.
		if !m.query.Current(msg.Seq) {
			return m, nil
		}
		m.listErr = msg.Err
		if m.state == ViewStateLoading {
			m.state = ViewStateList
		}
		return m, nil
	}

	if !m.query.Reconcile(msg.Seq, msg.Page.Total) {
		return m, nil
	}

	m.managers = msg.Page.Managers
	m.listErr = nil
	if m.state == ViewStateLoading {
		m.state = ViewStateList
	}
	m.rebuildTable()
	return m, nil
}

func (m DashboardModel) handleStatsLoaded(msg StatsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.statsErr = msg.Err
		return m, nil
	}
	m.stats = msg.Stats
	m.statsKnown = true
	m.statsErr = nil
	return m, nil
}

func (m DashboardModel) handleSearchDebounce(msg searchDebounceMsg) (tea.Model, tea.Cmd) {
	// A newer keystroke re-armed the debounce; this tick is obsolete.
	if msg.seq != m.debounceSeq {
		return m, nil
	}
	return m.commitFilter()
}

func (m DashboardModel) handleDetailLoaded(msg DetailLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Name != m.selectedName {
		return m, nil
	}
	if msg.Err != nil {
		m.detailErr = msg.Err
		return m, nil
	}
	m.detail = msg.Detail
	m.detailErr = nil
	return m, nil
}

func (m DashboardModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			// Commit immediately; any pending debounce tick is
			// invalidated by the seq bump inside commitSearch.
			m.showFilter = false
			m.searchInput.Blur()
			return m.commitFilter()
		case keyEsc:
			// Abandon the edit, restore the committed filter.
			m.showFilter = false
			m.searchInput.Blur()
			m.debounceSeq++
			m.searchInput.SetValue(m.query.Filter(m.filterTarget))
			return m, nil
		}
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if m.searchInput.Value() != before {
		m.debounceSeq++
		seq := m.debounceSeq
		debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{seq: seq}
		})
		return m, tea.Batch(cmd, debounce)
	}
	return m, cmd
}

// commitFilter applies the current input value under the active filter
// name, snaps back to page 1, and issues a fetch. A no-op when the value
// already matches the committed filter.
func (m DashboardModel) commitFilter() (tea.Model, tea.Cmd) {
	m.debounceSeq++

	value := m.searchInput.Value()
	if value == m.query.Filter(m.filterTarget) {
		return m, nil
	}
	m.query.SetFilter(m.filterTarget, value)
	m.query.ApplyFilters()
	return m, m.fetchManagers()
}

// openFilter focuses the input on the given filter name, pre-filled with
// its committed value.
func (m DashboardModel) openFilter(name, placeholder string) (tea.Model, tea.Cmd) {
	m.showFilter = true
	m.filterTarget = name
	m.searchInput.Placeholder = placeholder
	m.searchInput.SetValue(m.query.Filter(name))
	m.searchInput.Focus()
	return m, textinput.Blink
}

func (m DashboardModel) handleQuitKeys(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DashboardModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m.handleListKeypress(keyMsg)
}

func (m DashboardModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		return m.openFilter("search", "Search managers...")
	case keyD:
		return m.openFilter("department", "Department...")
	case keyS:
		m.query.SetSort(nextSortField(m.query.SortField))
		return m, m.fetchManagers()
	case keyO:
		// Same field toggles the direction.
		m.query.SetSort(m.query.SortField)
		return m, m.fetchManagers()
	case keyR:
		return m, tea.Batch(m.fetchManagers(), m.fetchStats())
	case keyH:
		m.state = ViewStateHierarchy
		return m, m.fetchHierarchy()
	case keyEnter:
		return m.openDetail()
	case keyEsc:
		if hasActiveFilter(m.query.Filters()) {
			m.searchInput.SetValue("")
			m.query.ClearFilters()
			return m, m.fetchManagers()
		}
		return m, nil
	case keyPgUp, "left":
		if m.query.ChangePage(-1) {
			return m, m.fetchManagers()
		}
		return m, nil
	case keyPgDn, "right":
		if m.query.ChangePage(1) {
			return m, m.fetchManagers()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m DashboardModel) openDetail() (tea.Model, tea.Cmd) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.managers) {
		return m, nil
	}

	selected := m.managers[cursor]
	m.selectedName = selected.Name
	m.detail = api.ManagerDetail{Manager: selected}
	m.detailErr = nil
	m.state = ViewStateDetail

	name := selected.Name
	ctx := m.ctx
	backend := m.backend
	return m, func() tea.Msg {
		detail, err := backend.GetManager(ctx, name, true)
		return DetailLoadedMsg{Name: name, Detail: detail, Err: err}
	}
}

func (m DashboardModel) handleHierarchyUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyR:
			return m, m.fetchHierarchy()
		case keyEsc:
			m.state = ViewStateList
			m.table.Focus()
			return m, nil
		}
	}
	return m, nil
}

func (m DashboardModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			m.selectedName = ""
			m.table.Focus()
			return m, nil
		}
	}
	return m, nil
}

func hasActiveFilter(filters map[string]string) bool {
	for _, v := range filters {
		if v != "" {
			return true
		}
	}
	return false
}

// nextSortField advances to the next field in sortCycle, starting over
// for fields outside the cycle (department, reporting_to).
func nextSortField(current string) string {
	for i, field := range sortCycle {
		if field == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

// fetchManagers snapshots the query parameters and issues a sequenced
// fetch. The seq travels with the response so late arrivals from
// superseded state are dropped.
func (m *DashboardModel) fetchManagers() tea.Cmd {
	seq := m.query.BeginFetch()
	params := m.query.Params()
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		page, err := backend.ListManagers(ctx, params)
		return ManagersLoadedMsg{Seq: seq, Page: page, Err: err}
	}
}

func (m *DashboardModel) fetchStats() tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		stats, err := backend.GetStats(ctx)
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

func (m *DashboardModel) fetchHierarchy() tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		h, err := backend.GetHierarchy(ctx)
		return HierarchyLoadedMsg{Hierarchy: h, Err: err}
	}
}

func (m *DashboardModel) statsTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return statsTickMsg{}
	})
}

// rebuildTable reconstructs the table with the current page of managers.
func (m *DashboardModel) rebuildTable() {
	m.table = m.buildManagersTable()
}

// buildManagersTable creates a new table model with current configuration.
func (m *DashboardModel) buildManagersTable() table.Model {
	columns := []table.Column{
		{Title: "Manager", Width: 24},
		{Title: "Department", Width: 14},
		{Title: "Trusting", Width: 8},
		{Title: "Tasking", Width: 8},
		{Title: "Tending", Width: 8},
		{Title: "Overall", Width: 8},
		{Title: "Asmts", Width: 5},
		{Title: "Updated", Width: 10},
	}

	rows := make([]table.Row, len(m.managers))
	for i, mgr := range m.managers {
		rows[i] = table.Row{
			truncate(mgr.Name, 24),
			truncate(mgr.Department, 14),
			formatScore(mgr.CategoryAverages.Trusting),
			formatScore(mgr.CategoryAverages.Tasking),
			formatScore(mgr.CategoryAverages.Tending),
			formatScore(mgr.CategoryAverages.Overall()),
			fmt.Sprintf("%d", mgr.TotalAssessments),
			formatDate(mgr.LastUpdated),
		}
	}

	availableHeight := m.height - summaryHeight - 1
	if availableHeight < minHeight {
		availableHeight = minHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(availableHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// Managers returns the currently displayed page (for external access).
func (m *DashboardModel) Managers() []api.Manager {
	return m.managers
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
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
