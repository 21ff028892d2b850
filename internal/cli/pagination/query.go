package pagination

import (
	"errors"
	"net/url"
	"strconv"
)

// Defaults and sort orders for manager listings.
const (
	DefaultPageSize  = 10
	MinPageSize      = 1
	MaxPageSize      = 100
	DefaultSortField = "last_updated"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPageSize  = errors.New("page size must be between 1 and 100")
	ErrInvalidPage      = errors.New("page must be >= 1")
	ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")
)

// Query is the query-state controller for a paginated list endpoint.
// It owns the page number, page size, sort field/order, and named filters,
// translates them into request parameters, and reconciles response totals
// back into navigation state.
//
// Total is unknown until the first Reconcile; ChangePage is a no-op until
// then. The stored page is never clamped retroactively: navigation is
// clamped instead, so an in-flight request is never raced by a mutation of
// the state it was built from.
type Query struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the fixed number of items per page.
	PageSize int

	// SortField is the column to sort by (see ValidSortFields).
	SortField string

	// SortOrder is "asc" or "desc".
	SortOrder string

	// SortResetsPage controls whether SetSort snaps back to page 1.
	// Off by default: sort changes preserve the page position.
	SortResetsPage bool

	filters    map[string]string
	total      int
	totalKnown bool
	seq        uint64
}

// NewQuery creates a Query with the listing defaults: page 1, the given
// page size (DefaultPageSize when size <= 0), sorted by last_updated
// descending, no filters.
func NewQuery(pageSize int) *Query {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Query{
		Page:      1,
		PageSize:  pageSize,
		SortField: DefaultSortField,
		SortOrder: SortOrderDesc,
		filters:   make(map[string]string),
	}
}

// Validate checks the query for out-of-range values.
func (q *Query) Validate() error {
	if q.Page < 1 {
		return ErrInvalidPage
	}
	if q.PageSize < MinPageSize || q.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	if q.SortOrder != SortOrderAsc && q.SortOrder != SortOrderDesc {
		return ErrInvalidSortOrder
	}
	return nil
}

// SetFilter stores a named filter value. It does not trigger a fetch and
// does not validate the value; an empty string is kept but skipped when
// building request parameters.
func (q *Query) SetFilter(name, value string) {
	q.filters[name] = value
}

// Filter returns the stored value for a filter name ("" when unset).
func (q *Query) Filter(name string) string {
	return q.filters[name]
}

// Filters returns a copy of the current filter map.
func (q *Query) Filters() map[string]string {
	out := make(map[string]string, len(q.filters))
	for k, v := range q.filters {
		out[k] = v
	}
	return out
}

// SetSort sets the sort column. Selecting the current column toggles the
// order; selecting a new column switches to it in descending order, so
// repeated clicks flip direction only on the same column. The page is
// preserved unless SortResetsPage is set.
func (q *Query) SetSort(field string) {
	if field == q.SortField {
		if q.SortOrder == SortOrderAsc {
			q.SortOrder = SortOrderDesc
		} else {
			q.SortOrder = SortOrderAsc
		}
	} else {
		q.SortField = field
		q.SortOrder = SortOrderDesc
	}
	if q.SortResetsPage {
		q.Page = 1
	}
}

// ApplyFilters resets to page 1 so the (possibly narrower) result set is
// viewed from the start. The caller issues the fetch.
func (q *Query) ApplyFilters() {
	q.Page = 1
}

// ClearFilters removes all filter entries and resets to page 1.
func (q *Query) ClearFilters() {
	q.filters = make(map[string]string)
	q.Page = 1
}

// ChangePage moves the page by delta and reports whether it committed.
// Out-of-range targets (below 1, past the last page, or before any total
// is known) are silently ignored: no error, no wraparound, no fetch.
func (q *Query) ChangePage(delta int) bool {
	newPage := q.Page + delta
	if newPage < 1 || newPage > q.TotalPages() {
		return false
	}
	q.Page = newPage
	return true
}

// Params builds the request parameters for the list endpoint: skip, limit,
// sort_by, sort_order, plus every non-empty filter under its own name.
func (q *Query) Params() url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa((q.Page-1)*q.PageSize))
	v.Set("limit", strconv.Itoa(q.PageSize))
	v.Set("sort_by", q.SortField)
	v.Set("sort_order", q.SortOrder)
	for name, value := range q.filters {
		if value != "" {
			v.Set(name, value)
		}
	}
	return v
}

// BeginFetch issues a new fetch sequence number. Only the response carrying
// the most recently issued number is accepted by Reconcile; anything older
// lost the race and is dropped.
func (q *Query) BeginFetch() uint64 {
	q.seq++
	return q.seq
}

// Current reports whether seq identifies the most recently begun fetch.
// Failed fetches should check this before surfacing their error: a stale
// failure belongs to state the user has already navigated away from.
func (q *Query) Current(seq uint64) bool {
	return seq == q.seq
}

// Reconcile applies the response total for the fetch identified by seq.
// It returns false without touching any state when the response is stale,
// i.e. a newer fetch was begun after this one.
func (q *Query) Reconcile(seq uint64, total int) bool {
	if seq != q.seq {
		return false
	}
	if total < 0 {
		total = 0
	}
	q.total = total
	q.totalKnown = true
	return true
}

// Total returns the last reconciled item count across all pages.
func (q *Query) Total() int {
	return q.total
}

// TotalKnown reports whether at least one fetch has been reconciled.
func (q *Query) TotalKnown() bool {
	return q.totalKnown
}

// TotalPages returns ceil(total/pageSize), 0 when the total is zero or
// not yet known.
func (q *Query) TotalPages() int {
	if !q.totalKnown || q.total == 0 {
		return 0
	}
	return (q.total + q.PageSize - 1) / q.PageSize
}

// Meta returns the derived display metadata for the current state.
func (q *Query) Meta() Meta {
	return NewMeta(q.Page, q.PageSize, q.total)
}
