// Package pagination owns the query state behind every paginated manager
// listing: current page, page size, sort field/order, and named filters.
//
// The package has three pieces:
//   - Query: the mutable query-state controller shared by the CLI and TUI
//   - Meta: derived display metadata (total pages, prev/next, item ranges)
//   - sort-expression parsing and the sortable-field whitelist
//
// Query never talks to the network itself; callers build request
// parameters with Params, hand the sequence number from BeginFetch to the
// API client, and feed the response total back through Reconcile so stale
// responses from overlapping fetches are discarded.
package pagination
