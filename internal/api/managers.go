package api

import (
	"context"
	"net/url"
)

type listManagersResponse struct {
	Envelope
	Managers   []Manager `json:"managers"`
	Pagination struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

// ListManagers fetches one page of the manager listing. The params are the
// controller-built query (skip, limit, sort_by, sort_order, plus any
// non-empty filters such as search or department). Zero items with a zero
// total is a valid result, not an error.
func (c *Client) ListManagers(ctx context.Context, params url.Values) (PageResult, error) {
	var resp listManagersResponse
	if err := c.getJSON(ctx, "list managers", "/api/managers", params, &resp); err != nil {
		return PageResult{}, err
	}
	return PageResult{Managers: resp.Managers, Total: resp.Pagination.Total}, nil
}

type managerResponse struct {
	Envelope
	Manager ManagerDetail `json:"manager"`
}

// GetManager fetches a single manager by name, optionally including the
// individual assessments behind the aggregates.
func (c *Client) GetManager(ctx context.Context, name string, includeAssessments bool) (ManagerDetail, error) {
	query := url.Values{}
	if includeAssessments {
		query.Set("include_assessments", "true")
	}

	var resp managerResponse
	path := "/api/manager/" + url.PathEscape(name)
	if err := c.getJSON(ctx, "get manager", path, query, &resp); err != nil {
		return ManagerDetail{}, err
	}
	return resp.Manager, nil
}

// ExportManagersCSV downloads the full manager listing as CSV to dest and
// returns the number of bytes written.
func (c *Client) ExportManagersCSV(ctx context.Context, dest string) (int64, error) {
	return c.download(ctx, "export managers csv", "/api/export/managers/csv", dest)
}
