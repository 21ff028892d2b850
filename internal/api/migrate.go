package api

import "context"

type migrateResponse struct {
	Envelope
	Data MigrationResult `json:"data"`
}

// Migrate triggers the backend's legacy-data migration and returns the
// created/updated/total record counts.
func (c *Client) Migrate(ctx context.Context) (MigrationResult, error) {
	var resp migrateResponse
	if err := c.postJSON(ctx, "migrate", "/api/migrate", nil, &resp); err != nil {
		return MigrationResult{}, err
	}
	return resp.Data, nil
}
