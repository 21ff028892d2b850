package api

import "context"

type statsResponse struct {
	Envelope
	Stats    Stats          `json:"stats"`
	Averages CategoryScores `json:"averages"`
}

// GetStats fetches the dashboard summary counters and company-wide
// category averages.
func (c *Client) GetStats(ctx context.Context) (StatsResult, error) {
	var resp statsResponse
	if err := c.getJSON(ctx, "get stats", "/api/stats", nil, &resp); err != nil {
		return StatsResult{}, err
	}
	return StatsResult{Stats: resp.Stats, Averages: resp.Averages}, nil
}
