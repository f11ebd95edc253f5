package api

import "context"

// Health reports backend and datastore reachability. Deployment tooling
// polls it before considering the proxy layer ready.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// CheckHealth probes the backend health endpoint.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
