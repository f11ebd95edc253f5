package api

import (
	"context"
	"time"
)

// WatchlistEntry is a watched product together with when it was added.
type WatchlistEntry struct {
	Product Product   `json:"product"`
	AddedAt time.Time `json:"addedAt"`
}

// WatchlistStats summarises the watchlist server-side.
type WatchlistStats struct {
	Count        int     `json:"count"`
	AveragePrice float64 `json:"averagePrice"`
	TotalValue   float64 `json:"totalValue"`
	Currency     string  `json:"currency"`
}

// Watchlist returns the authenticated user's watched products.
func (c *Client) Watchlist(ctx context.Context) ([]WatchlistEntry, error) {
	var result struct {
		Watchlist []WatchlistEntry `json:"watchlist"`
	}
	if err := c.get(ctx, "/watchlist", nil, &result); err != nil {
		return nil, err
	}
	return result.Watchlist, nil
}

// WatchProduct adds a product to the watchlist.
func (c *Client) WatchProduct(ctx context.Context, productID string) error {
	body := map[string]string{"productId": productID}
	return c.post(ctx, "/watchlist", body, nil)
}

// UnwatchProduct removes a product from the watchlist.
func (c *Client) UnwatchProduct(ctx context.Context, productID string) error {
	return c.delete(ctx, "/watchlist/"+productID)
}

// WatchlistStats fetches aggregate figures for the watchlist.
func (c *Client) WatchlistStats(ctx context.Context) (*WatchlistStats, error) {
	var stats WatchlistStats
	if err := c.get(ctx, "/watchlist/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
