package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Product is a read-through copy of a backend product record.
type Product struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Source       string  `json:"source"`
	URL          string  `json:"url"`
	CurrentPrice float64 `json:"currentPrice"`
	Currency     string  `json:"currency"`
	Rating       float64 `json:"rating,omitempty"`
}

// PricePoint is one observation in a product's price history.
type PricePoint struct {
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Search queries products across retailers. This is the one call that keeps
// a degraded-mode path: if the primary client fails for any reason the same
// logical request is re-issued through the bare fallback transport.
func (c *Client) Search(ctx context.Context, query string) ([]Product, error) {
	q := url.Values{}
	q.Set("query", query)

	resp, err := c.doWithFallback(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/products/search",
		Query:  q,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Products []Product `json:"products"`
	}
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return result.Products, nil
}

// Product fetches a single product by identifier.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.get(ctx, "/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// PriceHistory returns the recorded price snapshots for a product.
func (c *Client) PriceHistory(ctx context.Context, id string) ([]PricePoint, error) {
	var result struct {
		History []PricePoint `json:"history"`
	}
	if err := c.get(ctx, "/products/"+id+"/price-history", nil, &result); err != nil {
		return nil, err
	}
	return result.History, nil
}

// Currencies lists the source currencies known to the backend.
func (c *Client) Currencies(ctx context.Context) ([]string, error) {
	var result struct {
		Currencies []string `json:"currencies"`
	}
	if err := c.get(ctx, "/products/currencies", nil, &result); err != nil {
		return nil, err
	}
	return result.Currencies, nil
}
