package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// Collection describes a curated product collection.
type Collection struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// CollectionItem is an opaque record inside a collection. The backend owns
// the shape; the client only reads individual fields out of it.
type CollectionItem json.RawMessage

// Field extracts a value by gjson path, e.g. "title" or "price.amount".
func (i CollectionItem) Field(path string) string {
	return gjson.GetBytes(i, path).String()
}

// FloatField extracts a numeric value by gjson path.
func (i CollectionItem) FloatField(path string) float64 {
	return gjson.GetBytes(i, path).Float()
}

// Collections lists the available curated collections.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var result struct {
		Collections []Collection `json:"collections"`
	}
	if err := c.get(ctx, "/collections", nil, &result); err != nil {
		return nil, err
	}
	return result.Collections, nil
}

// CollectionItems fetches up to limit items of a named collection. A zero
// limit leaves the page size to the backend.
func (c *Client) CollectionItems(ctx context.Context, name string, limit int) ([]CollectionItem, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}

	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/collections/" + name, Query: q})
	if err != nil {
		return nil, err
	}

	var result struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := decode(resp, &result); err != nil {
		return nil, err
	}

	items := make([]CollectionItem, 0, len(result.Items))
	for _, raw := range result.Items {
		items = append(items, CollectionItem(raw))
	}
	return items, nil
}

// RefreshCollection asks the backend to rebuild a collection from a search
// term.
func (c *Client) RefreshCollection(ctx context.Context, name, searchTerm string) error {
	body := map[string]string{"searchTerm": searchTerm}
	return c.post(ctx, "/collections/"+name+"/refresh", body, nil)
}
