package api

import (
	"context"
	"time"
)

// Alert is a price alert on a product.
type Alert struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	TargetPrice float64   `json:"targetPrice"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UpdateAlertRequest carries partial alert changes.
type UpdateAlertRequest struct {
	TargetPrice *float64 `json:"targetPrice,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// Alerts lists the user's price alerts.
func (c *Client) Alerts(ctx context.Context) ([]Alert, error) {
	var result struct {
		Alerts []Alert `json:"alerts"`
	}
	if err := c.get(ctx, "/alerts", nil, &result); err != nil {
		return nil, err
	}
	return result.Alerts, nil
}

// CreateAlert registers a price alert for a product.
func (c *Client) CreateAlert(ctx context.Context, productID string, targetPrice float64) (*Alert, error) {
	body := map[string]interface{}{
		"productId":   productID,
		"targetPrice": targetPrice,
	}
	var alert Alert
	if err := c.post(ctx, "/alerts", body, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// UpdateAlert changes the target price or active flag of an alert.
func (c *Client) UpdateAlert(ctx context.Context, id string, req UpdateAlertRequest) (*Alert, error) {
	var alert Alert
	if err := c.put(ctx, "/alerts/"+id, req, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// DeleteAlert removes an alert.
func (c *Client) DeleteAlert(ctx context.Context, id string) error {
	return c.delete(ctx, "/alerts/"+id)
}
