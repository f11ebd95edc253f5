package api

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks an optional insight call that failed. Callers render
// an "unavailable" state instead of surfacing an error.
var ErrUnavailable = errors.New("insight unavailable")

// IsUnavailable reports whether err comes from an optional insight call.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Prediction is the server-side price forecast for a product.
type Prediction struct {
	ProductID      string  `json:"productId"`
	PredictedPrice float64 `json:"predictedPrice"`
	Trend          string  `json:"trend"`
	Confidence     float64 `json:"confidence"`
}

// Sentiment is the server-side review-sentiment summary for a product.
type Sentiment struct {
	ProductID string  `json:"productId"`
	Score     float64 `json:"score"`
	Label     string  `json:"label"`
}

// Prediction fetches the price forecast. Failures of any kind collapse into
// ErrUnavailable; these calls are non-critical by design of the product.
func (c *Client) Prediction(ctx context.Context, productID string) (*Prediction, error) {
	var p Prediction
	if err := c.get(ctx, "/ai/predictions/"+productID, nil, &p); err != nil {
		c.log.WithError(err).WithField("product_id", productID).Debug("prediction unavailable")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &p, nil
}

// Sentiment fetches the review sentiment. Failures collapse into
// ErrUnavailable like Prediction.
func (c *Client) Sentiment(ctx context.Context, productID string) (*Sentiment, error) {
	var s Sentiment
	if err := c.get(ctx, "/ai/sentiment/"+productID, nil, &s); err != nil {
		c.log.WithError(err).WithField("product_id", productID).Debug("sentiment unavailable")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &s, nil
}
