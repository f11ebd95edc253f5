package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RateProvider fetches the exchange-rate table for a display currency. The
// returned map is keyed by currency code, each value being the number of
// units of that currency per one unit of the display currency.
type RateProvider interface {
	Rates(ctx context.Context, display string) (map[string]float64, error)
}

// RateProviderFunc adapts a function to the RateProvider interface.
type RateProviderFunc func(ctx context.Context, display string) (map[string]float64, error)

func (f RateProviderFunc) Rates(ctx context.Context, display string) (map[string]float64, error) {
	return f(ctx, display)
}

// HTTPProvider fetches rates from an exchange-rate endpoint that serves
// `<base URL>/<display currency>` as `{"rates": {CODE: rate, ...}}`.
type HTTPProvider struct {
	client  *http.Client
	baseURL string
}

// NewHTTPProvider creates a rate provider. A nil client gets a default with
// a 10 second timeout.
func NewHTTPProvider(client *http.Client, baseURL string) (*HTTPProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("rates base URL is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProvider{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Rates fetches the full table for the display currency.
func (p *HTTPProvider) Rates(ctx context.Context, display string) (map[string]float64, error) {
	url := p.baseURL + "/" + strings.ToUpper(display)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates")
	}
	return payload.Rates, nil
}
