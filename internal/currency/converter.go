// Package currency presents every price in the user's chosen display
// currency regardless of the currency the price was recorded in.
//
// Conversion is fail-open by contract: when the rate table is missing or a
// source currency is unknown, amounts pass through unchanged rather than
// erroring, so a broken rate provider never breaks price display.
package currency

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

// Converter holds the display currency and the most recently fetched rate
// table. Rates are keyed by source currency code, relative to the display
// currency.
type Converter struct {
	provider RateProvider
	log      *logger.Logger

	mu      sync.RWMutex
	display string
	rates   map[string]float64
}

// New creates a converter with the given initial display currency. No rates
// are loaded yet; call Refresh or SetDisplayCurrency to populate them.
func New(display string, provider RateProvider, log *logger.Logger) *Converter {
	if log == nil {
		log = logger.NewDefault("currency")
	}
	return &Converter{
		provider: provider,
		log:      log,
		display:  normalize(display),
	}
}

// DisplayCurrency returns the current display currency code.
func (c *Converter) DisplayCurrency() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.display
}

// SetDisplayCurrency switches the display currency and refetches the rate
// table wholesale. On fetch failure the old table is discarded, leaving
// conversions fail-open until a later refresh succeeds.
func (c *Converter) SetDisplayCurrency(ctx context.Context, code string) error {
	code = normalize(code)

	c.mu.Lock()
	c.display = code
	c.rates = nil
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh replaces the rate table for the current display currency. The
// replace is full, never a merge.
func (c *Converter) Refresh(ctx context.Context) error {
	if c.provider == nil {
		return nil
	}

	display := c.DisplayCurrency()
	rates, err := c.provider.Rates(ctx, display)
	if err != nil {
		c.mu.Lock()
		c.rates = nil
		c.mu.Unlock()
		c.log.WithError(err).WithField("display", display).Warn("rate refresh failed, conversions fail open")
		return err
	}

	normalized := make(map[string]float64, len(rates))
	for code, rate := range rates {
		normalized[normalize(code)] = rate
	}

	c.mu.Lock()
	// The display currency may have changed while the fetch was in
	// flight; a stale table must not overwrite the newer state.
	if c.display != display {
		c.mu.Unlock()
		return nil
	}
	c.rates = normalized
	c.mu.Unlock()
	return nil
}

// Convert returns amount expressed in the display currency. It never fails:
// when no conversion is possible the amount passes through unchanged.
func (c *Converter) Convert(amount float64, source string) float64 {
	value, _ := c.convert(amount, source)
	return value
}

// convert reports whether the returned value is known to be in the display
// currency.
func (c *Converter) convert(amount float64, source string) (float64, bool) {
	if amount == 0 {
		return amount, true
	}
	source = normalize(source)

	c.mu.RLock()
	display := c.display
	rates := c.rates
	c.mu.RUnlock()

	if source == "" || source == display {
		return amount, true
	}
	if len(rates) == 0 {
		// Rates still loading or last fetch failed.
		return amount, false
	}

	rate, ok := rates[source]
	if !ok || rate == 0 {
		c.log.WithField("source", source).WithField("display", display).Warn("no exchange rate known, returning amount unconverted")
		return amount, false
	}
	return round2(amount * (1 / rate)), true
}

// Format renders amount for display. When source is non-empty the amount is
// converted first. Unknown currency codes or unconverted amounts fall back
// to the literal "<amount> <code>" form rather than erroring.
func (c *Converter) Format(amount float64, source string) string {
	value, converted := c.convert(amount, source)
	if !converted {
		return literal(amount, normalize(source))
	}

	display := c.DisplayCurrency()
	unit, err := xcurrency.ParseISO(display)
	if err != nil {
		c.log.WithField("display", display).Warn("display currency not formattable")
		return literal(value, display)
	}

	printer := message.NewPrinter(language.English)
	return printer.Sprintf("%v", xcurrency.Symbol(unit.Amount(value)))
}

func literal(amount float64, code string) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if code == "" {
		return s
	}
	return s + " " + code
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
