package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
	"github.com/Dheirav/SaleSnipe-sub001/internal/cli"
)

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	query := strings.Join(args, " ")
	a.loadRates(ctx)

	spinner := cli.NewSpinner("searching " + query)
	spinner.Start()
	seq := a.search.Begin()
	products, err := a.client.Search(ctx, query)
	spinner.Stop()
	if err != nil {
		return err
	}
	a.search.Put(seq, query, products)

	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%-26s %10s  %-12s %s\n",
			truncate(p.ID, 26), a.conv.Format(p.CurrentPrice, p.Currency), p.Source, p.Title)
	}
	return nil
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.loadRates(ctx)

	p, err := a.client.Product(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(cli.Colorize(cli.ColorBold, p.Title))
	fmt.Printf("  Price:   %s\n", a.conv.Format(p.CurrentPrice, p.Currency))
	fmt.Printf("  Source:  %s\n", p.Source)
	if p.Rating > 0 {
		fmt.Printf("  Rating:  %.1f\n", p.Rating)
	}
	if p.URL != "" {
		fmt.Printf("  URL:     %s\n", p.URL)
	}

	// Insights are best effort: a missing analytics backend degrades to a
	// placeholder, never to an error.
	if pred, err := a.client.Prediction(ctx, p.ID); err == nil {
		fmt.Printf("  Trend:   %s (predicted %s, confidence %.0f%%)\n",
			cli.Trend(pred.Trend), a.conv.Format(pred.PredictedPrice, p.Currency), pred.Confidence*100)
	} else if api.IsUnavailable(err) {
		fmt.Println("  Trend:   unavailable")
	} else {
		return err
	}
	if sent, err := a.client.Sentiment(ctx, p.ID); err == nil {
		fmt.Printf("  Buzz:    %s (%.2f)\n", sent.Label, sent.Score)
	} else if api.IsUnavailable(err) {
		fmt.Println("  Buzz:    unavailable")
	} else {
		return err
	}
	return nil
}

func (a *app) cmdHistory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.loadRates(ctx)

	history, err := a.client.PriceHistory(ctx, args[0])
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No price history recorded yet.")
		return nil
	}
	for _, point := range history {
		fmt.Printf("%s  %s\n", point.RecordedAt.Format("2006-01-02 15:04"),
			a.conv.Format(point.Price, point.Currency))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
