package main

import (
	"context"
	"fmt"
)

func (a *app) cmdWatchlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.watchlistShow(ctx)
	}
	switch args[0] {
	case "add":
		if len(args) != 2 {
			return errUsage
		}
		if err := a.client.WatchProduct(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Added to watchlist.")
		return nil
	case "remove":
		if len(args) != 2 {
			return errUsage
		}
		if err := a.client.UnwatchProduct(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Removed from watchlist.")
		return nil
	case "stats":
		return a.watchlistStats(ctx)
	default:
		return errUsage
	}
}

func (a *app) watchlistShow(ctx context.Context) error {
	a.loadRates(ctx)

	entries, err := a.client.Watchlist(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Your watchlist is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-26s %10s  %s\n", truncate(e.Product.ID, 26),
			a.conv.Format(e.Product.CurrentPrice, e.Product.Currency), e.Product.Title)
	}
	return nil
}

func (a *app) watchlistStats(ctx context.Context) error {
	a.loadRates(ctx)

	stats, err := a.client.WatchlistStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Watched products: %d\n", stats.Count)
	fmt.Printf("Average price:    %s\n", a.conv.Format(stats.AveragePrice, stats.Currency))
	fmt.Printf("Total value:      %s\n", a.conv.Format(stats.TotalValue, stats.Currency))
	return nil
}
