package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Dheirav/SaleSnipe-sub001/internal/cli"
)

func (a *app) cmdNotifications(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.notificationsList(ctx)
	}
	switch args[0] {
	case "read":
		if len(args) != 2 {
			return errUsage
		}
		if err := a.client.MarkNotificationRead(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Marked as read.")
		return nil
	case "read-all":
		if err := a.client.MarkAllNotificationsRead(ctx); err != nil {
			return err
		}
		fmt.Println("All notifications marked as read.")
		return nil
	default:
		return errUsage
	}
}

func (a *app) notificationsList(ctx context.Context) error {
	notifications, err := a.client.Notifications(ctx)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		fmt.Println("No notifications.")
		return nil
	}
	for _, n := range notifications {
		marker := cli.Colorize(cli.ColorCyan, "●")
		if n.Read {
			marker = " "
		}
		fmt.Printf("%s %s  %s  %s\n", marker, truncate(n.ID, 26),
			n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
	}
	return nil
}

func (a *app) cmdCollections(ctx context.Context, args []string) error {
	if len(args) == 0 {
		collections, err := a.client.Collections(ctx)
		if err != nil {
			return err
		}
		for _, c := range collections {
			fmt.Printf("%-20s %4d items  %s\n", c.Name, c.Count, c.Title)
		}
		return nil
	}

	fs := flag.NewFlagSet("collections", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "Maximum items to show")
	refresh := fs.String("refresh", "", "Refresh the collection with this search term")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}
	name := fs.Arg(0)

	if *refresh != "" {
		if err := a.client.RefreshCollection(ctx, name, *refresh); err != nil {
			return err
		}
		fmt.Println("Collection refresh requested.")
		return nil
	}

	a.loadRates(ctx)
	items, err := a.client.CollectionItems(ctx, name, *limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Collection is empty.")
		return nil
	}
	// Collection items are backend-shaped; pick out the fields the listing
	// needs and leave the rest opaque.
	for _, item := range items {
		price := a.conv.Format(item.FloatField("currentPrice"), item.Field("currency"))
		fmt.Printf("%10s  %s\n", price, item.Field("title"))
	}
	return nil
}

func (a *app) cmdHealth(ctx context.Context) error {
	h, err := a.client.CheckHealth(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Backend:  %s\n", h.Status)
	if h.Database != "" {
		fmt.Printf("Database: %s\n", h.Database)
	}
	return nil
}
