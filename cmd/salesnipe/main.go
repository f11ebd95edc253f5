// Package main implements the salesnipe terminal client: a thin front end
// over the SaleSnipe REST backend with persisted sign-in and price display
// in the user's chosen currency.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
	"github.com/Dheirav/SaleSnipe-sub001/internal/cli"
)

var errUsage = errors.New("usage")

const usage = `salesnipe - track product prices across retailers

Usage:
  salesnipe <command> [arguments]

Account:
  register              Create an account
  login                 Sign in
  logout                Sign out and forget the stored session
  whoami                Show the signed-in user

Products:
  search <query>        Search products across retailers
  product <id>          Show one product with price insights
  history <id>          Show a product's price history

Tracking:
  watchlist             Show the watchlist (add/remove/stats subcommands)
  alerts                Manage price alerts (list/create/update/delete)
  notifications         Show notifications (read/read-all subcommands)

Other:
  collections           Browse curated collections
  health                Check backend availability
  completion <shell>    Generate shell completion (bash, zsh)

Environment:
  SALESNIPE_API_URL           Backend base URL
  SALESNIPE_DISPLAY_CURRENCY  Display currency before sign-in
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, api.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	command, rest := args[0], args[1:]

	switch command {
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	case "completion":
		if len(rest) != 1 {
			return errUsage
		}
		return cli.WriteCompletion(os.Stdout, rest[0])
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	switch command {
	case "register":
		return a.cmdRegister(ctx, rest)
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami()
	case "search":
		return a.cmdSearch(ctx, rest)
	case "product":
		return a.cmdProduct(ctx, rest)
	case "history":
		return a.cmdHistory(ctx, rest)
	case "watchlist":
		return a.cmdWatchlist(ctx, rest)
	case "alerts":
		return a.cmdAlerts(ctx, rest)
	case "notifications":
		return a.cmdNotifications(ctx, rest)
	case "collections":
		return a.cmdCollections(ctx, rest)
	case "health":
		return a.cmdHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		return errUsage
	}
}
