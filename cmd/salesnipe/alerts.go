package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
)

func (a *app) cmdAlerts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		return a.alertsList(ctx)
	case "create":
		if len(args) != 3 {
			return errUsage
		}
		target, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid target price %q", args[2])
		}
		alert, err := a.client.CreateAlert(ctx, args[1], target)
		if err != nil {
			return err
		}
		fmt.Printf("Alert %s created at target %.2f.\n", alert.ID, alert.TargetPrice)
		return nil
	case "update":
		return a.alertsUpdate(ctx, args[1:])
	case "delete":
		if len(args) != 2 {
			return errUsage
		}
		if err := a.client.DeleteAlert(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Alert deleted.")
		return nil
	default:
		return errUsage
	}
}

func (a *app) alertsList(ctx context.Context) error {
	a.loadRates(ctx)

	alerts, err := a.client.Alerts(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		fmt.Println("No price alerts set.")
		return nil
	}
	for _, alert := range alerts {
		state := "paused"
		if alert.Active {
			state = "active"
		}
		fmt.Printf("%-26s target %10.2f  %-7s product %s\n",
			truncate(alert.ID, 26), alert.TargetPrice, state, alert.ProductID)
	}
	return nil
}

func (a *app) alertsUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alerts update", flag.ContinueOnError)
	target := fs.Float64("target", 0, "New target price")
	pause := fs.Bool("pause", false, "Pause the alert")
	resume := fs.Bool("resume", false, "Resume the alert")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	req := api.UpdateAlertRequest{}
	if *target > 0 {
		req.TargetPrice = target
	}
	if *pause {
		active := false
		req.Active = &active
	}
	if *resume {
		active := true
		req.Active = &active
	}
	if req.TargetPrice == nil && req.Active == nil {
		return errUsage
	}

	alert, err := a.client.UpdateAlert(ctx, fs.Arg(0), req)
	if err != nil {
		return err
	}
	fmt.Printf("Alert %s updated.\n", alert.ID)
	return nil
}
