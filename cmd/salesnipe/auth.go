package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Dheirav/SaleSnipe-sub001/internal/cli"
	"github.com/Dheirav/SaleSnipe-sub001/internal/session"
)

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email address")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var err error
	if *name == "" {
		if *name, err = cli.ReadLine(os.Stdin, "Name: "); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = cli.ReadLine(os.Stdin, "Email: "); err != nil {
			return err
		}
	}
	password, err := cli.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := a.sess.Register(ctx, a.client, *name, *email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s. You are signed in.\n", user.Name)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "Email address")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var err error
	if *email == "" {
		if *email, err = cli.ReadLine(os.Stdin, "Email: "); err != nil {
			return err
		}
	}
	password, err := cli.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := a.sess.Login(ctx, a.client, *email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s.\n", user.Name)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.sess.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *app) cmdWhoami() error {
	if a.sess.Status() != session.Authenticated {
		fmt.Println("Not signed in.")
		return nil
	}
	u := a.sess.User()
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	if u.Preferences.DisplayCurrency != "" {
		fmt.Printf("Display currency: %s\n", u.Preferences.DisplayCurrency)
	}
	return nil
}
