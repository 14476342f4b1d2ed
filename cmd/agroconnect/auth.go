// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/navigation"
	"github.com/agroconnect/agroconnect/views"
)

func (c *cli) loginCmd() *cobra.Command {
	var form views.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			authView, err := c.app.AuthView()
			if err != nil {
				return fmt.Errorf("%w: log out first", err)
			}
			if form.Password == "" {
				if form.Password, err = c.readLine("Password: "); err != nil {
					return err
				}
			}
			if _, err := authView.Login(cmd.Context(), form); err != nil {
				return err
			}
			return c.show(cmd, navigation.PathLanding)
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password (read from stdin when omitted)")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var form views.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a farmer or buyer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			authView, err := c.app.AuthView()
			if err != nil {
				return fmt.Errorf("%w: log out first", err)
			}
			if form.Password == "" {
				if form.Password, err = c.readLine("Password: "); err != nil {
					return err
				}
			}
			if _, err := authView.Register(cmd.Context(), form); err != nil {
				return err
			}
			return c.show(cmd, navigation.PathLanding)
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "full name")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number shown to the other party")
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password (read from stdin when omitted)")
	cmd.Flags().StringVar(&form.Role, "role", models.RoleFarmer, "farmer or buyer")
	cmd.Flags().StringVar(&form.Location, "location", "", "village, district or city")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.out, "Backend: %s\nSession file: %s\n", c.api.BaseURL(), c.storage.Path())

			sess := c.app.Store().Current()
			if sess == nil {
				fmt.Fprintln(c.out, "Not signed in")
				return nil
			}
			u := sess.User
			fmt.Fprintf(c.out, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
			if u.Location != "" {
				fmt.Fprintf(c.out, "Location: %s\n", u.Location)
			}
			fmt.Fprintf(c.out, "Phone: %s\n", u.Phone)
			return nil
		},
	}
}

func (c *cli) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [path]",
		Short: "Show the screen for a path (/, /auth, /farmer, /buyer)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := navigation.PathLanding
			if len(args) == 1 {
				path = args[0]
			}
			return c.show(cmd, path)
		},
	}
}

// show resolves path for the current session and renders the view reached
func (c *cli) show(cmd *cobra.Command, path string) error {
	view, at, err := c.app.Navigate(path)
	if err != nil {
		return err
	}

	switch view {
	case navigation.Landing:
		fmt.Fprintln(c.out, "AgroConnect: farmers list crops, buyers find them.")
		fmt.Fprintln(c.out, "Run `agroconnect login` or `agroconnect register` to get started.")
		return nil

	case navigation.Auth:
		fmt.Fprintln(c.out, "Sign in with `agroconnect login --email ...`")
		fmt.Fprintln(c.out, "or create an account with `agroconnect register --role farmer|buyer ...`")
		return nil

	case navigation.Producer:
		producer, err := c.app.ProducerView()
		if err != nil {
			return err
		}
		defer producer.Close()
		c.reportLoad(producer.Load(cmd.Context()))
		c.renderProducer(producer)
		return nil

	case navigation.Purchaser:
		purchaser, err := c.app.PurchaserView()
		if err != nil {
			return err
		}
		defer purchaser.Close()
		c.reportLoad(purchaser.Load(cmd.Context()))
		c.renderPurchaser(purchaser)
		return nil
	}

	return fmt.Errorf("no such page: %s", at)
}

func (c *cli) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
