// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agroconnect/agroconnect/views"
)

// purchaser builds and loads the buyer dashboard
func (c *cli) purchaser(cmd *cobra.Command) (*views.PurchaserView, error) {
	purchaser, err := c.app.PurchaserView()
	if err != nil {
		return nil, fmt.Errorf("%w: sign in as a buyer", err)
	}
	c.reportLoad(purchaser.Load(cmd.Context()))
	return purchaser, nil
}

func (c *cli) searchCmd() *cobra.Command {
	var cropType, location string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search available crops (buyers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			purchaser, err := c.app.PurchaserView()
			if err != nil {
				return fmt.Errorf("%w: sign in as a buyer", err)
			}
			defer purchaser.Close()

			if err := purchaser.Search(cmd.Context(), cropType, location); err != nil {
				return err
			}
			c.renderListings(purchaser.Crops())
			return nil
		},
	}

	cmd.Flags().StringVar(&cropType, "type", "", "crop type contains")
	cmd.Flags().StringVar(&location, "location", "", "farmer location contains")
	return cmd
}

func (c *cli) contactCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "contact <crop-id>",
		Short: "Send an inquiry to the farmer of a listing (buyers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			purchaser, err := c.purchaser(cmd)
			if err != nil {
				return err
			}
			defer purchaser.Close()

			found := false
			for _, crop := range purchaser.Crops() {
				if crop.ID == args[0] {
					if err := purchaser.OpenCompose(crop); err != nil {
						return err
					}
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("no available crop with id %s", args[0])
			}

			if text == "" {
				if text, err = c.readLine("Message: "); err != nil {
					return err
				}
			}
			if err := purchaser.SetDraft(text); err != nil {
				return err
			}

			_, err = purchaser.Send(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVarP(&text, "message", "m", "", "message text (read from stdin when omitted)")
	return cmd
}

func (c *cli) marketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show reference market prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prices, err := c.api.MarketPrices(cmd.Context())
			if err != nil {
				c.notify.Error(views.UserMessage(err, "Failed to load market prices"))
				return err
			}
			c.renderPrices(prices)
			return nil
		},
	}
}
