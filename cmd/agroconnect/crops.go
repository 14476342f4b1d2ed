// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/views"
)

// producer builds and loads the farmer dashboard
func (c *cli) producer(cmd *cobra.Command) (*views.ProducerView, error) {
	producer, err := c.app.ProducerView()
	if err != nil {
		return nil, fmt.Errorf("%w: sign in as a farmer", err)
	}
	c.reportLoad(producer.Load(cmd.Context()))
	return producer, nil
}

func (c *cli) cropsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crops",
		Short: "Manage your crop listings (farmers)",
	}
	cmd.AddCommand(c.cropsListCmd(), c.cropsAddCmd(), c.cropsDeleteCmd(), c.cropsStatusCmd())
	return cmd
}

func (c *cli) cropsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your crops, sold ones included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			producer, err := c.producer(cmd)
			if err != nil {
				return err
			}
			defer producer.Close()
			c.renderOwnCrops(producer.Crops())
			return nil
		},
	}
}

func (c *cli) cropsAddCmd() *cobra.Command {
	form := views.NewCropForm()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "List a new crop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			producer, err := c.producer(cmd)
			if err != nil {
				return err
			}
			defer producer.Close()

			if _, err := producer.Create(cmd.Context(), form); err != nil {
				return err
			}
			c.renderOwnCrops(producer.Crops())
			return nil
		},
	}

	cmd.Flags().StringVar(&form.CropType, "type", "", "crop type, e.g. Wheat")
	cmd.Flags().StringVar(&form.Quantity, "quantity", "", "quantity in --unit")
	cmd.Flags().StringVar(&form.Unit, "unit", form.Unit, "kg, quintal or ton")
	cmd.Flags().StringVar(&form.Price, "price", "", "price per unit")
	cmd.Flags().StringVar(&form.HarvestDate, "harvest", "", "expected harvest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.Description, "description", "", "variety, quality, storage")
	cmd.Flags().StringVar(&form.ImageURL, "image", "", "image URL")
	return cmd
}

func (c *cli) cropsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <crop-id>",
		Short: "Remove a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			producer, err := c.producer(cmd)
			if err != nil {
				return err
			}
			defer producer.Close()

			if err := producer.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.renderOwnCrops(producer.Crops())
			return nil
		},
	}
}

func (c *cli) cropsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <crop-id> [available|sold]",
		Short: "Set a listing's status, or toggle it when omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			producer, err := c.producer(cmd)
			if err != nil {
				return err
			}
			defer producer.Close()

			if len(args) == 2 {
				err = producer.SetStatus(cmd.Context(), args[0], args[1])
			} else {
				err = producer.ToggleStatus(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			c.renderOwnCrops(producer.Crops())
			return nil
		},
	}
}

func (c *cli) inboxCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Show inquiries from buyers (farmers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			producer, err := c.producer(cmd)
			if err != nil {
				return err
			}
			defer producer.Close()

			messages := producer.RecentMessages(views.DashboardMessages)
			if all {
				messages = producer.Messages()
			}
			c.renderMessages(messages)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "show every inquiry, not just the latest "+fmt.Sprint(views.DashboardMessages))
	return cmd
}

// statusLabel is the action a toggle would take
func statusLabel(status string) string {
	return "mark " + models.NextStatus(status)
}
