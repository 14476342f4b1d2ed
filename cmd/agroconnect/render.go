// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/views"
)

func (c *cli) table(header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

// reportLoad prints the reads of a dashboard that failed; the rest is shown
func (c *cli) reportLoad(result views.LoadResult) {
	report := func(what string, err error) {
		if err != nil {
			fmt.Fprintf(c.notify.errOut, "Warning: could not load %s: %s\n", what, views.UserMessage(err, "backend unreachable"))
		}
	}
	report("crops", result.Crops)
	report("messages", result.Messages)
	report("market prices", result.Prices)
}

func (c *cli) renderProducer(v *views.ProducerView) {
	sess := c.app.Store().Current()
	if sess != nil {
		fmt.Fprintf(c.out, "Welcome, %s\n\n", sess.User.Name)
	}

	fmt.Fprintln(c.out, "My Crops")
	c.renderOwnCrops(v.Crops())

	fmt.Fprintln(c.out, "\nRecent Messages")
	c.renderMessages(v.RecentMessages(views.DashboardMessages))

	fmt.Fprintln(c.out, "\nMarket Prices")
	c.renderPrices(v.Prices())
}

func (c *cli) renderPurchaser(v *views.PurchaserView) {
	sess := c.app.Store().Current()
	if sess != nil {
		fmt.Fprintf(c.out, "Welcome, %s\n\n", sess.User.Name)
	}

	fmt.Fprintln(c.out, "Available Crops")
	c.renderListings(v.Crops())

	fmt.Fprintln(c.out, "\nMarket Prices")
	c.renderPrices(v.Prices())
}

func (c *cli) renderOwnCrops(crops []models.Crop) {
	if len(crops) == 0 {
		fmt.Fprintln(c.out, "No crops listed yet. Add one with `agroconnect crops add`.")
		return
	}

	tw := c.table("ID", "CROP", "QUANTITY", "PRICE", "HARVEST", "STATUS", "TOGGLE", "LISTED")
	for _, crop := range crops {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			crop.ID, crop.CropType, quantity(crop), price(crop.Price, crop.Unit),
			crop.ExpectedHarvestDate, crop.Status, statusLabel(crop.Status), age(crop.CreatedAt))
	}
	tw.Flush()
}

func (c *cli) renderListings(crops []models.Crop) {
	if len(crops) == 0 {
		fmt.Fprintln(c.out, "No crops found.")
		return
	}

	tw := c.table("ID", "CROP", "QUANTITY", "PRICE", "HARVEST", "FARMER", "PHONE", "LOCATION")
	for _, crop := range crops {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			crop.ID, crop.CropType, quantity(crop), price(crop.Price, crop.Unit),
			crop.ExpectedHarvestDate, crop.FarmerName, crop.FarmerPhone, orDash(crop.FarmerLocation))
	}
	tw.Flush()
}

func (c *cli) renderMessages(messages []models.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(c.out, "No messages yet.")
		return
	}

	tw := c.table("FROM", "PHONE", "CROP", "MESSAGE", "RECEIVED")
	for _, m := range messages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.BuyerName, m.BuyerPhone, m.CropID, oneLine(m.Message), age(m.CreatedAt))
	}
	tw.Flush()
}

func (c *cli) renderPrices(prices []models.MarketPrice) {
	if len(prices) == 0 {
		fmt.Fprintln(c.out, "No market prices available.")
		return
	}

	tw := c.table("CROP", "PRICE", "UPDATED")
	for _, p := range prices {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.CropType, price(p.Price, p.Unit), age(p.UpdatedAt))
	}
	tw.Flush()
}

func quantity(crop models.Crop) string {
	return humanize.Commaf(crop.Quantity) + " " + crop.Unit
}

func price(amount float64, unit string) string {
	return "₹" + humanize.CommafWithDigits(amount, 2) + "/" + unit
}

func age(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// oneLine keeps table rows on one line
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
