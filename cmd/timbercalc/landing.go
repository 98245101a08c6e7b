package main

import (
	"fmt"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/ui"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newLandingCmd(a *app) *cobra.Command {
	var (
		cost, tax, freight, top string
		qty                     int
	)
	cmd := &cobra.Command{
		Use:   "landing",
		Short: "Break down the landing price of a purchase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.LandingInput{Quantity: qty, TaxPercent: a.cfg.DefaultTaxPercent}
			var err error
			if in.Cost, err = parseAmount("cost", cost); err != nil {
				return err
			}
			if cmd.Flags().Changed("tax") {
				if in.TaxPercent, err = parseAmount("tax", tax); err != nil {
					return err
				}
			}
			if in.Freight, err = parseAmount("freight", freight); err != nil {
				return err
			}
			if in.TopAmount, err = parseAmount("top", top); err != nil {
				return err
			}
			if err := model.ValidateLandingInput(in); err != nil {
				return err
			}

			ui.PrintLanding(cmd.OutOrStdout(), model.CalculateLandingPrice(in))
			return nil
		},
	}
	cmd.Flags().StringVar(&cost, "cost", "0", "purchase cost before tax")
	cmd.Flags().StringVar(&tax, "tax", "", "tax percent (default from config)")
	cmd.Flags().StringVar(&freight, "freight", "0", "freight charges")
	cmd.Flags().StringVar(&top, "top", "0", "top/loading charges paid outside the bill")
	cmd.Flags().IntVar(&qty, "qty", 0, "quantity for per-unit figures")
	return cmd
}

func parseAmount(name, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q", name, s)
	}
	return d, nil
}
